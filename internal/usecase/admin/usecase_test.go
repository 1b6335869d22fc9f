package admin

import (
	"context"
	"errors"
	"testing"

	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/internal/domain/storage"
	"krysselista-backend/internal/domain/uow"
	"krysselista-backend/internal/testutil/childmock"
	"krysselista-backend/internal/testutil/profilemock"
	"krysselista-backend/internal/testutil/uowmock"

	"gorm.io/gorm"
)

func TestUsecase_CreateUser(t *testing.T) {
	var (
		created *profile.Profile
		granted profile.Role
	)
	profiles := &profilemock.Repo{
		GetByEmailFn: func(_ context.Context, email string) (*profile.Profile, error) {
			if email == "taken@example.com" {
				return &profile.Profile{ID: "x"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn:    func(_ context.Context, p *profile.Profile) error { created = p; return nil },
		GrantRoleFn: func(_ context.Context, _ string, r profile.Role) error { granted = r; return nil },
	}
	uc := NewUsecase(profiles, uowmock.Passthrough(uow.Repos{Profiles: profiles}))
	ctx := context.Background()

	dto, err := uc.CreateUser(ctx, CreateUserInput{Email: " Kari@Example.com ", Password: "Hemmelig1", FullName: "Kari Nordmann", Role: "parent"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if dto.Email != "kari@example.com" || granted != profile.RoleParent || !created.RequiresApproval {
		t.Fatalf("dto=%+v granted=%s profile=%+v", dto, granted, created)
	}
	if !auth.CheckPassword(created.PasswordHash, "Hemmelig1") {
		t.Fatal("password not hashed with bcrypt")
	}

	tests := []struct {
		name string
		in   CreateUserInput
		want error
	}{
		{"weak password", CreateUserInput{Email: "a@example.com", Password: "password", FullName: "A B", Role: "parent"}, auth.ErrWeakPassword},
		{"email taken", CreateUserInput{Email: "taken@example.com", Password: "Hemmelig1", FullName: "A B", Role: "parent"}, profile.ErrEmailUsed},
		{"bad role", CreateUserInput{Email: "a@example.com", Password: "Hemmelig1", FullName: "A B", Role: "owner"}, ErrUnknownRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.CreateUser(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUsecase_DeleteUser(t *testing.T) {
	profiles := &profilemock.Repo{
		DeleteFn: func(_ context.Context, id string) error {
			switch id {
			case "u2":
				return nil
			case "picked-up-before":
				return gorm.ErrForeignKeyViolated
			case "flaky":
				return errors.New("driver: bad connection")
			}
			return gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(profiles, uowmock.New())
	ctx := context.Background()

	if err := uc.DeleteUser(ctx, "admin-1", "u2"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := uc.DeleteUser(ctx, "admin-1", "admin-1"); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("want ErrSelfDelete, got %v", err)
	}
	if err := uc.DeleteUser(ctx, "admin-1", "ghost"); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := uc.DeleteUser(ctx, "admin-1", "picked-up-before"); !errors.Is(err, profile.ErrHasHistory) {
		t.Fatalf("want ErrHasHistory, got %v", err)
	}
	if err := uc.DeleteUser(ctx, "admin-1", "flaky"); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestUsecase_CreateChild(t *testing.T) {
	var linked [2]string
	profiles := &profilemock.Repo{
		GetByIDFn: func(_ context.Context, id string) (*profile.Profile, error) {
			if id != "parent-1" {
				return nil, gorm.ErrRecordNotFound
			}
			return &profile.Profile{ID: id}, nil
		},
	}
	children := &childmock.Repo{
		LinkFn: func(_ context.Context, p, c string) error { linked = [2]string{p, c}; return nil },
	}
	uc := NewUsecase(profiles, uowmock.Passthrough(uow.Repos{Profiles: profiles, Children: children}))
	ctx := context.Background()
	parentID := "parent-1"

	dto, err := uc.CreateChild(ctx, CreateChildInput{Name: "Ola", BirthDate: "2020-04-01", ParentID: &parentID})
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	if dto.BirthDate == nil || dto.BirthDate.Year() != 2020 || linked != [2]string{"parent-1", dto.ID} {
		t.Fatalf("dto=%+v linked=%v", dto, linked)
	}

	ghost := "ghost"
	if _, err := uc.CreateChild(ctx, CreateChildInput{Name: "Emma", ParentID: &ghost}); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	var createdChild *child.Child
	children.CreateFn = func(_ context.Context, c *child.Child) error { createdChild = c; return nil }
	if _, err := uc.CreateChild(ctx, CreateChildInput{Name: "Nora"}); err != nil || createdChild.Name != "Nora" {
		t.Fatalf("unlinked child: %v %+v", err, createdChild)
	}
}

func TestUsecase_GrantRole(t *testing.T) {
	var got profile.Role
	profiles := &profilemock.Repo{
		GetByIDFn: func(_ context.Context, id string) (*profile.Profile, error) {
			if id != "u1" {
				return nil, gorm.ErrRecordNotFound
			}
			return &profile.Profile{ID: id}, nil
		},
		GrantRoleFn: func(_ context.Context, _ string, r profile.Role) error { got = r; return nil },
	}
	uc := NewUsecase(profiles, uowmock.New())
	ctx := context.Background()

	if err := uc.GrantRole(ctx, GrantRoleInput{UserID: "u1", Role: "employee"}); err != nil || got != profile.RoleEmployee {
		t.Fatalf("GrantRole: %v role=%s", err, got)
	}
	if err := uc.GrantRole(ctx, GrantRoleInput{UserID: "nope", Role: "employee"}); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
