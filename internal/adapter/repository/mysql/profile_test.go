package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"krysselista-backend/internal/domain/pickup"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/pkg/id"

	"gorm.io/gorm"
)

func TestProfileRepository_CreateGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	p := &profile.Profile{ID: id.New(), FullName: "Kari Nordmann", Email: "kari@example.com", PasswordHash: "h"}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "kari@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != p.ID || !got.RequiresApproval {
		t.Fatalf("unexpected profile %+v (requires_approval should default to true)", got)
	}
	if _, err := repo.GetByID(ctx, id.New()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProfileRepository_SetRequiresApproval(t *testing.T) {
	db := openTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	p := seedProfile(t, db, "Kari", true)

	if err := repo.SetRequiresApproval(ctx, p.ID, false); err != nil {
		t.Fatalf("SetRequiresApproval: %v", err)
	}
	got, _ := repo.GetByID(ctx, p.ID)
	if got.RequiresApproval {
		t.Fatal("requires_approval still true")
	}
	// unchanged value is not an error
	if err := repo.SetRequiresApproval(ctx, p.ID, false); err != nil {
		t.Fatalf("repeat SetRequiresApproval: %v", err)
	}
	if err := repo.SetRequiresApproval(ctx, id.New(), true); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProfileRepository_RolesAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	p := seedProfile(t, db, "Kari", true)

	for _, r := range []profile.Role{profile.RoleParent, profile.RoleEmployee, profile.RoleParent} {
		if err := repo.GrantRole(ctx, p.ID, r); err != nil {
			t.Fatalf("GrantRole(%s): %v", r, err)
		}
	}
	roles, err := repo.Roles(ctx, p.ID)
	if err != nil {
		t.Fatalf("Roles: %v", err)
	}
	if len(roles) != 2 || roles[0] != profile.RoleEmployee || roles[1] != profile.RoleParent {
		t.Fatalf("roles = %v", roles)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if roles, _ := repo.Roles(ctx, p.ID); len(roles) != 0 {
		t.Fatalf("roles left behind: %v", roles)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestProfileRepository_DeleteWithPickupHistory(t *testing.T) {
	db := openTestDBWithFK(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	parent := seedProfile(t, db, "Ola", false)
	if err := repo.GrantRole(ctx, parent.ID, profile.RoleParent); err != nil {
		t.Fatalf("GrantRole: %v", err)
	}
	seedPickup(t, db, seedChild(t, db, "Emma"), parent, pickup.StatusCompleted, time.Now().UTC())

	if err := repo.Delete(ctx, parent.ID); !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("want ErrForeignKeyViolated, got %v", err)
	}
	// roles are removed in the same transaction, so they must survive the refusal
	if roles, err := repo.Roles(ctx, parent.ID); err != nil || len(roles) != 1 {
		t.Fatalf("roles after refused delete = %v err=%v", roles, err)
	}
	if _, err := repo.GetByID(ctx, parent.ID); err != nil {
		t.Fatalf("profile gone after refused delete: %v", err)
	}

	other := seedProfile(t, db, "Nina", false)
	if err := repo.Delete(ctx, other.ID); err != nil {
		t.Fatalf("delete without history: %v", err)
	}
}
