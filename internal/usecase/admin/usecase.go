package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/internal/domain/storage"
	"krysselista-backend/internal/domain/uow"
	"krysselista-backend/pkg/id"

	"gorm.io/gorm"
)

var (
	ErrSelfDelete  = errors.New("admins cannot delete their own account")
	ErrUnknownRole = errors.New("unknown role")
)

type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin employee parent"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateChildInput struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	BirthDate string  `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string  `json:"notes" validate:"max=500"`
	PhotoURL  string  `json:"photo_url" validate:"omitempty,url"`
	ParentID  *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

type ChildDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	PhotoURL  string     `json:"photo_url,omitempty"`
	ParentID  *string    `json:"parent_id,omitempty"`
}

type GrantRoleInput struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Role   string `json:"role" validate:"required,oneof=admin employee parent"`
}

type Usecase struct {
	profiles profile.Repository
	uow      uow.UnitOfWork
	now      func() time.Time
}

func NewUsecase(p profile.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{profiles: p, uow: tx, now: time.Now}
}

// CreateUser stores the profile and its first role together.
func (u *Usecase) CreateUser(ctx context.Context, in CreateUserInput) (*UserDTO, error) {
	if err := auth.CheckPasswordPolicy(in.Password); err != nil {
		return nil, err
	}
	role := profile.Role(in.Role)
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	p := &profile.Profile{
		ID:               id.New(),
		FullName:         strings.TrimSpace(in.FullName),
		Email:            email,
		PasswordHash:     hash,
		RequiresApproval: true,
		CreatedAt:        u.now().UTC(),
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Profiles.GetByEmail(ctx, email); err == nil {
			return profile.ErrEmailUsed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := r.Profiles.Create(ctx, p); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return profile.ErrEmailUsed
			}
			return err
		}
		return r.Profiles.GrantRole(ctx, p.ID, role)
	})
	if err != nil {
		return nil, storage.Keep(err, profile.ErrEmailUsed)
	}
	return &UserDTO{ID: p.ID, Email: p.Email, FullName: p.FullName, Role: string(role), CreatedAt: p.CreatedAt}, nil
}

func (u *Usecase) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return ErrSelfDelete
	}
	err := u.profiles.Delete(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return profile.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// pickup logs keep parent_id forever
		return profile.ErrHasHistory
	}
	return storage.Wrap(err)
}

// CreateChild optionally links the child to an existing parent in the same transaction.
func (u *Usecase) CreateChild(ctx context.Context, in CreateChildInput) (*ChildDTO, error) {
	c := &child.Child{
		ID:        id.New(),
		Name:      strings.TrimSpace(in.Name),
		Notes:     in.Notes,
		PhotoURL:  in.PhotoURL,
		CreatedAt: u.now().UTC(),
	}
	if in.BirthDate != "" {
		bd, err := time.Parse(time.DateOnly, in.BirthDate)
		if err != nil {
			return nil, err
		}
		c.BirthDate = &bd
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if in.ParentID != nil {
			if _, err := r.Profiles.GetByID(ctx, *in.ParentID); errors.Is(err, gorm.ErrRecordNotFound) {
				return profile.ErrNotFound
			} else if err != nil {
				return err
			}
		}
		if err := r.Children.Create(ctx, c); err != nil {
			return err
		}
		if in.ParentID != nil {
			return r.Children.Link(ctx, *in.ParentID, c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, storage.Keep(err, profile.ErrNotFound)
	}
	return &ChildDTO{ID: c.ID, Name: c.Name, BirthDate: c.BirthDate, Notes: c.Notes, PhotoURL: c.PhotoURL, ParentID: in.ParentID}, nil
}

func (u *Usecase) GrantRole(ctx context.Context, in GrantRoleInput) error {
	role := profile.Role(in.Role)
	if !role.Valid() {
		return ErrUnknownRole
	}
	if _, err := u.profiles.GetByID(ctx, in.UserID); errors.Is(err, gorm.ErrRecordNotFound) {
		return profile.ErrNotFound
	} else if err != nil {
		return storage.Wrap(err)
	}
	return storage.Wrap(u.profiles.GrantRole(ctx, in.UserID, role))
}
