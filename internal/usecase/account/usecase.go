package account

import (
	"context"
	"errors"

	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/internal/domain/storage"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotHeld        = errors.New("user does not hold the requested role")
)

// rolePriority picks the default session role.
var rolePriority = []profile.Role{profile.RoleAdmin, profile.RoleEmployee, profile.RoleParent}

type Usecase struct {
	profiles profile.Repository
	tokens   *auth.Tokens
}

func NewUsecase(p profile.Repository, t *auth.Tokens) *Usecase {
	return &Usecase{profiles: p, tokens: t}
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	p, err := u.profiles.GetByEmail(ctx, in.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storage.Wrap(err)
	}
	if !auth.CheckPassword(p.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	held, err := u.profiles.Roles(ctx, p.ID)
	if err != nil {
		return nil, storage.Wrap(err)
	}
	role, err := pickRole(held, profile.Role(in.Role))
	if err != nil {
		return nil, err
	}

	tok, exp, err := u.tokens.Issue(auth.Session{UserID: p.ID, Role: role, Name: p.FullName})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(held))
	for _, r := range held {
		names = append(names, string(r))
	}
	return &LoginResult{
		Token: tok, ExpiresAt: exp,
		UserID: p.ID, FullName: p.FullName,
		Role: string(role), Roles: names,
	}, nil
}

func pickRole(held []profile.Role, want profile.Role) (profile.Role, error) {
	has := func(r profile.Role) bool {
		for _, h := range held {
			if h == r {
				return true
			}
		}
		return false
	}
	if want != "" {
		if !has(want) {
			return "", ErrRoleNotHeld
		}
		return want, nil
	}
	for _, r := range rolePriority {
		if has(r) {
			return r, nil
		}
	}
	return "", ErrRoleNotHeld
}

func (u *Usecase) GetPreference(ctx context.Context, userID string) (*PreferenceDTO, error) {
	p, err := u.profiles.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, storage.Wrap(err)
	}
	return &PreferenceDTO{RequiresApproval: p.RequiresApproval}, nil
}

// SetPreference affects only pickup requests created afterwards.
func (u *Usecase) SetPreference(ctx context.Context, userID string, requiresApproval bool) (*PreferenceDTO, error) {
	err := u.profiles.SetRequiresApproval(ctx, userID, requiresApproval)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, storage.Wrap(err)
	}
	return &PreferenceDTO{RequiresApproval: requiresApproval}, nil
}
