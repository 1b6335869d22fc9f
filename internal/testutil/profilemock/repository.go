package profilemock

import (
	"context"

	domain "krysselista-backend/internal/domain/profile"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn              func(ctx context.Context, p *domain.Profile) error
	GetByIDFn             func(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmailFn          func(ctx context.Context, email string) (*domain.Profile, error)
	SetRequiresApprovalFn func(ctx context.Context, id string, v bool) error
	DeleteFn              func(ctx context.Context, id string) error
	RolesFn               func(ctx context.Context, userID string) ([]domain.Role, error)
	GrantRoleFn           func(ctx context.Context, userID string, r domain.Role) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) SetRequiresApproval(ctx context.Context, id string, v bool) error {
	if m.SetRequiresApprovalFn != nil {
		return m.SetRequiresApprovalFn(ctx, id, v)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) Roles(ctx context.Context, userID string) ([]domain.Role, error) {
	if m.RolesFn != nil {
		return m.RolesFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GrantRole(ctx context.Context, userID string, r domain.Role) error {
	if m.GrantRoleFn != nil {
		return m.GrantRoleFn(ctx, userID, r)
	}
	return nil
}
