package childmock

import (
	"context"

	domain "krysselista-backend/internal/domain/child"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn       func(ctx context.Context, c *domain.Child) error
	GetByIDFn      func(ctx context.Context, id string) (*domain.Child, error)
	LinkFn         func(ctx context.Context, parentID, childID string) error
	IsLinkedFn     func(ctx context.Context, parentID, childID string) (bool, error)
	ListByParentFn func(ctx context.Context, parentID string) ([]domain.Child, error)
	ListAllFn      func(ctx context.Context) ([]domain.Child, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Child) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Child, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Link(ctx context.Context, parentID, childID string) error {
	if m.LinkFn != nil {
		return m.LinkFn(ctx, parentID, childID)
	}
	return nil
}

func (m *Repo) IsLinked(ctx context.Context, parentID, childID string) (bool, error) {
	if m.IsLinkedFn != nil {
		return m.IsLinkedFn(ctx, parentID, childID)
	}
	return false, context.Canceled
}

func (m *Repo) ListByParent(ctx context.Context, parentID string) ([]domain.Child, error) {
	if m.ListByParentFn != nil {
		return m.ListByParentFn(ctx, parentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Child, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, context.Canceled
}
