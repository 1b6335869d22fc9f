package pickupmock

import (
	"context"

	domain "krysselista-backend/internal/domain/pickup"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, r *domain.PickupRequest) error
	GetByIDFn        func(ctx context.Context, id string) (*domain.PickupRequest, error)
	UpdateIfStatusFn func(ctx context.Context, id string, from domain.Status, p domain.Patch) (bool, error)
	ListByStatusFn   func(ctx context.Context, q domain.ListQuery) ([]domain.PickupRequest, error)
	ListByParentFn   func(ctx context.Context, parentID string, limit int) ([]domain.PickupRequest, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.PickupRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.PickupRequest, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateIfStatus(ctx context.Context, id string, from domain.Status, p domain.Patch) (bool, error) {
	if m.UpdateIfStatusFn != nil {
		return m.UpdateIfStatusFn(ctx, id, from, p)
	}
	return false, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, q domain.ListQuery) ([]domain.PickupRequest, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, q)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByParent(ctx context.Context, parentID string, limit int) ([]domain.PickupRequest, error) {
	if m.ListByParentFn != nil {
		return m.ListByParentFn(ctx, parentID, limit)
	}
	return nil, context.Canceled
}
