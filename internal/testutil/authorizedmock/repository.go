package authorizedmock

import (
	"context"

	domain "krysselista-backend/internal/domain/authorized"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn        func(ctx context.Context, e *domain.Entry) error
	GetByIDFn       func(ctx context.Context, id string) (*domain.Entry, error)
	ListConsentedFn func(ctx context.Context, childID string) ([]domain.Entry, error)
	DeleteFn        func(ctx context.Context, id string) error
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListConsented(ctx context.Context, childID string) ([]domain.Entry, error) {
	if m.ListConsentedFn != nil {
		return m.ListConsentedFn(ctx, childID)
	}
	return nil, context.Canceled
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
