package chatmock

import (
	"context"
	"time"

	domain "krysselista-backend/internal/domain/chat"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn          func(ctx context.Context, m *domain.Message) error
	ListByChildFn     func(ctx context.Context, childID string, since time.Time) ([]domain.Message, error)
	DeleteOlderThanFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *Repo) Create(ctx context.Context, msg *domain.Message) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, msg)
	}
	return nil
}

func (m *Repo) ListByChild(ctx context.Context, childID string, since time.Time) ([]domain.Message, error) {
	if m.ListByChildFn != nil {
		return m.ListByChildFn(ctx, childID, since)
	}
	return nil, context.Canceled
}

func (m *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanFn != nil {
		return m.DeleteOlderThanFn(ctx, cutoff)
	}
	return 0, context.Canceled
}
