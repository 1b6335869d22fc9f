package attendancemock

import (
	"context"
	"time"

	domain "krysselista-backend/internal/domain/attendance"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CheckInFn     func(ctx context.Context, l *domain.Log, since time.Time) (bool, error)
	LatestSinceFn func(ctx context.Context, childID string, since time.Time) (*domain.Log, error)
	CheckOutFn    func(ctx context.Context, id, by string, at time.Time) (bool, error)
	ListSinceFn   func(ctx context.Context, since time.Time) ([]domain.Log, error)
}

func (m *Repo) CheckIn(ctx context.Context, l *domain.Log, since time.Time) (bool, error) {
	if m.CheckInFn != nil {
		return m.CheckInFn(ctx, l, since)
	}
	return false, context.Canceled
}

func (m *Repo) LatestSince(ctx context.Context, childID string, since time.Time) (*domain.Log, error) {
	if m.LatestSinceFn != nil {
		return m.LatestSinceFn(ctx, childID, since)
	}
	return nil, context.Canceled
}

func (m *Repo) CheckOut(ctx context.Context, id, by string, at time.Time) (bool, error) {
	if m.CheckOutFn != nil {
		return m.CheckOutFn(ctx, id, by, at)
	}
	return false, context.Canceled
}

func (m *Repo) ListSince(ctx context.Context, since time.Time) ([]domain.Log, error) {
	if m.ListSinceFn != nil {
		return m.ListSinceFn(ctx, since)
	}
	return nil, context.Canceled
}
