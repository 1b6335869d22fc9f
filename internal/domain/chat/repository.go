package chat

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	ListByChild(ctx context.Context, childID string, since time.Time) ([]Message, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
