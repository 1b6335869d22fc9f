package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// CheckIn stores l unless the child already has an open log checked in at
	// or after since, and reports whether it did.
	CheckIn(ctx context.Context, l *Log, since time.Time) (bool, error)
	// LatestSince returns the newest log for the child checked in at or after since.
	LatestSince(ctx context.Context, childID string, since time.Time) (*Log, error)
	// CheckOut closes the log if it is still open and reports whether it did.
	CheckOut(ctx context.Context, id, by string, at time.Time) (bool, error)
	ListSince(ctx context.Context, since time.Time) ([]Log, error)
}
