package authorized

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	// ListConsented returns only entries with consent_given = true, newest first.
	ListConsented(ctx context.Context, childID string) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
