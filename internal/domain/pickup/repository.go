package pickup

import "context"

type Repository interface {
	Create(ctx context.Context, r *PickupRequest) error

	// GetByID returns gorm.ErrRecordNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*PickupRequest, error)

	// UpdateIfStatus applies p only while the row is still in status from.
	// It reports whether a row was changed.
	UpdateIfStatus(ctx context.Context, id string, from Status, p Patch) (bool, error)

	// ListByStatus preloads child and parent display info.
	ListByStatus(ctx context.Context, q ListQuery) ([]PickupRequest, error)

	ListByParent(ctx context.Context, parentID string, limit int) ([]PickupRequest, error)
}
