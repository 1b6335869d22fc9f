package child

import "context"

type Repository interface {
	Create(ctx context.Context, c *Child) error
	GetByID(ctx context.Context, id string) (*Child, error)
	Link(ctx context.Context, parentID, childID string) error
	IsLinked(ctx context.Context, parentID, childID string) (bool, error)
	ListByParent(ctx context.Context, parentID string) ([]Child, error)
	ListAll(ctx context.Context) ([]Child, error)
}
