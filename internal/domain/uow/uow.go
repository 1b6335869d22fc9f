package uow

import (
	"context"

	"krysselista-backend/internal/domain/authorized"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/pickup"
	"krysselista-backend/internal/domain/profile"
)

// Repos are bound to the same transaction.
type Repos struct {
	Pickups    pickup.Repository
	Profiles   profile.Repository
	Children   child.Repository
	Authorized authorized.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
