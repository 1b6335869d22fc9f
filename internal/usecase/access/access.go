package access

import (
	"context"

	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/storage"
)

// ChildAccess lets staff act on any child and parents only on their own.
func ChildAccess(ctx context.Context, children child.Repository, s auth.Session, childID string) error {
	if s.Role.Staff() {
		return nil
	}
	linked, err := children.IsLinked(ctx, s.UserID, childID)
	if err != nil {
		return storage.Wrap(err)
	}
	if !linked {
		return child.ErrNotLinked
	}
	return nil
}
