package auth

import (
	"context"

	"krysselista-backend/internal/domain/profile"
)

// Session is the signed-in user and the role selected for this session.
// It is populated by the auth middleware and lives only as long as the request context.
type Session struct {
	UserID string
	Role   profile.Role
	Name   string
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok && s.UserID != ""
}
