package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	SetRequiresApproval(ctx context.Context, id string, v bool) error
	// Delete removes the profile and its roles.
	Delete(ctx context.Context, id string) error

	Roles(ctx context.Context, userID string) ([]Role, error)
	GrantRole(ctx context.Context, userID string, r Role) error
}
