package account

import "time"

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// optional; defaults to the most privileged role the user holds
	Role string `json:"role" validate:"omitempty,oneof=admin employee parent"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Roles     []string  `json:"roles"`
}

type PreferenceInput struct {
	RequiresApproval *bool `json:"requires_approval" validate:"required"`
}

type PreferenceDTO struct {
	RequiresApproval bool `json:"requires_approval"`
}
