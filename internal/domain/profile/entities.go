package profile

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("profile not found")
	ErrEmailUsed  = errors.New("email already registered")
	// ErrHasHistory refuses deleting a profile that pickup history still points at.
	ErrHasHistory = errors.New("profile has pickup history")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleParent   Role = "parent"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee || r == RoleParent
}

// Staff roles may act on the pickup queue.
func (r Role) Staff() bool { return r == RoleAdmin || r == RoleEmployee }

// Table: profiles
type Profile struct {
	ID           string `gorm:"column:id;type:char(36);primaryKey"`
	FullName     string `gorm:"column:full_name;size:100;not null"`
	Email        string `gorm:"column:email;size:255;not null;uniqueIndex:ux_profiles_email"`
	PasswordHash string `gorm:"column:password_hash;size:100;not null"`
	// Read when a pickup is requested; later changes do not affect existing requests.
	RequiresApproval bool      `gorm:"column:requires_approval;not null;default:true"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Profile) TableName() string { return "profiles" }

// Table: user_roles
type UserRole struct {
	UserID string `gorm:"column:user_id;type:char(36);primaryKey"`
	Role   Role   `gorm:"column:role;type:varchar(16);primaryKey"`
}

func (UserRole) TableName() string { return "user_roles" }
