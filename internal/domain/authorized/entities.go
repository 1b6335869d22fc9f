package authorized

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("authorized pickup not found")
	ErrNoConsent  = errors.New("consent is required")
	ErrNotAllowed = errors.New("not allowed to manage pickups for this child")
)

// Table: authorized_pickups
type Entry struct {
	ID           string     `gorm:"column:id;type:char(36);primaryKey"`
	ChildID      string     `gorm:"column:child_id;type:char(36);not null;index:idx_authorized_pickups_child"`
	Name         string     `gorm:"column:name;size:100;not null"`
	Relationship string     `gorm:"column:relationship;size:50;not null"`
	Phone        *string    `gorm:"column:phone;size:20"`
	ConsentGiven bool       `gorm:"column:consent_given;not null;default:false"`
	ConsentDate  *time.Time `gorm:"column:consent_date"`
	CreatedBy    string     `gorm:"column:created_by;type:char(36);not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Entry) TableName() string { return "authorized_pickups" }

// Eligible reports whether the entry may be named as pickup person for childID.
func (e *Entry) Eligible(childID string) bool {
	return e.ChildID == childID && e.ConsentGiven
}
