package pickup

import (
	"time"

	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/profile"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// ParentSentinel in place of a registry entry id means the parent collects the child.
const ParentSentinel = "parent"

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Terminal states accept no further transitions.
func (s Status) Terminal() bool { return s == StatusRejected || s == StatusCompleted }

// Table: pickup_logs
type PickupRequest struct {
	ID       string `gorm:"column:id;type:char(36);primaryKey"`
	ChildID  string `gorm:"column:child_id;type:char(36);not null;index:idx_pickup_logs_child"`
	ParentID string `gorm:"column:parent_id;type:char(36);not null;index:idx_pickup_logs_parent"`

	// Copied from the registry at creation; later registry edits must not rewrite history.
	PickupPersonName string  `gorm:"column:pickup_person_name;size:100;not null"`
	PickupPersonID   *string `gorm:"column:pickup_person_id;type:char(36)"`

	Status               Status     `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_pickup_logs_status"`
	RequestedAt          time.Time  `gorm:"column:requested_at;not null"`
	EstimatedArrivalTime *time.Time `gorm:"column:estimated_arrival_time"`
	ApprovedAt           *time.Time `gorm:"column:approved_at"`
	ApprovedBy           *string    `gorm:"column:approved_by;type:char(36)"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`

	// read-only joins
	Child  *child.Child     `gorm:"foreignKey:ChildID;references:ID"`
	Parent *profile.Profile `gorm:"foreignKey:ParentID;references:ID"`
}

func (PickupRequest) TableName() string { return "pickup_logs" }

// AutoApproved reports whether the request was approved by the requesting parent,
// which happens only when the parent did not require staff approval.
func (p *PickupRequest) AutoApproved() bool {
	return p.ApprovedBy != nil && *p.ApprovedBy == p.ParentID
}

// Patch holds the columns a transition writes. Nil fields are left untouched.
type Patch struct {
	Status      Status
	ApprovedAt  *time.Time
	ApprovedBy  *string
	CompletedAt *time.Time
}

func (p Patch) Columns() map[string]any {
	cols := map[string]any{"status": p.Status}
	if p.ApprovedAt != nil {
		cols["approved_at"] = *p.ApprovedAt
	}
	if p.ApprovedBy != nil {
		cols["approved_by"] = *p.ApprovedBy
	}
	if p.CompletedAt != nil {
		cols["completed_at"] = *p.CompletedAt
	}
	return cols
}

type Ordering string

const (
	NewestFirst Ordering = "newest"
	OldestFirst Ordering = "oldest"
)

type ListQuery struct {
	Status Status
	Limit  int // <= 0: unbounded
	Order  Ordering
}

// SortColumn is the timestamp a status list is ordered by: pending by request time,
// approved by approval time, completed by completion time.
func SortColumn(s Status) string {
	switch s {
	case StatusApproved:
		return "approved_at"
	case StatusCompleted:
		return "completed_at"
	default:
		return "requested_at"
	}
}

// PageLimit is the dashboard page size for a status. Zero means the full list.
func PageLimit(s Status) int {
	switch s {
	case StatusApproved:
		return 10
	case StatusCompleted:
		return 20
	default:
		return 0
	}
}
