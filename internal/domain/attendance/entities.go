package attendance

import (
	"errors"
	"time"
)

var (
	ErrAlreadyCheckedIn = errors.New("child already checked in")
	ErrNotCheckedIn     = errors.New("child is not checked in")
)

// Table: attendance_logs
type Log struct {
	ID           string     `gorm:"column:id;type:char(36);primaryKey"`
	ChildID      string     `gorm:"column:child_id;type:char(36);not null;index:idx_attendance_logs_child"`
	CheckedInAt  time.Time  `gorm:"column:checked_in_at;not null;index:idx_attendance_logs_checked_in"`
	CheckedInBy  string     `gorm:"column:checked_in_by;type:char(36);not null"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at"`
	CheckedOutBy *string    `gorm:"column:checked_out_by;type:char(36)"`
}

func (Log) TableName() string { return "attendance_logs" }

func (l *Log) Open() bool { return l.CheckedOutAt == nil }
