package child

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("child not found")
	ErrNotLinked = errors.New("parent is not linked to child")
)

// Table: children
type Child struct {
	ID        string     `gorm:"column:id;type:char(36);primaryKey"`
	Name      string     `gorm:"column:name;size:100;not null"`
	BirthDate *time.Time `gorm:"column:birth_date;type:date"`
	Notes     string     `gorm:"column:notes;size:500"`
	PhotoURL  string     `gorm:"column:photo_url;type:text"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Child) TableName() string { return "children" }

// Table: parent_children
type ParentChild struct {
	ParentID string `gorm:"column:parent_id;type:char(36);primaryKey"`
	ChildID  string `gorm:"column:child_id;type:char(36);primaryKey"`
}

func (ParentChild) TableName() string { return "parent_children" }
