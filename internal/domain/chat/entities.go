package chat

import "time"

// Messages are kept for this long and then purged.
const Retention = 24 * time.Hour

// Table: chat_messages
type Message struct {
	ID         string    `gorm:"column:id;type:char(36);primaryKey"`
	ChildID    string    `gorm:"column:child_id;type:char(36);not null;index:idx_chat_messages_child"`
	SenderID   string    `gorm:"column:sender_id;type:char(36);not null"`
	SenderRole string    `gorm:"column:sender_role;type:varchar(16);not null"`
	Message    string    `gorm:"column:message;size:1000;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;index:idx_chat_messages_created"`
}

func (Message) TableName() string { return "chat_messages" }
