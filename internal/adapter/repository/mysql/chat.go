package mysql

import (
	"context"
	"time"

	"krysselista-backend/internal/domain/chat"

	"gorm.io/gorm"
)

type ChatRepository struct{ db *gorm.DB }

func NewChatRepository(db *gorm.DB) *ChatRepository { return &ChatRepository{db: db} }

func (r *ChatRepository) Create(ctx context.Context, m *chat.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListByChild returns the conversation oldest first.
func (r *ChatRepository) ListByChild(ctx context.Context, childID string, since time.Time) ([]chat.Message, error) {
	var out []chat.Message
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND created_at >= ?", childID, since).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *ChatRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&chat.Message{})
	return res.RowsAffected, res.Error
}
