package chat

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"krysselista-backend/internal/auth"
	domain "krysselista-backend/internal/domain/chat"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/feed"
	"krysselista-backend/internal/domain/storage"
	"krysselista-backend/internal/metrics"
	"krysselista-backend/internal/usecase/access"
	"krysselista-backend/pkg/id"

	"go.uber.org/zap"
)

const MaxMessageLen = 1000

var ErrEmptyMessage = errors.New("message must be 1 to 1000 characters")

type SendInput struct {
	ChildID string `json:"-"`
	Message string `json:"message" validate:"required,max=1000"`
}

type MessageDTO struct {
	ID         string    `json:"id"`
	ChildID    string    `json:"child_id"`
	SenderID   string    `json:"sender_id"`
	SenderRole string    `json:"sender_role"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type Usecase struct {
	repo     domain.Repository
	children child.Repository
	pub      feed.Publisher
	log      *zap.Logger
	now      func() time.Time
}

// NewUsecase: pub may be nil, then nobody hears about new messages.
func NewUsecase(r domain.Repository, children child.Repository, pub feed.Publisher, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, children: children, pub: pub, log: log, now: time.Now}
}

func (u *Usecase) Send(ctx context.Context, s auth.Session, in SendInput) (*MessageDTO, error) {
	text := strings.TrimSpace(in.Message)
	if text == "" || utf8.RuneCountInString(text) > MaxMessageLen {
		return nil, ErrEmptyMessage
	}
	if err := access.ChildAccess(ctx, u.children, s, in.ChildID); err != nil {
		return nil, err
	}
	m := &domain.Message{
		ID:         id.New(),
		ChildID:    in.ChildID,
		SenderID:   s.UserID,
		SenderRole: string(s.Role),
		Message:    text,
		CreatedAt:  u.now().UTC(),
	}
	if err := u.repo.Create(ctx, m); err != nil {
		return nil, storage.Wrap(err)
	}
	if u.pub != nil {
		if err := u.pub.Publish(ctx, feed.TopicChat, in.ChildID); err != nil {
			metrics.FeedPublishErrors.Inc()
			u.log.Warn("chat message not published", zap.String("child_id", in.ChildID), zap.Error(err))
		}
	}
	dto := toDTO(m)
	return &dto, nil
}

// List returns the retained conversation for a child, oldest first.
func (u *Usecase) List(ctx context.Context, s auth.Session, childID string) ([]MessageDTO, error) {
	if err := access.ChildAccess(ctx, u.children, s, childID); err != nil {
		return nil, err
	}
	rows, err := u.repo.ListByChild(ctx, childID, u.now().UTC().Add(-domain.Retention))
	if err != nil {
		return nil, storage.Wrap(err)
	}
	out := make([]MessageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

// Purge deletes messages past retention and reports how many went.
func (u *Usecase) Purge(ctx context.Context) (int64, error) {
	n, err := u.repo.DeleteOlderThan(ctx, u.now().UTC().Add(-domain.Retention))
	return n, storage.Wrap(err)
}

func toDTO(m *domain.Message) MessageDTO {
	return MessageDTO{
		ID: m.ID, ChildID: m.ChildID, SenderID: m.SenderID,
		SenderRole: m.SenderRole, Message: m.Message, CreatedAt: m.CreatedAt,
	}
}
