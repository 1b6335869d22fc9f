package attendance

import (
	"context"
	"errors"
	"time"

	"krysselista-backend/internal/auth"
	domain "krysselista-backend/internal/domain/attendance"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/feed"
	"krysselista-backend/internal/domain/storage"
	"krysselista-backend/internal/metrics"
	"krysselista-backend/internal/usecase/access"
	"krysselista-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LogDTO struct {
	ID           string     `json:"id"`
	ChildID      string     `json:"child_id"`
	CheckedInAt  time.Time  `json:"checked_in_at"`
	CheckedInBy  string     `json:"checked_in_by"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	CheckedOutBy *string    `json:"checked_out_by,omitempty"`
	Present      bool       `json:"present"`
}

type Usecase struct {
	repo     domain.Repository
	children child.Repository
	pub      feed.Publisher
	log      *zap.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewUsecase: loc decides where "today" starts. pub may be nil.
func NewUsecase(r domain.Repository, children child.Repository, pub feed.Publisher, loc *time.Location, log *zap.Logger) *Usecase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, children: children, pub: pub, log: log, loc: loc, now: time.Now}
}

func (u *Usecase) dayStart() time.Time {
	n := u.now().In(u.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, u.loc).UTC()
}

// CheckIn is refused while the child has an open check-in today. A child
// checked out earlier today may be checked in again.
func (u *Usecase) CheckIn(ctx context.Context, staffID, childID string) (*LogDTO, string, error) {
	c, err := u.child(ctx, childID)
	if err != nil {
		return nil, "", err
	}

	l := &domain.Log{ID: id.New(), ChildID: childID, CheckedInAt: u.now().UTC(), CheckedInBy: staffID}
	ok, err := u.repo.CheckIn(ctx, l, u.dayStart())
	if err != nil {
		return nil, c.Name, storage.Wrap(err)
	}
	if !ok {
		return nil, c.Name, domain.ErrAlreadyCheckedIn
	}
	u.publish(ctx, childID)
	dto := toDTO(l)
	return &dto, c.Name, nil
}

func (u *Usecase) CheckOut(ctx context.Context, staffID, childID string) (*LogDTO, string, error) {
	c, err := u.child(ctx, childID)
	if err != nil {
		return nil, "", err
	}

	latest, err := u.repo.LatestSince(ctx, childID, u.dayStart())
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !latest.Open()) {
		return nil, c.Name, domain.ErrNotCheckedIn
	}
	if err != nil {
		return nil, c.Name, storage.Wrap(err)
	}

	at := u.now().UTC()
	ok, err := u.repo.CheckOut(ctx, latest.ID, staffID, at)
	if err != nil {
		return nil, c.Name, storage.Wrap(err)
	}
	if !ok {
		// someone else checked the child out in between
		return nil, c.Name, domain.ErrNotCheckedIn
	}
	latest.CheckedOutAt, latest.CheckedOutBy = &at, &staffID
	u.publish(ctx, childID)
	dto := toDTO(latest)
	return &dto, c.Name, nil
}

// Today lists every check-in since midnight, newest first.
func (u *Usecase) Today(ctx context.Context) ([]LogDTO, error) {
	rows, err := u.repo.ListSince(ctx, u.dayStart())
	if err != nil {
		return nil, storage.Wrap(err)
	}
	out := make([]LogDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

// ChildToday returns the child's latest log today, or nil when not checked in.
func (u *Usecase) ChildToday(ctx context.Context, s auth.Session, childID string) (*LogDTO, error) {
	if err := access.ChildAccess(ctx, u.children, s, childID); err != nil {
		return nil, err
	}
	l, err := u.repo.LatestSince(ctx, childID, u.dayStart())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storage.Wrap(err)
	}
	dto := toDTO(l)
	return &dto, nil
}

func (u *Usecase) child(ctx context.Context, childID string) (*child.Child, error) {
	c, err := u.children.GetByID(ctx, childID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, child.ErrNotFound
	}
	if err != nil {
		return nil, storage.Wrap(err)
	}
	return c, nil
}

func (u *Usecase) publish(ctx context.Context, childID string) {
	if u.pub == nil {
		return
	}
	if err := u.pub.Publish(ctx, feed.TopicAttendance, childID); err != nil {
		metrics.FeedPublishErrors.Inc()
		u.log.Warn("attendance change not published", zap.String("child_id", childID), zap.Error(err))
	}
}

func toDTO(l *domain.Log) LogDTO {
	return LogDTO{
		ID: l.ID, ChildID: l.ChildID,
		CheckedInAt: l.CheckedInAt, CheckedInBy: l.CheckedInBy,
		CheckedOutAt: l.CheckedOutAt, CheckedOutBy: l.CheckedOutBy,
		Present: l.Open(),
	}
}
