package pickup

import (
	"context"
	"sync"
	"time"

	"krysselista-backend/internal/domain/feed"
	domain "krysselista-backend/internal/domain/pickup"

	"go.uber.org/zap"
)

var boardStatuses = []domain.Status{domain.StatusPending, domain.StatusApproved, domain.StatusCompleted}

// Board caches the staff dashboard lists. A feed signal marks every list stale
// and the next Snapshot refetches. Without a working subscription every
// Snapshot refetches and reports Live=false.
type Board struct {
	uc  *Usecase
	sub feed.Subscriber
	log *zap.Logger

	refresh sync.Mutex // serializes refetches

	mu     sync.Mutex
	lists  map[domain.Status][]PickupDTO
	stale  bool
	live   bool
	subscr feed.Subscription
	at     time.Time
}

func NewBoard(uc *Usecase, sub feed.Subscriber, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	return &Board{uc: uc, sub: sub, log: log, lists: map[domain.Status][]PickupDTO{}, stale: true}
}

// Start subscribes to every change; only pickup and resync signals invalidate. A failed subscription is logged and
// leaves the board in polling mode; it is never returned to the caller.
func (b *Board) Start(ctx context.Context) {
	if b.sub == nil {
		return
	}
	s, err := b.sub.Subscribe(ctx, feed.All(), b.invalidate)
	if err != nil {
		b.log.Warn("board: live updates unavailable", zap.Error(err))
		return
	}

	b.mu.Lock()
	b.subscr = s
	b.live = true
	b.stale = true
	b.mu.Unlock()

	go func() {
		<-s.Done()
		b.mu.Lock()
		b.live = false
		b.mu.Unlock()
		b.log.Info("board: live updates stopped")
	}()
}

func (b *Board) invalidate(s feed.Signal) {
	if !s.Concerns(feed.TopicPickups) {
		return
	}
	b.mu.Lock()
	b.stale = true
	b.mu.Unlock()
}

func (b *Board) Live() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}

// Snapshot returns the three lists, refetching when they are stale. A failed
// refetch returns the error and keeps the board stale.
func (b *Board) Snapshot(ctx context.Context) (*BoardView, error) {
	b.refresh.Lock()
	defer b.refresh.Unlock()

	b.mu.Lock()
	need := b.stale || !b.live
	// cleared before fetching so a signal arriving mid-fetch marks the result stale again
	b.stale = false
	b.mu.Unlock()

	if need {
		fresh := make(map[domain.Status][]PickupDTO, len(boardStatuses))
		for _, st := range boardStatuses {
			rows, err := b.uc.ListByStatus(ctx, ListInput{Status: string(st)})
			if err != nil {
				b.invalidate(feed.Signal{})
				return nil, err
			}
			fresh[st] = rows
		}
		b.mu.Lock()
		b.lists = fresh
		b.at = b.uc.now().UTC()
		b.mu.Unlock()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return &BoardView{
		Pending:     b.lists[domain.StatusPending],
		Approved:    b.lists[domain.StatusApproved],
		Completed:   b.lists[domain.StatusCompleted],
		Live:        b.live,
		RefreshedAt: b.at,
	}, nil
}

func (b *Board) Close() error {
	b.mu.Lock()
	s := b.subscr
	b.subscr = nil
	b.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Close()
}
