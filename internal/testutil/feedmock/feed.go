package feedmock

import (
	"context"
	"sync"

	"krysselista-backend/internal/domain/feed"
)

var _ feed.Feed = (*Feed)(nil)

// Feed is a function-backed mock of feed.Feed. With SubscribeFn unset it
// records handlers so tests can Emit signals to them.
type Feed struct {
	PublishFn   func(ctx context.Context, topic feed.Topic, childID string) error
	SubscribeFn func(ctx context.Context, scope feed.Scope, fn func(feed.Signal)) (feed.Subscription, error)

	mu        sync.Mutex
	published []string
	topics    []feed.Topic
	handlers  []*Sub
}

func (m *Feed) Publish(ctx context.Context, topic feed.Topic, childID string) error {
	m.mu.Lock()
	m.published = append(m.published, childID)
	m.topics = append(m.topics, topic)
	m.mu.Unlock()
	if m.PublishFn != nil {
		return m.PublishFn(ctx, topic, childID)
	}
	return nil
}

func (m *Feed) Subscribe(ctx context.Context, scope feed.Scope, fn func(feed.Signal)) (feed.Subscription, error) {
	if m.SubscribeFn != nil {
		return m.SubscribeFn(ctx, scope, fn)
	}
	s := &Sub{scope: scope, fn: fn, done: make(chan struct{})}
	m.mu.Lock()
	m.handlers = append(m.handlers, s)
	m.mu.Unlock()
	return s, nil
}

// Published returns the child ids passed to Publish, in call order.
func (m *Feed) Published() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.published...)
}

// Topics returns the topics passed to Publish, in call order.
func (m *Feed) Topics() []feed.Topic {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]feed.Topic(nil), m.topics...)
}

// Emit delivers a signal synchronously to every open subscription whose scope matches.
func (m *Feed) Emit(sig feed.Signal) {
	m.mu.Lock()
	subs := append([]*Sub(nil), m.handlers...)
	m.mu.Unlock()
	for _, s := range subs {
		if s.closed() {
			continue
		}
		if s.scope.Global() || s.scope.ChildID == sig.ChildID {
			s.fn(sig)
		}
	}
}

type Sub struct {
	scope feed.Scope
	fn    func(feed.Signal)
	once  sync.Once
	done  chan struct{}
}

func (s *Sub) Done() <-chan struct{} { return s.done }

func (s *Sub) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *Sub) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
