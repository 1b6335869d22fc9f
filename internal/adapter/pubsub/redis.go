package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"krysselista-backend/internal/domain/feed"

	"github.com/redis/go-redis/v9"
)

// RedisFeed fans change signals out over Redis pub/sub.
// Every change is published on the global channel and on the child's channel.
// After a reconnect subscribers receive a TopicResync signal, since anything
// published while the connection was down is lost.
type RedisFeed struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisFeed(rdb *redis.Client, prefix string) *RedisFeed {
	return &RedisFeed{rdb: rdb, prefix: prefix, now: time.Now}
}

func (f *RedisFeed) channel(s feed.Scope) string {
	if s.Global() {
		return f.prefix + ":pickups"
	}
	return f.prefix + ":pickups:child:" + s.ChildID
}

func (f *RedisFeed) Publish(ctx context.Context, topic feed.Topic, childID string) error {
	b, err := json.Marshal(feed.Signal{Topic: topic, ChildID: childID, At: f.now().UTC()})
	if err != nil {
		return err
	}
	pipe := f.rdb.Pipeline()
	pipe.Publish(ctx, f.channel(feed.All()), b)
	if childID != "" {
		pipe.Publish(ctx, f.channel(feed.Child(childID)), b)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", feed.ErrUnavailable, err)
	}
	return nil
}

// Subscribe returns once Redis confirmed the subscription.
func (f *RedisFeed) Subscribe(ctx context.Context, scope feed.Scope, fn func(feed.Signal)) (feed.Subscription, error) {
	ps := f.rdb.Subscribe(ctx, f.channel(scope))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("%w: %v", feed.ErrUnavailable, err)
	}

	s := &subscription{ps: ps, done: make(chan struct{})}
	go s.loop(ctx, ps.ChannelWithSubscriptions(), fn, f.now)
	return s, nil
}

type subscription struct {
	ps   *redis.PubSub
	done chan struct{}
	once sync.Once
	err  error
}

func (s *subscription) loop(ctx context.Context, msgs <-chan interface{}, fn func(feed.Signal), now func() time.Time) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return
		case m, ok := <-msgs:
			if !ok {
				return
			}
			switch m := m.(type) {
			case *redis.Subscription:
				// go-redis resubscribes on its own after a dropped connection
				if m.Kind == "subscribe" {
					fn(feed.Signal{Topic: feed.TopicResync, At: now().UTC()})
				}
			case *redis.Message:
				var sig feed.Signal
				if err := json.Unmarshal([]byte(m.Payload), &sig); err != nil {
					// still a change; subscribers only refetch
					sig = feed.Signal{At: now().UTC()}
				}
				fn(sig)
			}
		}
	}
}

func (s *subscription) Done() <-chan struct{} { return s.done }

func (s *subscription) Close() error {
	s.once.Do(func() { s.err = s.ps.Close() })
	return s.err
}
