package feed

import (
	"context"
	"errors"
	"time"
)

var ErrUnavailable = errors.New("change feed unavailable")

// Topic names what changed for a child.
type Topic string

const (
	TopicPickups    Topic = "pickups"
	TopicChat       Topic = "chat"
	TopicAttendance Topic = "attendance"
	// TopicResync is raised by the feed itself after it may have missed signals.
	TopicResync Topic = "resync"
)

// Signal tells subscribers that rows changed. It carries no diff.
type Signal struct {
	Topic   Topic     `json:"topic,omitempty"`
	ChildID string    `json:"child_id,omitempty"`
	At      time.Time `json:"at"`
}

// Concerns reports whether a cache of topic t must be refetched. Resyncs and
// signals of unknown topic concern everyone.
func (s Signal) Concerns(t Topic) bool {
	return s.Topic == t || s.Topic == TopicResync || s.Topic == ""
}

// Scope selects which changes a subscriber hears about. The zero value is every change.
type Scope struct {
	ChildID string
}

func All() Scope { return Scope{} }
func Child(childID string) Scope { return Scope{ChildID: childID} }
func (s Scope) Global() bool { return s.ChildID == "" }

type Publisher interface {
	// Publish signals a change of topic on the global scope and on the child's scope.
	Publish(ctx context.Context, topic Topic, childID string) error
}

type Subscription interface {
	// Done is closed once the subscription stops delivering signals.
	Done() <-chan struct{}
	Close() error
}

type Subscriber interface {
	// Subscribe calls fn for every signal until the subscription is closed or ctx ends.
	Subscribe(ctx context.Context, scope Scope, fn func(Signal)) (Subscription, error)
}

type Feed interface {
	Publisher
	Subscriber
}
