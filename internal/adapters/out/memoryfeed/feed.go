// Package memoryfeed carries the change feed in process. Used in tests and
// in single-node deployments without a broker. Honors the same contract as
// the Kafka feed: at least once, ordered per publisher goroutine.
package memoryfeed

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
)

type subscriber struct {
	ch        chan events.Event
	predicate ports.EventPredicate
	ctx       context.Context
}

// Feed implements ports.ChangeFeed with in-process fan-out. A slow
// subscriber blocks Publish rather than losing events; buffer sizing keeps
// that from mattering in practice.
type Feed struct {
	mu     sync.Mutex
	subs   []*subscriber
	buffer int
}

// NewFeed creates an in-process change feed. bufferSize is the per-subscriber
// channel capacity; zero picks a sensible default.
func NewFeed(bufferSize int) *Feed {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Feed{buffer: bufferSize}
}

// Publish delivers the event to every live subscriber whose predicate
// matches.
func (f *Feed) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	live := f.subs[:0]
	for _, sub := range f.subs {
		if sub.ctx.Err() != nil {
			close(sub.ch)
			continue
		}
		live = append(live, sub)

		if sub.predicate != nil && !sub.predicate(event) {
			continue
		}

		select {
		case sub.ch <- event:
		case <-sub.ctx.Done():
		case <-ctx.Done():
			f.subs = live
			return ctx.Err()
		}
	}
	f.subs = live

	return nil
}

// Subscribe returns a stream of matching events. The channel closes after
// ctx is done, on the next publish.
func (f *Feed) Subscribe(ctx context.Context, predicate ports.EventPredicate) (<-chan events.Event, error) {
	sub := &subscriber{
		ch:        make(chan events.Event, f.buffer),
		predicate: predicate,
		ctx:       ctx,
	}

	f.mu.Lock()
	f.subs = append(f.subs, sub)
	f.mu.Unlock()

	return sub.ch, nil
}
