package ports

import (
	"context"

	"dispatch/internal/core/domain/events"
)

// EventPredicate filters a change-feed subscription. A nil predicate
// receives every event.
type EventPredicate func(events.Event) bool

// ChangeFeed is the at-least-once event stream connecting the coordinator to
// external actors and observers. All cross-process communication flows
// through it; no component polls another's private state.
//
// Delivery contract: at least once, ordered per order only. Consumers must
// apply events idempotently and must not rely on ordering across different
// orders.
type ChangeFeed interface {
	// Publish appends an event to the feed. The coordinator publishes after
	// its transaction commits; a publish failure is logged, not rolled back,
	// since observers repair through snapshot rebuilds.
	Publish(ctx context.Context, event events.Event) error

	// Subscribe returns a stream of events matching the predicate. The
	// channel is closed when ctx is done.
	Subscribe(ctx context.Context, predicate EventPredicate) (<-chan events.Event, error)
}
