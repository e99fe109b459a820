package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
)

// eventPublisher publishes change-feed events after a handler's transaction
// commits. Publication is fire-and-forget: state is already durable, and a
// failed publish is repaired by observers rebuilding from a snapshot, so the
// error is logged rather than returned.
type eventPublisher struct {
	feed   ports.ChangeFeed
	logger *slog.Logger
}

// newEventPublisher wires a publisher for a command handler.
// A nil logger falls back to slog.Default.
func newEventPublisher(feed ports.ChangeFeed, logger *slog.Logger) eventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return eventPublisher{feed: feed, logger: logger}
}

// publish emits the event, logging any feed failure.
func (p eventPublisher) publish(ctx context.Context, event events.Event) {
	if p.feed == nil {
		return
	}
	if err := p.feed.Publish(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish change-feed event",
			"kind", event.Kind, "order_id", event.OrderID, "courier_id", event.CourierID, "error", err)
	}
}
