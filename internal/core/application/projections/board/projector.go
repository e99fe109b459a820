// Package board maintains the live dispatch board: a read-only projection of
// every active order folded from the change feed. The board is derived state;
// it can always be discarded and rebuilt from a storage snapshot, so the
// projector favors availability over durability.
package board

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Partition names one of the board's four columns.
type Partition string

const (
	// PartitionReady holds orders awaiting an offer, including orders whose
	// last offer was refused.
	PartitionReady Partition = "ready"
	// PartitionOffered holds orders with one outstanding offer.
	PartitionOffered Partition = "offered"
	// PartitionAccepted holds accepted orders up to pickup, including
	// couriers already at the pickup point.
	PartitionAccepted Partition = "accepted"
	// PartitionInProgress holds shipments on the road.
	PartitionInProgress Partition = "in_progress"
)

// partitionFor maps an order status onto a board partition. Terminal
// statuses map to nothing; their orders leave the board.
func partitionFor(status order.Status) (Partition, bool) {
	switch status {
	case order.Ready, order.Refused:
		return PartitionReady, true
	case order.Offered:
		return PartitionOffered, true
	case order.CourierAccepted, order.ArrivedPickup:
		return PartitionAccepted, true
	case order.InProgress:
		return PartitionInProgress, true
	default:
		return "", false
	}
}

// Entry is one order's row on the board.
type Entry struct {
	OrderID   string    `json:"order_id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CourierID string    `json:"courier_id,omitempty"`
	Refusals  int       `json:"refusals"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Board is a point-in-time snapshot, entries per partition sorted by
// reference for stable output.
type Board map[Partition][]Entry

// Projector folds change-feed events into the board.
//
// The feed delivers at least once with ordering only per order, so the fold
// is a status-keyed upsert: each event carries the order's full post-
// transition state, and applying the same event twice lands on the same
// entry. An event older than the entry it would replace is dropped; an
// order that reached a terminal status is tombstoned so late events cannot
// resurrect it.
type Projector struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	tombstones map[string]struct{}
	watchers   map[chan events.Event]struct{}
	logger     *slog.Logger
}

// NewProjector creates an empty board projector.
func NewProjector(logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projector{
		entries:    make(map[string]Entry),
		tombstones: make(map[string]struct{}),
		watchers:   make(map[chan events.Event]struct{}),
		logger:     logger,
	}
}

// Run subscribes to the feed and folds order events until ctx is done.
func (p *Projector) Run(ctx context.Context, feed ports.ChangeFeed) error {
	stream, err := feed.Subscribe(ctx, events.Event.IsOrderEvent)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-stream:
			if !ok {
				return nil
			}
			p.Apply(ev)
		}
	}
}

// Apply folds one event into the board. Safe for concurrent use; duplicate
// and out-of-order deliveries are no-ops.
func (p *Projector) Apply(ev events.Event) {
	if !ev.IsOrderEvent() {
		return
	}

	status, err := order.StatusFromString(ev.Status)
	if err != nil {
		p.logger.Warn("Dropping feed event with unknown status",
			"order_id", ev.OrderID, "status", ev.Status)
		return
	}

	p.mu.Lock()

	if _, gone := p.tombstones[ev.OrderID]; gone {
		p.mu.Unlock()
		return
	}

	if prev, ok := p.entries[ev.OrderID]; ok && ev.OccurredAt.Before(prev.UpdatedAt) {
		p.mu.Unlock()
		return
	}

	if status.IsTerminal() {
		delete(p.entries, ev.OrderID)
		p.tombstones[ev.OrderID] = struct{}{}
	} else {
		p.entries[ev.OrderID] = Entry{
			OrderID:   ev.OrderID,
			Reference: ev.Reference,
			Status:    ev.Status,
			CourierID: ev.CourierID,
			Refusals:  ev.Refusals,
			UpdatedAt: ev.OccurredAt,
		}
	}
	p.mu.Unlock()

	p.notify(ev)
}

// Rebuild replaces the whole board with a storage snapshot. Called on a cold
// start before folding live events, and whenever a consumer suspects drift.
//
// Entries without their own timestamp are stamped with the snapshot time, so
// the staleness check keeps dropping redelivered history instead of letting
// any old event overwrite the fresher snapshot state.
func (p *Projector) Rebuild(entries []Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rebuiltAt := time.Now()
	p.entries = make(map[string]Entry, len(entries))
	p.tombstones = make(map[string]struct{})
	for _, e := range entries {
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = rebuiltAt
		}
		p.entries[e.OrderID] = e
	}
}

// Snapshot returns the current board. The result is a copy; callers may
// keep it without holding up the fold.
func (p *Projector) Snapshot() Board {
	p.mu.RLock()
	defer p.mu.RUnlock()

	board := Board{
		PartitionReady:      {},
		PartitionOffered:    {},
		PartitionAccepted:   {},
		PartitionInProgress: {},
	}

	for _, e := range p.entries {
		status, err := order.StatusFromString(e.Status)
		if err != nil {
			continue
		}
		partition, ok := partitionFor(status)
		if !ok {
			continue
		}
		board[partition] = append(board[partition], e)
	}

	for partition := range board {
		entries := board[partition]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Reference < entries[j].Reference
		})
	}

	return board
}

// Watch registers a board observer. Events are delivered after they are
// folded; a slow observer loses events rather than stalling the board, and
// repairs itself with a Snapshot.
func (p *Projector) Watch() chan events.Event {
	ch := make(chan events.Event, 16)
	p.mu.Lock()
	p.watchers[ch] = struct{}{}
	p.mu.Unlock()
	return ch
}

// Unwatch removes an observer and closes its channel.
func (p *Projector) Unwatch(ch chan events.Event) {
	p.mu.Lock()
	if _, ok := p.watchers[ch]; ok {
		delete(p.watchers, ch)
		close(ch)
	}
	p.mu.Unlock()
}

func (p *Projector) notify(ev events.Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for ch := range p.watchers {
		select {
		case ch <- ev:
		default:
			p.logger.Debug("Board watcher is slow; dropping event",
				"order_id", ev.OrderID, "kind", string(ev.Kind))
		}
	}
}
