package board_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/projections/board"
	"dispatch/internal/core/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderEvent(kind events.Kind, orderID, reference, status, courierID string, at time.Time) events.Event {
	return events.Event{
		Kind:       kind,
		OrderID:    orderID,
		Reference:  reference,
		Status:     status,
		CourierID:  courierID,
		OccurredAt: at,
	}
}

func boardEntries(b board.Board) int {
	n := 0
	for _, entries := range b {
		n += len(entries)
	}
	return n
}

func TestProjectorApply_PlacesOrderOnBoard(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	p.Apply(orderEvent(events.OrderCreated, "o1", "A-100", "ready", "", at))

	snapshot := p.Snapshot()
	require.Len(t, snapshot[board.PartitionReady], 1)
	entry := snapshot[board.PartitionReady][0]
	assert.Equal(t, "o1", entry.OrderID)
	assert.Equal(t, "A-100", entry.Reference)
	assert.Equal(t, at, entry.UpdatedAt)
}

func TestProjectorApply_MovesOrderBetweenPartitions(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	p.Apply(orderEvent(events.OrderCreated, "o1", "A-100", "ready", "", at))
	p.Apply(orderEvent(events.OrderOffered, "o1", "A-100", "offered", "c1", at.Add(time.Second)))
	p.Apply(orderEvent(events.OrderAccepted, "o1", "A-100", "courier_accepted", "c1", at.Add(2*time.Second)))

	snapshot := p.Snapshot()
	assert.Empty(t, snapshot[board.PartitionReady])
	assert.Empty(t, snapshot[board.PartitionOffered])
	require.Len(t, snapshot[board.PartitionAccepted], 1)
	assert.Equal(t, "c1", snapshot[board.PartitionAccepted][0].CourierID)
	assert.Equal(t, 1, boardEntries(snapshot))
}

func TestProjectorApply_DuplicateDeliveryIsIdempotent(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ev := orderEvent(events.OrderOffered, "o1", "A-100", "offered", "c1", at)

	p.Apply(ev)
	p.Apply(ev)

	snapshot := p.Snapshot()
	assert.Equal(t, 1, boardEntries(snapshot))
	require.Len(t, snapshot[board.PartitionOffered], 1)
}

func TestProjectorApply_DropsOutOfOrderEvent(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	p.Apply(orderEvent(events.OrderAccepted, "o1", "A-100", "courier_accepted", "c1", at.Add(time.Minute)))
	// A delayed earlier event must not move the order backward.
	p.Apply(orderEvent(events.OrderOffered, "o1", "A-100", "offered", "c1", at))

	snapshot := p.Snapshot()
	assert.Empty(t, snapshot[board.PartitionOffered])
	require.Len(t, snapshot[board.PartitionAccepted], 1)
}

func TestProjectorApply_TerminalStatusRemovesOrder(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	p.Apply(orderEvent(events.OrderInProgress, "o1", "A-100", "in_progress", "c1", at))
	p.Apply(orderEvent(events.OrderDelivered, "o1", "A-100", "delivered", "", at.Add(time.Minute)))

	assert.Equal(t, 0, boardEntries(p.Snapshot()))

	// A late event for the finished order cannot resurrect it.
	p.Apply(orderEvent(events.OrderInProgress, "o1", "A-100", "in_progress", "c1", at.Add(2*time.Minute)))
	assert.Equal(t, 0, boardEntries(p.Snapshot()))
}

func TestProjectorApply_IgnoresCourierEventsAndUnknownStatus(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	p.Apply(events.NewCourierEvent(events.CourierStuck, "c1", "busy with no active order", at))
	p.Apply(orderEvent(events.OrderCreated, "o1", "A-100", "bogus", "", at))

	assert.Equal(t, 0, boardEntries(p.Snapshot()))
}

func TestProjectorRebuild(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	p.Apply(orderEvent(events.OrderDelivered, "o1", "A-100", "delivered", "", at))
	p.Rebuild([]board.Entry{
		{OrderID: "o2", Reference: "B-200", Status: "ready", UpdatedAt: at},
		{OrderID: "o3", Reference: "B-100", Status: "ready", UpdatedAt: at},
	})

	snapshot := p.Snapshot()
	require.Len(t, snapshot[board.PartitionReady], 2)
	// Entries come back sorted by reference.
	assert.Equal(t, "B-100", snapshot[board.PartitionReady][0].Reference)
	assert.Equal(t, "B-200", snapshot[board.PartitionReady][1].Reference)

	// Rebuild clears tombstones: the feed may legitimately replay history.
	p.Apply(orderEvent(events.OrderCreated, "o1", "A-100", "ready", "", at.Add(time.Minute)))
	assert.Len(t, p.Snapshot()[board.PartitionReady], 3)
}

func TestProjectorRebuild_StaleRedeliveryCannotRegressSnapshot(t *testing.T) {
	p := board.NewProjector(nil)

	// Snapshot entries loaded from storage carry no timestamp of their own;
	// Rebuild stamps them so the staleness check still holds.
	refused := board.Entry{
		OrderID:   "o1",
		Reference: "A-100",
		Status:    "refused",
		Refusals:  1,
	}
	p.Rebuild([]board.Entry{refused})

	// The feed redelivers the offer that preceded the refusal.
	p.Apply(orderEvent(events.OrderOffered, "o1", "A-100", "offered", "c1",
		time.Now().Add(-2*time.Hour)))

	snapshot := p.Snapshot()
	assert.Empty(t, snapshot[board.PartitionOffered])
	require.Len(t, snapshot[board.PartitionReady], 1)
	assert.Equal(t, "refused", snapshot[board.PartitionReady][0].Status)
	assert.Equal(t, 1, snapshot[board.PartitionReady][0].Refusals)
}

func TestProjectorSnapshot_PartitionsRefusedWithReady(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	ev := orderEvent(events.OrderRefused, "o1", "A-100", "refused", "", at)
	ev.Refusals = 1
	p.Apply(ev)

	snapshot := p.Snapshot()
	require.Len(t, snapshot[board.PartitionReady], 1)
	assert.Equal(t, 1, snapshot[board.PartitionReady][0].Refusals)
}

func TestProjectorWatch(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	ch := p.Watch()
	defer p.Unwatch(ch)

	p.Apply(orderEvent(events.OrderCreated, "o1", "A-100", "ready", "", at))

	select {
	case ev := <-ch:
		assert.Equal(t, events.OrderCreated, ev.Kind)
		assert.Equal(t, "o1", ev.OrderID)
	default:
		t.Fatal("expected a folded event on the watch channel")
	}
}

func TestProjectorWatch_SlowWatcherLosesEventsNotTheBoard(t *testing.T) {
	p := board.NewProjector(nil)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	ch := p.Watch()
	defer p.Unwatch(ch)

	// Overflow the watcher buffer; the fold must keep going.
	for i := 0; i < 100; i++ {
		p.Apply(orderEvent(events.OrderCreated, "o1", "A-100", "ready", "", at.Add(time.Duration(i)*time.Second)))
	}

	assert.Equal(t, 1, boardEntries(p.Snapshot()))
	assert.LessOrEqual(t, len(ch), 16)
}
