package board_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memoryfeed"
	"dispatch/internal/core/application/projections/board"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Walks order A-100 through a full lifecycle with one refusal, publishing
// every transition through the in-process feed and watching the board follow.
func TestBoard_FollowsFullOrderLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	feed := memoryfeed.NewFeed(0)
	projector := board.NewProjector(nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = projector.Run(ctx, feed)
	}()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	firstCourier := kernel.NewUUID()
	secondCourier := kernel.NewUUID()

	o, err := order.NewOrder(kernel.NewUUID(), "A-100", nil)
	require.NoError(t, err)

	publish := func(kind events.Kind, at time.Time) {
		require.NoError(t, feed.Publish(ctx, events.NewOrderEvent(kind, o, at)))
	}
	waitFor := func(partition board.Partition) {
		require.Eventually(t, func() bool {
			return len(projector.Snapshot()[partition]) == 1
		}, time.Second, time.Millisecond, "order never reached %s", partition)
	}

	publish(events.OrderCreated, now)
	waitFor(board.PartitionReady)

	require.NoError(t, o.Offer(firstCourier))
	publish(events.OrderOffered, now.Add(time.Minute))
	waitFor(board.PartitionOffered)

	require.NoError(t, o.Refuse(firstCourier, now.Add(2*time.Minute)))
	publish(events.OrderRefused, now.Add(2*time.Minute))
	waitFor(board.PartitionReady)

	require.Eventually(t, func() bool {
		ready := projector.Snapshot()[board.PartitionReady]
		return len(ready) == 1 && ready[0].Refusals == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, o.Offer(secondCourier))
	publish(events.OrderOffered, now.Add(3*time.Minute))
	waitFor(board.PartitionOffered)

	require.NoError(t, o.Accept(secondCourier))
	publish(events.OrderAccepted, now.Add(4*time.Minute))
	waitFor(board.PartitionAccepted)

	require.NoError(t, o.ArriveAtPickup(secondCourier))
	publish(events.OrderArrivedPickup, now.Add(5*time.Minute))

	require.NoError(t, o.StartDelivery(secondCourier))
	publish(events.OrderInProgress, now.Add(6*time.Minute))
	waitFor(board.PartitionInProgress)

	require.NoError(t, o.CompleteDelivery(secondCourier))
	publish(events.OrderDelivered, now.Add(7*time.Minute))
	require.Eventually(t, func() bool {
		return boardEntries(projector.Snapshot()) == 0
	}, time.Second, time.Millisecond, "delivered order never left the board")

	// A replayed mid-flight event cannot resurrect the finished order.
	replay := events.Event{
		Kind:       events.OrderInProgress,
		OrderID:    o.ID().String(),
		Reference:  "A-100",
		Status:     order.InProgress.String(),
		OccurredAt: now.Add(8 * time.Minute),
	}
	require.NoError(t, feed.Publish(ctx, replay))

	marker := orderEvent(events.OrderCreated, "marker", "Z-999", "ready", "", now.Add(9*time.Minute))
	require.NoError(t, feed.Publish(ctx, marker))
	require.Eventually(t, func() bool {
		return boardEntries(projector.Snapshot()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "Z-999", projector.Snapshot()[board.PartitionReady][0].Reference)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("projector did not stop on context cancellation")
	}
}
