// Package events defines the typed contract carried by the change feed.
// Every state change the coordinator makes is published as one of these
// events; the board projector and courier clients consume them. Events are
// JSON-serializable so any transport honoring the feed's publish/subscribe
// contract can carry them.
package events

import (
	"time"

	"dispatch/internal/core/domain/model/order"
)

// Kind discriminates change-feed events.
type Kind string

const (
	// OrderCreated announces a new order entering the board in Ready status.
	OrderCreated Kind = "order.created"
	// OrderOffered announces an offer placed with a single courier.
	OrderOffered Kind = "order.offered"
	// OrderAccepted announces the courier accepting its offer.
	OrderAccepted Kind = "order.accepted"
	// OrderRefused announces the courier turning its offer down.
	OrderRefused Kind = "order.refused"
	// OrderArrivedPickup announces courier arrival at the pickup point.
	OrderArrivedPickup Kind = "order.arrived_pickup"
	// OrderInProgress announces the delivery being underway.
	OrderInProgress Kind = "order.in_progress"
	// OrderDelivered announces terminal, successful completion.
	OrderDelivered Kind = "order.delivered"
	// OrderCancelled announces terminal withdrawal by an operator.
	OrderCancelled Kind = "order.cancelled"
	// OrderUnassigned announces an operator revoking an offer or assignment;
	// the reason travels on the event for audit.
	OrderUnassigned Kind = "order.unassigned"
	// CourierStuck flags a courier marked busy with no active order.
	// Detection only; the repair is the operator's ForceAvailable.
	CourierStuck Kind = "courier.stuck"
	// CourierForcedAvailable audits the operator repair of a stuck courier.
	CourierForcedAvailable Kind = "courier.forced_available"
)

// Event is a single change-feed entry. Delivery is at least once and ordered
// only per order (events for one order arrive in emission order; no ordering
// is guaranteed across orders), so consumers key on OrderID and apply
// idempotently by content.
type Event struct {
	Kind       Kind      `json:"kind"`
	OrderID    string    `json:"order_id,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	CourierID  string    `json:"courier_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Refusals   int       `json:"refusals,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderEvent builds an event snapshotting the order's state after a
// transition. The courier ID is taken from the current assignment when one
// is held.
func NewOrderEvent(kind Kind, o *order.Order, occurredAt time.Time) Event {
	ev := Event{
		Kind:       kind,
		OrderID:    o.ID().String(),
		Reference:  o.Reference(),
		Status:     o.Status().String(),
		Refusals:   o.RefusalCount(),
		OccurredAt: occurredAt,
	}
	if c := o.Courier(); c != nil {
		ev.CourierID = c.String()
	}
	return ev
}

// NewCourierEvent builds a courier-scoped event (stuck detection and the
// forced-available repair).
func NewCourierEvent(kind Kind, courierID string, reason string, occurredAt time.Time) Event {
	return Event{
		Kind:       kind,
		CourierID:  courierID,
		Reason:     reason,
		OccurredAt: occurredAt,
	}
}

// IsOrderEvent reports whether the event describes an order state change
// (as opposed to a courier-scoped signal).
func (e Event) IsOrderEvent() bool {
	return e.OrderID != ""
}
