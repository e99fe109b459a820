package http

import "time"

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest registers a confirmed booking for dispatch.
type CreateOrderRequest struct {
	Reference         string     `json:"reference"`
	ScheduledPickupAt *time.Time `json:"scheduled_pickup_at,omitempty"`
}

// CreateCourierRequest registers a courier with the fleet.
type CreateCourierRequest struct {
	Name string `json:"name"`
}

// SetAvailabilityRequest moves a courier online or offline.
type SetAvailabilityRequest struct {
	Availability string `json:"availability"`
}

// OfferRequest places an order with one courier.
type OfferRequest struct {
	CourierID string `json:"courier_id"`
}

// CourierResponseRequest carries one courier signal about an order.
type CourierResponseRequest struct {
	CourierID string `json:"courier_id"`
	Response  string `json:"response"`
	Reason    string `json:"reason,omitempty"`
}

// UnassignRequest revokes an offer or assignment with an audit reason.
type UnassignRequest struct {
	Reason string `json:"reason"`
}

// CancelRequest terminally withdraws an order.
type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Courier is one fleet row.
type Courier struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Availability string `json:"availability"`
}

// Refusal is one refusal ledger entry.
type Refusal struct {
	CourierID string    `json:"courier_id"`
	Reason    string    `json:"reason"`
	RefusedAt time.Time `json:"refused_at"`
}
