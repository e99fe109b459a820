package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Availability represents a courier's current dispatch state.
//
// State transitions:
//
//	Offline <──> Online <──> Busy
//
// Busy is entered only when an offer is placed with the courier and left
// when the held order is refused, unassigned, delivered or cancelled.
// ForceAvailable bypasses the machine as an audited operator repair for a
// courier stuck Busy with no active order.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or undefined state.
	AvailabilityUnknown Availability = iota

	// Offline means the courier is not reachable for offers.
	Offline

	// Online means the courier is reachable and may receive an offer.
	Online

	// Busy means the courier holds exactly one order with an outstanding
	// offer or active assignment.
	Busy
)

// getAvailabilityStrings returns the string representation for every value.
func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "unknown",
		Offline:             "offline",
		Online:              "online",
		Busy:                "busy",
	}
}

// getValidAvailabilityStrings returns only valid values to support validation.
func getValidAvailabilityStrings() map[Availability]string {
	//nolint:exhaustive // AvailabilityUnknown is intentionally excluded as it's invalid
	return map[Availability]string{
		Offline: "offline",
		Online:  "online",
		Busy:    "busy",
	}
}

// AvailabilityFromString parses an availability from its feed/persistence
// representation.
func AvailabilityFromString(s string) (Availability, error) {
	for a, str := range getValidAvailabilityStrings() {
		if str == s {
			return a, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"availability is invalid",
		fmt.Errorf("%q is not a valid availability", s),
	)
}

// Validate checks if the Availability value is valid.
func (a Availability) Validate() error {
	if _, ok := getValidAvailabilityStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"availability is invalid",
			fmt.Errorf("%d is not a valid availability", a),
		)
	}
	return nil
}

// String returns the feed representation ("offline", "online", "busy").
// Implements fmt.Stringer and is safe to call on any value.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "unknown"
}
