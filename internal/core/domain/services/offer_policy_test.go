package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduledOrder(t *testing.T, pickupAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "A-100", &pickupAt)
	require.NoError(t, err)
	return o
}

func newImmediateOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "A-100", nil)
	require.NoError(t, err)
	return o
}

func newRefusedOrder(t *testing.T, refuserID kernel.UUID, refusedAt time.Time) *order.Order {
	t.Helper()
	o := newImmediateOrder(t)
	require.NoError(t, o.Offer(refuserID))
	require.NoError(t, o.Refuse(refuserID, refusedAt))
	return o
}

func TestOfferPolicyValidateGate(t *testing.T) {
	policy := services.NewOfferPolicy()
	pickup := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	o := newScheduledOrder(t, pickup)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"two hours before pickup", pickup.Add(-2 * time.Hour), services.ErrGateClosed},
		{"just before the gate opens", pickup.Add(-services.DefaultGateWindow - time.Second), services.ErrGateClosed},
		{"at the gate boundary", pickup.Add(-services.DefaultGateWindow), nil},
		{"forty minutes before pickup", pickup.Add(-40 * time.Minute), nil},
		{"after pickup time", pickup.Add(time.Hour), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.ValidateGate(o, tt.now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOfferPolicyValidateGate_ImmediateOrderHasNoGate(t *testing.T) {
	policy := services.NewOfferPolicy()
	o := newImmediateOrder(t)

	require.NoError(t, policy.ValidateGate(o, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))
}

func TestOfferPolicyGateOpensAt(t *testing.T) {
	policy := services.NewOfferPolicy()
	pickup := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	assert.Equal(t,
		pickup.Add(-services.DefaultGateWindow),
		policy.GateOpensAt(newScheduledOrder(t, pickup)))
	assert.True(t, policy.GateOpensAt(newImmediateOrder(t)).IsZero())
}

func TestOfferPolicyValidateCooldown(t *testing.T) {
	policy := services.NewOfferPolicy()
	refuserID := kernel.NewUUID()
	otherID := kernel.NewUUID()
	refusedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	o := newRefusedOrder(t, refuserID, refusedAt)

	// The refuser is barred while the cooldown runs.
	err := policy.ValidateCooldown(o, refuserID, refusedAt.Add(time.Minute))
	require.ErrorIs(t, err, services.ErrCourierRecentlyRefused)

	// Other couriers are eligible immediately.
	require.NoError(t, policy.ValidateCooldown(o, otherID, refusedAt.Add(time.Second)))

	// The refuser is eligible again once the cooldown elapses.
	require.NoError(t, policy.ValidateCooldown(
		o, refuserID, refusedAt.Add(services.DefaultRefusalCooldown)))
}

func TestOfferPolicyValidateCooldown_NoRefusalHistory(t *testing.T) {
	policy := services.NewOfferPolicy()
	o := newImmediateOrder(t)

	require.NoError(t, policy.ValidateCooldown(o, kernel.NewUUID(), time.Now()))
}

func TestOfferPolicyValidateOffer(t *testing.T) {
	policy := services.NewOfferPolicy()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	c, err := courier.NewCourier(kernel.NewUUID(), "Jane Smith")
	require.NoError(t, err)

	require.NoError(t, policy.ValidateOffer(newImmediateOrder(t), c, now))

	gated := newScheduledOrder(t, now.Add(2*time.Hour))
	require.ErrorIs(t, policy.ValidateOffer(gated, c, now), services.ErrGateClosed)

	refused := newRefusedOrder(t, c.ID(), now.Add(-time.Minute))
	require.ErrorIs(t, policy.ValidateOffer(refused, c, now), services.ErrCourierRecentlyRefused)
}

func TestNewOfferPolicyWith(t *testing.T) {
	policy := services.NewOfferPolicyWith(10*time.Minute, 0)

	assert.Equal(t, 10*time.Minute, policy.GateWindow())

	// Non-positive values keep the defaults.
	fallback := services.NewOfferPolicyWith(0, -time.Minute)
	assert.Equal(t, services.DefaultGateWindow, fallback.GateWindow())
}
