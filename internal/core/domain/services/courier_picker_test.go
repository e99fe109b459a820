package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOnlineCourierNamed(t *testing.T, id kernel.UUID, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, name)
	require.NoError(t, err)
	require.NoError(t, c.GoOnline())
	return c
}

func TestCourierPickerPick_FirstOnlineCandidate(t *testing.T) {
	picker := services.NewCourierPicker(services.NewOfferPolicy())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	first := newOnlineCourierNamed(t, kernel.NewUUID(), "Jane Smith")
	second := newOnlineCourierNamed(t, kernel.NewUUID(), "Bob Brown")

	picked, err := picker.Pick(newImmediateOrder(t), []*courier.Courier{first, second}, now)

	require.NoError(t, err)
	assert.True(t, picked.IsEqual(first))
}

func TestCourierPickerPick_SkipsOfflineCouriers(t *testing.T) {
	picker := services.NewCourierPicker(services.NewOfferPolicy())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	offline, err := courier.NewCourier(kernel.NewUUID(), "Jane Smith")
	require.NoError(t, err)
	online := newOnlineCourierNamed(t, kernel.NewUUID(), "Bob Brown")

	picked, err := picker.Pick(newImmediateOrder(t), []*courier.Courier{offline, online}, now)

	require.NoError(t, err)
	assert.True(t, picked.IsEqual(online))
}

func TestCourierPickerPick_SkipsCoolingDownRefuser(t *testing.T) {
	picker := services.NewCourierPicker(services.NewOfferPolicy())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	refuserID := kernel.NewUUID()
	refuser := newOnlineCourierNamed(t, refuserID, "Jane Smith")
	other := newOnlineCourierNamed(t, kernel.NewUUID(), "Bob Brown")
	o := newRefusedOrder(t, refuserID, now.Add(-time.Minute))

	picked, err := picker.Pick(o, []*courier.Courier{refuser, other}, now)

	require.NoError(t, err)
	assert.True(t, picked.IsEqual(other))
}

func TestCourierPickerPick_PrefersNonRefuserAfterCooldown(t *testing.T) {
	picker := services.NewCourierPicker(services.NewOfferPolicy())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	refuserID := kernel.NewUUID()
	refuser := newOnlineCourierNamed(t, refuserID, "Jane Smith")
	other := newOnlineCourierNamed(t, kernel.NewUUID(), "Bob Brown")
	o := newRefusedOrder(t, refuserID, now.Add(-time.Hour))

	// The refuser comes first in the candidate list but is still displaced.
	picked, err := picker.Pick(o, []*courier.Courier{refuser, other}, now)

	require.NoError(t, err)
	assert.True(t, picked.IsEqual(other))
}

func TestCourierPickerPick_RefuserIsLastResortAfterCooldown(t *testing.T) {
	picker := services.NewCourierPicker(services.NewOfferPolicy())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	refuserID := kernel.NewUUID()
	refuser := newOnlineCourierNamed(t, refuserID, "Jane Smith")
	o := newRefusedOrder(t, refuserID, now.Add(-time.Hour))

	picked, err := picker.Pick(o, []*courier.Courier{refuser}, now)

	require.NoError(t, err)
	assert.True(t, picked.IsEqual(refuser))
}

func TestCourierPickerPick_NoEligibleCourier(t *testing.T) {
	picker := services.NewCourierPicker(services.NewOfferPolicy())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	_, err := picker.Pick(newImmediateOrder(t), nil, now)
	require.ErrorIs(t, err, services.ErrNoCourierEligible)

	offline, err2 := courier.NewCourier(kernel.NewUUID(), "Jane Smith")
	require.NoError(t, err2)
	_, err = picker.Pick(newImmediateOrder(t), []*courier.Courier{offline}, now)
	require.ErrorIs(t, err, services.ErrNoCourierEligible)

	refuserID := kernel.NewUUID()
	refuser := newOnlineCourierNamed(t, refuserID, "Bob Brown")
	o := newRefusedOrder(t, refuserID, now.Add(-time.Minute))
	_, err = picker.Pick(o, []*courier.Courier{refuser}, now)
	require.ErrorIs(t, err, services.ErrNoCourierEligible)
}
