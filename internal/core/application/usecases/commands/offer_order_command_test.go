package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOfferOrderCommand_Valid(t *testing.T) {
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewOfferOrderCommand(orderID, courierID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.True(t, cmd.CourierID().IsEqual(courierID))
}

func TestNewOfferOrderCommand_InvalidParams(t *testing.T) {
	_, err := commands.NewOfferOrderCommand(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)

	_, err = commands.NewOfferOrderCommand(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
}

func TestOfferOrderCommand_NotConstructedViaConstructor(t *testing.T) {
	cmd := commands.OfferOrderCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOfferOrderCommandIsNotConstructed)
}
