package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderRefusalsQuery_Valid(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderRefusalsQuery(orderID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))
}

func TestNewGetOrderRefusalsQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderRefusalsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderRefusalsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderRefusalsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderRefusalsQueryIsNotConstructed)
}
