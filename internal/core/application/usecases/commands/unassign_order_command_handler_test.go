package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnassignOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	testOrder := newOfferedOrder(t, orderID, courierID)
	testCourier := newBusyCourier(t, courierID)

	cmd, err := commands.NewUnassignOrderCommand(orderID, "courier unreachable")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	feed := new(MockChangeFeed)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateWithStatusGuard", ctx, mock.AnythingOfType("*order.Order"), order.Offered).
			Return(nil).Once(),
		courierRepo.On("Get", ctx, courierID).Return(testCourier, nil).Once(),
		courierRepo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		feed.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUnassignOrderCommandHandler(factory, fixedClock{now}, feed, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Ready, testOrder.Status())
	assert.Nil(t, testOrder.Courier())
	assert.Equal(t, courier.Online, testCourier.Availability())

	evs := publishedEvents(feed)
	require.Len(t, evs, 1)
	assert.Equal(t, events.OrderUnassigned, evs[0].Kind)
	assert.Equal(t, courierID.String(), evs[0].CourierID)
	assert.Equal(t, "courier unreachable", evs[0].Reason)
}

func TestUnassignOrderCommandHandler_Handle_NotAssigned(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	orderID := kernel.NewUUID()
	testOrder, err := order.NewOrder(orderID, "A-100", nil)
	require.NoError(t, err)

	cmd, err := commands.NewUnassignOrderCommand(orderID, "cleanup")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	feed := new(MockChangeFeed)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUnassignOrderCommandHandler(factory, fixedClock{now}, feed, nil)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderNotAssigned)
	feed.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUnassignOrderCommandHandler_Handle_ReasonIsRequired(t *testing.T) {
	orderID := kernel.NewUUID()

	_, err := commands.NewUnassignOrderCommand(orderID, "")
	require.ErrorIs(t, err, commands.ErrReasonIsRequired)
}
