package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlagStuckCouriersCommandHandler_Handle_FlagsOrphanedBusyCourier(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	stuckID := kernel.NewUUID()
	healthyID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	stuck := newBusyCourier(t, stuckID)
	healthy := newBusyCourier(t, healthyID)
	activeOrder := newOfferedOrder(t, orderID, healthyID)

	cmd, err := commands.NewFlagStuckCouriersCommand()
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	feed := new(MockChangeFeed)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetAllBusy", ctx).Return([]*courier.Courier{stuck, healthy}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByCourier", ctx, stuckID).
			Return(nil, errs.NewObjectNotFoundError("order", stuckID.String())).Once(),
		feed.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Once(),
		orderRepo.On("GetActiveByCourier", ctx, healthyID).Return(activeOrder, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFlagStuckCouriersCommandHandler(factory, fixedClock{now}, feed, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	evs := publishedEvents(feed)
	require.Len(t, evs, 1)
	assert.Equal(t, events.CourierStuck, evs[0].Kind)
	assert.Equal(t, stuckID.String(), evs[0].CourierID)
	assert.Equal(t, "busy with no active order", evs[0].Reason)
}

func TestFlagStuckCouriersCommandHandler_Handle_NoBusyCouriers(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	cmd, err := commands.NewFlagStuckCouriersCommand()
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	feed := new(MockChangeFeed)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetAllBusy", ctx).Return([]*courier.Courier{}, nil).Once(),
		uow.On("OrderRepository").Return(new(MockOrderRepository)).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFlagStuckCouriersCommandHandler(factory, fixedClock{now}, feed, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	feed.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
