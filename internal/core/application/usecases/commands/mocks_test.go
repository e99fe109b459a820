package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/refusal"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Shared hand-rolled mocks for the command handler tests. Every handler
// works through the same unit-of-work surface, so one set serves all files.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithStatusGuard(
	ctx context.Context,
	o *order.Order,
	expectedStatus order.Status,
) error {
	args := m.Called(ctx, o, expectedStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByReference(ctx context.Context, reference string) (*order.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetFirstOfferable(ctx context.Context, pickupBefore time.Time) (*order.Order, error) {
	args := m.Called(ctx, pickupBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) UpdateWithAvailabilityGuard(
	ctx context.Context,
	c *courier.Courier,
	expected courier.Availability,
) error {
	args := m.Called(ctx, c, expected)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllOnline(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllBusy(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockRefusalRepository struct{ mock.Mock }

func (m *MockRefusalRepository) Add(ctx context.Context, record *refusal.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRefusalRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*refusal.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*refusal.Record), args.Error(1)
}

func (m *MockRefusalRepository) CountAndLastRefuser(
	ctx context.Context,
	orderID kernel.UUID,
) (int, *kernel.UUID, error) {
	args := m.Called(ctx, orderID)
	if args.Get(1) == nil {
		return args.Int(0), nil, args.Error(2)
	}
	return args.Int(0), args.Get(1).(*kernel.UUID), args.Error(2)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) RefusalRepository() ports.RefusalRepository {
	args := m.Called()
	return args.Get(0).(ports.RefusalRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCourierUoW struct{ mock.Mock }

func (m *MockCourierUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockChangeFeed struct{ mock.Mock }

func (m *MockChangeFeed) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockChangeFeed) Subscribe(
	ctx context.Context,
	predicate ports.EventPredicate,
) (<-chan events.Event, error) {
	args := m.Called(ctx, predicate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan events.Event), args.Error(1)
}

// publishedEvents collects the events a MockChangeFeed accepted.
func publishedEvents(feed *MockChangeFeed) []events.Event {
	evs := make([]events.Event, 0, len(feed.Calls))
	for _, call := range feed.Calls {
		if call.Method == "Publish" {
			evs = append(evs, call.Arguments[1].(events.Event))
		}
	}
	return evs
}

// fixedClock is a Clock pinned to one instant.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
