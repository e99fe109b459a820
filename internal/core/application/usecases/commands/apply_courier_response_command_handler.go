package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/refusal"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// defaultRefusalReason is recorded when a courier refuses without giving one.
const defaultRefusalReason = "declined by courier"

// ApplyCourierResponseCommandHandler folds courier signals into state.
//
// Idempotence: the change feed delivers at least once, so every duplicate or
// out-of-order signal surfaces from the aggregate as order.ErrStaleSignal and
// is swallowed here: the handler returns success, changes nothing and
// publishes nothing. A failed status guard (a concurrent writer moved the
// order between our read and write) is treated the same way: the redelivered
// signal will re-validate against current state.
//
// The refusal path is the failure-sensitive one: within a single transaction
// it must release the order from the refusing courier, append the ledger
// record and free the courier, so that neither a captured order nor a stuck
// courier can be left behind.
type ApplyCourierResponseCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	publisher  eventPublisher
	logger     *slog.Logger
}

// NewApplyCourierResponseCommandHandler creates a handler for courier signals.
func NewApplyCourierResponseCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	feed ports.ChangeFeed,
	logger *slog.Logger,
) ApplyCourierResponseCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ApplyCourierResponseCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  newEventPublisher(feed, logger),
		logger:     logger,
	}
}

// Handle processes one courier signal.
func (h ApplyCourierResponseCommandHandler) Handle(ctx context.Context, command ApplyCourierResponseCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	expectedStatus := o.Status()
	freesCourier := false
	var kind events.Kind

	switch command.Response() {
	case ResponseAccept:
		err = o.Accept(command.CourierID())
		kind = events.OrderAccepted
	case ResponseRefuse:
		err = o.Refuse(command.CourierID(), now)
		kind = events.OrderRefused
		freesCourier = true
	case ResponseArrived:
		err = o.ArriveAtPickup(command.CourierID())
		kind = events.OrderArrivedPickup
	case ResponseStarted:
		err = o.StartDelivery(command.CourierID())
		kind = events.OrderInProgress
	case ResponseDelivered:
		err = o.CompleteDelivery(command.CourierID())
		kind = events.OrderDelivered
		freesCourier = true
	default:
		return errs.NewValueIsInvalidError("response is invalid")
	}

	if errors.Is(err, order.ErrStaleSignal) {
		h.logger.DebugContext(ctx, "Ignoring stale courier signal",
			"order_id", command.OrderID().String(),
			"courier_id", command.CourierID().String(),
			"response", string(command.Response()))
		return nil
	}
	if err != nil {
		return err
	}

	if command.Response() == ResponseRefuse {
		reason := command.Reason()
		if reason == "" {
			reason = defaultRefusalReason
		}

		var record *refusal.Record
		record, err = refusal.NewRecord(command.OrderID(), command.CourierID(), reason, now)
		if err != nil {
			return err
		}
		if err = uow.RefusalRepository().Add(ctx, record); err != nil {
			return err
		}
	}

	if err = orderRepo.UpdateWithStatusGuard(ctx, o, expectedStatus); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			h.logger.DebugContext(ctx, "Courier signal lost a write race; dropping as stale",
				"order_id", command.OrderID().String(),
				"response", string(command.Response()))
			return nil
		}
		return err
	}

	if freesCourier {
		c, courierErr := courierRepo.Get(ctx, command.CourierID())
		if courierErr != nil {
			return courierErr
		}
		c.Release()
		if courierErr = courierRepo.Update(ctx, c); courierErr != nil {
			return courierErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	ev := events.NewOrderEvent(kind, o, now)
	ev.CourierID = command.CourierID().String()
	if command.Response() == ResponseRefuse {
		ev.Reason = command.Reason()
		if ev.Reason == "" {
			ev.Reason = defaultRefusalReason
		}
	}
	h.publisher.publish(ctx, ev)
	return nil
}
