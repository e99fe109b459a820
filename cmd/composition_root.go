package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafkafeed"
	"dispatch/internal/adapters/out/memoryfeed"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/projections/board"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use-case handlers.
// Everything downstream receives its dependencies from here; nothing else
// constructs adapters.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	feed       ports.ChangeFeed
	clock      ports.Clock
	policy     services.OfferPolicy
	projector  *board.Projector
	logger     *slog.Logger
}

// NewCompositionRoot builds the application graph. The change feed is Kafka
// when a broker is configured and in-process otherwise, so a single-node
// deployment needs no broker.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}

	var feed ports.ChangeFeed
	if config.KafkaHost != "" {
		feed = kafkafeed.NewFeed(config.KafkaHost, config.KafkaFeedTopic, config.KafkaConsumerGroup, logger)
	} else {
		feed = memoryfeed.NewFeed(0)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		feed:       feed,
		clock:      ports.SystemClock{},
		policy:     services.NewOfferPolicy(),
		projector:  board.NewProjector(logger),
		logger:     logger,
	}
}

// Feed returns the configured change feed.
func (c *CompositionRoot) Feed() ports.ChangeFeed {
	return c.feed
}

// Projector returns the board projector.
func (c *CompositionRoot) Projector() *board.Projector {
	return c.projector
}

func (c *CompositionRoot) uowF() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUowF() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUowF() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUowF(), c.clock, c.feed, c.logger)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUowF())
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	return commands.NewSetCourierAvailabilityCommandHandler(c.courierUowF())
}

func (c *CompositionRoot) CreateOfferOrderCommandHandler() commands.OfferOrderCommandHandler {
	return commands.NewOfferOrderCommandHandler(c.uowF(), c.policy, c.clock, c.feed, c.logger)
}

func (c *CompositionRoot) CreateApplyCourierResponseCommandHandler() commands.ApplyCourierResponseCommandHandler {
	return commands.NewApplyCourierResponseCommandHandler(c.uowF(), c.clock, c.feed, c.logger)
}

func (c *CompositionRoot) CreateUnassignOrderCommandHandler() commands.UnassignOrderCommandHandler {
	return commands.NewUnassignOrderCommandHandler(c.uowF(), c.clock, c.feed, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uowF(), c.clock, c.feed, c.logger)
}

func (c *CompositionRoot) CreateForceAvailableCommandHandler() commands.ForceAvailableCommandHandler {
	return commands.NewForceAvailableCommandHandler(c.courierUowF(), c.clock, c.feed, c.logger)
}

func (c *CompositionRoot) CreateOfferNextOrderCommandHandler() commands.OfferNextOrderCommandHandler {
	return commands.NewOfferNextOrderCommandHandler(
		c.uowF(), c.policy, services.NewCourierPicker(c.policy), c.clock, c.feed, c.logger)
}

func (c *CompositionRoot) CreateFlagStuckCouriersCommandHandler() commands.FlagStuckCouriersCommandHandler {
	return commands.NewFlagStuckCouriersCommandHandler(c.uowF(), c.clock, c.feed, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStuckCouriersQueryHandler() queries.GetStuckCouriersQueryHandler {
	return queries.NewGetStuckCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderRefusalsQueryHandler() queries.GetOrderRefusalsQueryHandler {
	return queries.NewGetOrderRefusalsQueryHandler(c.gormDB)
}

// CreateJobManager wires the dispatch tick and stuck-courier scan jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateOfferNextOrderCommandHandler(),
		c.CreateFlagStuckCouriersCommandHandler(),
		c.logger,
	)
}

// CreateHTTPServer wires the echo handler surface.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateSetCourierAvailabilityCommandHandler(),
		c.CreateOfferOrderCommandHandler(),
		c.CreateApplyCourierResponseCommandHandler(),
		c.CreateUnassignOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateForceAvailableCommandHandler(),
		c.CreateGetAllCouriersQueryHandler(),
		c.CreateGetStuckCouriersQueryHandler(),
		c.CreateGetOrderRefusalsQueryHandler(),
		c.projector,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
