package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/inmemory"
	"dispatch/internal/adapters/out/payment"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/scheduler"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. Handlers are created per
// call; the shared pieces are the database handle, the location index, the
// timeout scheduler, and the payment gateway.
type CompositionRoot struct {
	config        Config
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	locationIndex ports.LocationIndex
	scheduler     ports.Scheduler
	payments      ports.PaymentService
	logger        *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		locationIndex: inmemory.NewLocationIndex(),
		scheduler:     scheduler.NewTimeScheduler(),
		payments:      payment.NewStubService(logger),
		logger:        logger,
	}
}

func (c *CompositionRoot) LocationIndex() ports.LocationIndex {
	return c.locationIndex
}

// OutboxRepository returns an outbox repository outside any transaction, for
// the relay job's reads and publish bookkeeping.
func (c *CompositionRoot) OutboxRepository() ports.OutboxRepository {
	return c.uowFactory.Create().OutboxRepository()
}

// OrderRepository returns an order repository outside any transaction, for
// the timeout sweep's reads.
func (c *CompositionRoot) OrderRepository() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateStartShiftCommandHandler() commands.StartShiftCommandHandler {
	return commands.NewStartShiftCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateStopShiftCommandHandler() commands.StopShiftCommandHandler {
	return commands.NewStopShiftCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(c.courierUoWFactory(), c.locationIndex)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory(), c.payments)
}

func (c *CompositionRoot) CreateStartPreparingCommandHandler() commands.StartPreparingCommandHandler {
	return commands.NewStartPreparingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFinishPreparingCommandHandler() commands.FinishPreparingCommandHandler {
	return commands.NewFinishPreparingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(
		c.uoWFactory(),
		c.locationIndex,
		c.scheduler,
		c.config.RequestTimeout,
		c.CreateTimeoutDeliveryRequestCommandHandler(),
	)
}

func (c *CompositionRoot) CreateAcceptDeliveryRequestCommandHandler() commands.AcceptDeliveryRequestCommandHandler {
	return commands.NewAcceptDeliveryRequestCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateRejectDeliveryRequestCommandHandler() commands.RejectDeliveryRequestCommandHandler {
	return commands.NewRejectDeliveryRequestCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateTimeoutDeliveryRequestCommandHandler() commands.TimeoutDeliveryRequestCommandHandler {
	return commands.NewTimeoutDeliveryRequestCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDropoffCommandHandler() commands.ConfirmDropoffCommandHandler {
	return commands.NewConfirmDropoffCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uoWFactory(), c.payments)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB, c.locationIndex)
}

func (c *CompositionRoot) CreateGetCourierRequestsQueryHandler() queries.GetCourierRequestsQueryHandler {
	return queries.NewGetCourierRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs against the given publisher.
func (c *CompositionRoot) CreateJobManager(publisher ports.EventPublisher) *jobs.JobManager {
	return jobs.NewJobManager(
		c.OutboxRepository(),
		publisher,
		c.OrderRepository(),
		c.CreateTimeoutDeliveryRequestCommandHandler(),
		c.config.RequestTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
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
