package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "fueldelivery/internal/adapters/in/http"
	"fueldelivery/internal/adapters/in/ws"
	"fueldelivery/internal/adapters/out/kafka"
	"fueldelivery/internal/adapters/out/postgres"
	"fueldelivery/internal/adapters/out/postgres/accountrepo"
	"fueldelivery/internal/adapters/out/realtime"
	"fueldelivery/internal/adapters/out/rediscache"
	"fueldelivery/internal/core/application/events"
	"fueldelivery/internal/core/application/notifications"
	"fueldelivery/internal/core/application/usecases/commands"
	"fueldelivery/internal/core/application/usecases/queries"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/core/ports"
	"fueldelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot builds the object graph once at startup. The realtime
// registry and bus are created here and handed to every component that
// publishes or subscribes.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	gormDB *gorm.DB

	metrics    *prometheus.Registry
	contract   *httpin.Contract
	registry   *realtime.Registry
	bus        *realtime.Bus
	directory  ports.AccountDirectory
	dispatcher *notifications.Dispatcher
	uowFactory *postgres.GormUnitOfWorkFactory
	wsHandler  *ws.Handler

	closers []func() error
}

// NewCompositionRoot connects the optional Redis cache and Kafka producer
// and wires everything else in memory.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		gormDB:  gormDB,
		metrics: prometheus.NewRegistry(),
	}
	c.metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	contract, err := httpin.LoadContract(ctx)
	if err != nil {
		return nil, err
	}
	c.contract = contract

	var directory ports.AccountDirectory = accountrepo.NewGormAccountDirectory(gormDB)
	if cfg.RedisURL != "" {
		client, err := rediscache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		directory = rediscache.NewDirectory(directory, client, cfg.DirectoryCacheTTL, logger)
	}
	c.directory = directory

	realtimeMetrics := realtime.NewMetrics(c.metrics)
	c.registry = realtime.NewRegistry(cfg.WSSendBuffer, realtimeMetrics)
	c.bus = realtime.NewBus(c.registry, realtimeMetrics, logger)

	// The dispatcher reads orders through a unit of work whose factory in
	// turn publishes to the dispatcher, so the reader is resolved lazily.
	c.dispatcher = notifications.NewDispatcher(c.bus, FuncOrderReader(func(ctx context.Context, id kernel.UUID) (*order.Order, error) {
		return c.uowFactory.Create().OrderRepository().Get(ctx, id)
	}), c.directory, logger)

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaOrderChangedTopic, logger)
	if p, ok := producer.(*kafka.Producer); ok {
		c.closers = append(c.closers, p.Close)
	}
	publisher := events.NewFanOut(c.dispatcher, producer)
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	c.wsHandler = ws.NewHandler(
		c.registry, c.bus, c.dispatcher,
		c.CreateSendChatMessageCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		cfg.WebsocketConfig(), logger,
	)
	return c, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) messageUoWFactory() commands.MessageUoWFactory {
	return FuncMessageUoWFactory(func() commands.MessageUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.CreateChangeOrderStatusCommandHandler())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	return commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSendChatMessageCommandHandler() commands.SendChatMessageCommandHandler {
	return commands.NewSendChatMessageCommandHandler(c.messageUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMessagesQueryHandler() queries.ListMessagesQueryHandler {
	return queries.NewListMessagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		PlaceOrder:        c.CreatePlaceOrderCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		AssignDriver:      c.CreateAssignDriverCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		SendChatMessage:   c.CreateSendChatMessageCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		ListMessages:      c.CreateListMessagesQueryHandler(),
	}, c.pingDatabase)
}

// CreateEcho mounts the JSON API, /ws, /metrics and /swagger.
func (c *CompositionRoot) CreateEcho() *echo.Echo {
	e := httpin.NewEcho(c.logger, c.metrics, c.contract)
	c.CreateHTTPServer().Register(e)
	e.GET("/ws", c.wsHandler.Serve)
	return e
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.cfg.JobsConfig(), c.registry, c.CreateExpirePendingOrdersCommandHandler(), c.metrics, c.logger)
}

func (c *CompositionRoot) WebsocketHandler() *ws.Handler {
	return c.wsHandler
}

func (c *CompositionRoot) Registry() *realtime.Registry {
	return c.registry
}

// Close releases the external clients opened by NewCompositionRoot.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return fmt.Errorf("getting sql db handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncMessageUoWFactory func() commands.MessageUoW

func (f FuncMessageUoWFactory) Create() commands.MessageUoW {
	return f()
}

type FuncOrderReader func(ctx context.Context, id kernel.UUID) (*order.Order, error)

func (f FuncOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return f(ctx, id)
}
