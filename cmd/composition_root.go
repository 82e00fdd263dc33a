package cmd

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "ordertrack/internal/adapters/in/http"
	"ordertrack/internal/adapters/out/email"
	"ordertrack/internal/adapters/out/postgres"
	"ordertrack/internal/adapters/out/postgres/catalogrepo"
	"ordertrack/internal/adapters/out/postgres/store"
	"ordertrack/internal/adapters/out/postgres/userrepo"
	"ordertrack/internal/adapters/out/redis"
	"ordertrack/internal/core/application/notify"
	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/application/usecases/queries"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/services"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/jobs"
)

// CompositionRoot owns the long-lived adapters and builds the use case handlers on top of them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  kernel.Clock

	store    *store.RecordStore
	sessions *postgres.SessionFactory
	catalog  ports.CatalogReader
	users    *userrepo.Directory

	gateway    ports.EmailGateway
	outbox     *email.Outbox
	dispatcher *notify.Dispatcher

	closers []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:    cfg,
		logger: logger,
		clock:  kernel.SystemClock{},
	}

	c.store = store.NewRecordStore(gormDB, cfg.StoreMetadataTTL, c.clock, logger, postgres.Models()...)
	c.sessions = postgres.NewSessionFactory(c.store, c.clock)
	c.users = userrepo.NewDirectory(c.store)

	c.catalog = catalogrepo.NewReader(c.store)
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		c.closers = append(c.closers, client.Close)
		c.catalog = redis.NewCatalogCache(c.catalog, client, cfg.CatalogTTL, logger)
	}

	if len(cfg.KafkaBrokers) > 0 {
		gateway := email.NewKafkaGateway(cfg.KafkaBrokers, cfg.EmailTopic, c.clock)
		c.closers = append(c.closers, gateway.Close)
		c.gateway = gateway
	} else {
		c.gateway = email.NewLogGateway(logger)
	}
	c.outbox = email.NewOutbox(c.gateway, cfg.OutboxConfig(), logger)

	c.dispatcher = notify.NewDispatcher(c.notificationSessions(), c.users, c.outbox, nil, c.clock, logger)
	return c
}

// Start launches the background mail workers.
func (c *CompositionRoot) Start() {
	c.outbox.Start()
}

// Close drains queued mail, then releases the external clients.
func (c *CompositionRoot) Close() {
	c.outbox.Close()
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.logger.Warn("close failed", "error", err)
		}
	}
}

// Migrate creates or updates every table of the store.
func (c *CompositionRoot) Migrate(ctx context.Context) error {
	return c.store.AutoMigrate(ctx)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderSessions(),
		commands.NewIdentifierAllocator(commands.OrderIDPrefix, c.clock, c.logger),
		c.createOrderItemsManager(),
		c.dispatcher,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(
		c.orderSessions(), c.createOrderItemsManager(), c.dispatcher, c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateSetStatusCommandHandler() commands.SetStatusCommandHandler {
	return commands.NewSetStatusCommandHandler(c.orderSessions(), c.dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateSetKeyStatusCommandHandler() commands.SetKeyStatusCommandHandler {
	return commands.NewSetKeyStatusCommandHandler(c.orderSessions(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateToggleNotificationReadCommandHandler() commands.ToggleNotificationReadCommandHandler {
	return commands.NewToggleNotificationReadCommandHandler(c.notificationSessions())
}

func (c *CompositionRoot) CreateRegisterUserNotificationCommandHandler() commands.RegisterUserNotificationCommandHandler {
	return commands.NewRegisterUserNotificationCommandHandler(c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateAutoCompleteOrdersCommandHandler() commands.AutoCompleteOrdersCommandHandler {
	return commands.NewAutoCompleteOrdersCommandHandler(c.orderSessions(), c.dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateReconcileArchivesCommandHandler() commands.ReconcileArchivesCommandHandler {
	return commands.NewReconcileArchivesCommandHandler(c.orderSessions(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(postgres.NewReaders(c.sessions))
}

func (c *CompositionRoot) CreateListArchivedOrdersQueryHandler() queries.ListArchivedOrdersQueryHandler {
	return queries.NewListArchivedOrdersQueryHandler(postgres.NewReaders(c.sessions))
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(postgres.NewReaders(c.sessions))
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:    c.CreateCreateOrderCommandHandler(),
		UpdateOrder:    c.CreateUpdateOrderCommandHandler(),
		SetStatus:      c.CreateSetStatusCommandHandler(),
		SetKeyStatus:   c.CreateSetKeyStatusCommandHandler(),
		ToggleRead:     c.CreateToggleNotificationReadCommandHandler(),
		RegisterUser:   c.CreateRegisterUserNotificationCommandHandler(),
		ActiveOrders:   c.CreateListActiveOrdersQueryHandler(),
		ArchivedOrders: c.CreateListArchivedOrdersQueryHandler(),
		Notifications:  c.CreateListNotificationsQueryHandler(),
		Catalog:        c.catalog,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAutoCompleteOrdersCommandHandler(),
		c.CreateReconcileArchivesCommandHandler(),
		c.cfg.Schedules(),
		c.logger,
	)
}

func (c *CompositionRoot) createOrderItemsManager() commands.OrderItemsManager {
	return commands.NewOrderItemsManager(c.catalog, services.NewPricingResolver())
}

func (c *CompositionRoot) orderSessions() commands.OrderSessionFactory {
	return FuncOrderSessionFactory(func(ctx context.Context) (commands.OrderSession, error) {
		s, err := c.sessions.Open(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

func (c *CompositionRoot) notificationSessions() commands.NotificationSessionFactory {
	return FuncNotificationSessionFactory(func(ctx context.Context) (commands.NotificationSession, error) {
		s, err := c.sessions.Open(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

type FuncOrderSessionFactory func(ctx context.Context) (commands.OrderSession, error)

func (f FuncOrderSessionFactory) Open(ctx context.Context) (commands.OrderSession, error) {
	return f(ctx)
}

type FuncNotificationSessionFactory func(ctx context.Context) (commands.NotificationSession, error)

func (f FuncNotificationSessionFactory) Open(ctx context.Context) (commands.NotificationSession, error) {
	return f(ctx)
}
