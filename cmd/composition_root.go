package cmd

import (
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	kafkain "fooddelivery/internal/adapters/in/kafka"
	kafkaout "fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rabbitmq"
	redisadapter "fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/events"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// Infrastructure holds the connections the composition root builds on.
type Infrastructure struct {
	DB          *gorm.DB
	Redis       *goredis.Client
	KafkaWriter *kafkago.Writer
	KafkaReader *kafkago.Reader
	RabbitMQ    *rabbitmq.Client
}

type CompositionRoot struct {
	configs    Config
	infra      Infrastructure
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(configs Config, infra Infrastructure, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		infra:      infra,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(infra.DB),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) deliveryPersonUoWFactory() commands.DeliveryPersonUoWFactory {
	return FuncDeliveryPersonUoWFactory(func() commands.DeliveryPersonUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) restaurantUoWFactory() commands.RestaurantUoWFactory {
	return FuncRestaurantUoWFactory(func() commands.RestaurantUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CashBalanceChecker() ports.CashBalanceChecker {
	return postgres.NewCashBalanceChecker(c.infra.DB)
}

func (c *CompositionRoot) AssignmentLocker() ports.AssignmentLocker {
	return redisadapter.NewAssignmentLocker(c.infra.Redis, c.configs.AssignmentLockTTL)
}

func (c *CompositionRoot) CandidateDiscovery() queries.CandidateDiscovery {
	var f queries.DiscoveryRepositoriesFactory = FuncDiscoveryRepositoriesFactory(func() queries.DiscoveryRepositories {
		return c.uowFactory.Create()
	})
	return queries.NewCandidateDiscovery(f, c.CashBalanceChecker(), services.DefaultRating)
}

func (c *CompositionRoot) CreateManualAssignDeliveryPersonCommandHandler() commands.ManualAssignDeliveryPersonCommandHandler {
	return commands.NewManualAssignDeliveryPersonCommandHandler(
		c.fullUoWFactory(), c.CashBalanceChecker(), c.AssignmentLocker(), c.logger)
}

func (c *CompositionRoot) CreateAssignNearestDeliveryPersonCommandHandler() commands.AssignNearestDeliveryPersonCommandHandler {
	return commands.NewAssignNearestDeliveryPersonCommandHandler(
		c.fullUoWFactory(), c.CandidateDiscovery(), c.CreateManualAssignDeliveryPersonCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	publisher := kafkaout.NewEventPublisher(c.infra.KafkaWriter)
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), publisher, c.logger)
}

func (c *CompositionRoot) CreateRetryPendingAssignmentsCommandHandler() commands.RetryPendingAssignmentsCommandHandler {
	return commands.NewRetryPendingAssignmentsCommandHandler(
		c.fullUoWFactory(), c.CreateAssignNearestDeliveryPersonCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateOrderStatusChangedHandler() *events.OrderStatusChangedHandler {
	notifier := rabbitmq.NewNotificationDispatcher(c.infra.RabbitMQ.Channel(), c.configs.RabbitMQNotificationsEx)
	return events.NewOrderStatusChangedHandler(notifier, c.CreateAssignNearestDeliveryPersonCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateOrderEventsConsumer() *kafkain.OrderEventsConsumer {
	return kafkain.NewOrderEventsConsumer(c.infra.KafkaReader, c.CreateOrderStatusChangedHandler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(),
		c.CreateRetryPendingAssignmentsCommandHandler(),
		jobs.Config{
			OutboxRelaySchedule:     c.configs.OutboxRelaySchedule,
			OutboxRelayBatchSize:    c.configs.OutboxRelayBatchSize,
			AssignmentSweepSchedule: c.configs.AssignmentSweepSchedule,
			AssignmentSweepMinAge:   c.configs.AssignmentSweepGrace,
			AssignmentSweepBatch:    c.configs.AssignmentSweepBatch,
		},
		c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:          commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.logger),
		UpdateOrderStatus:    commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.logger),
		CancelOrder:          commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.logger),
		AssignNearest:        c.CreateAssignNearestDeliveryPersonCommandHandler(),
		ManualAssign:         c.CreateManualAssignDeliveryPersonCommandHandler(),
		ReleaseAssignment:    commands.NewReleaseOrderAssignmentCommandHandler(c.fullUoWFactory(), c.logger),
		PickUpOrder:          commands.NewPickUpOrderCommandHandler(c.fullUoWFactory(), c.logger),
		DeliverOrder:         commands.NewDeliverOrderCommandHandler(c.fullUoWFactory(), c.logger),
		CreateDeliveryPerson: commands.NewCreateDeliveryPersonCommandHandler(c.deliveryPersonUoWFactory(), c.logger),
		UpdateLocation:       commands.NewUpdateDeliveryPersonLocationCommandHandler(c.deliveryPersonUoWFactory(), c.logger),
		SettleCashBalance:    commands.NewSettleCashBalanceCommandHandler(c.deliveryPersonUoWFactory(), c.logger),
		CreateRestaurant:     commands.NewCreateRestaurantCommandHandler(c.restaurantUoWFactory(), c.logger),
		GetOrder:             queries.NewGetOrderQueryHandler(c.infra.DB),
		GetActiveOrders:      queries.NewGetActiveOrdersQueryHandler(c.infra.DB),
		GetAvailableCouriers: queries.NewGetAvailableDeliveryPersonsQueryHandler(c.CandidateDiscovery()),
	}, []byte(c.configs.JWTSecret))
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryPersonUoWFactory func() commands.DeliveryPersonUoW

func (f FuncDeliveryPersonUoWFactory) Create() commands.DeliveryPersonUoW {
	return f()
}

type FuncRestaurantUoWFactory func() commands.RestaurantUoW

func (f FuncRestaurantUoWFactory) Create() commands.RestaurantUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncDiscoveryRepositoriesFactory func() queries.DiscoveryRepositories

func (f FuncDiscoveryRepositoriesFactory) Create() queries.DiscoveryRepositories {
	return f()
}
