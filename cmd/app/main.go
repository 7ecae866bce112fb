package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/cmd"
	kafkain "fooddelivery/internal/adapters/in/kafka"
	kafkaout "fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rabbitmq"

	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	configs := cmd.LoadConfig()
	if configs.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	dsn := configs.DBSettings().DSN()
	if err := postgres.RunMigrations(dsn); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	db, err := postgres.Open(dsn)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
	defer redisClient.Close()

	rabbit, err := rabbitmq.Dial(configs.RabbitMQURL, configs.RabbitMQNotificationsEx)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbit.Close()

	writer := kafkaout.NewWriter(configs.KafkaBrokers, configs.KafkaOrderChangedTopic)
	defer writer.Close()
	reader := kafkain.NewReader(configs.KafkaBrokers, configs.KafkaOrderChangedTopic, configs.KafkaConsumerGroup)

	app := cmd.NewCompositionRoot(configs, cmd.Infrastructure{
		DB:          db,
		Redis:       redisClient,
		KafkaWriter: writer,
		KafkaReader: reader,
		RabbitMQ:    rabbit,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	consumer := app.CreateOrderEventsConsumer()
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		consumer.Run(ctx)
	}()

	startWebServer(ctx, app, configs.HTTPPort, logger)

	<-consumerDone
	if err = consumer.Close(); err != nil {
		logger.Error("failed to close kafka reader", "error", err)
	}
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := app.CreateHTTPServer().NewEcho()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}
