package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agrilink/agrilink/internal/config"
	"github.com/agrilink/agrilink/internal/handlers"
	"github.com/agrilink/agrilink/internal/notifier"
	"github.com/agrilink/agrilink/internal/queue"
	"github.com/agrilink/agrilink/internal/repository"
	"github.com/agrilink/agrilink/internal/services"
	xhttp "github.com/agrilink/agrilink/pkg/http"
	"github.com/agrilink/agrilink/pkg/logger"
	"github.com/agrilink/agrilink/pkg/pg"
	"github.com/agrilink/agrilink/pkg/redis"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.CORSMiddleware(config.Get().CorsOrigin))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	notificationQueue, err := queue.New(redisAdap, queue.Config{
		Name:              config.Get().QueueName,
		ConsumerGroup:     config.Get().QueueConsumerGroup,
		ConsumerName:      config.Get().QueueConsumerName,
		MaxRetries:        config.Get().QueueMaxRetries,
		VisibilityTimeout: config.Get().QueueVisibilityTimeout,
		PollInterval:      config.Get().QueuePollInterval,
		BatchSize:         config.Get().QueueBatchSize,
		MaxLen:            config.Get().QueueMaxLen,
		EnableDLQ:         config.Get().QueueEnableDLQ,
	})
	if err != nil {
		logger.Error("failed creating notification queue", "error", err)
		return
	}

	orderRepo := repository.NewDeliveryOrderRepository(db)
	warehouseRepo := repository.NewWarehouseRequestRepository(db)
	productRepo := repository.NewProductRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	dispatcher := notifier.NewQueueDispatcher(notificationQueue)

	deliveryService := services.NewDeliveryService(orderRepo, dispatcher)
	warehouseService := services.NewWarehouseService(warehouseRepo)
	productService := services.NewProductService(productRepo)
	farmerService := services.NewFarmerService(farmerRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo)

	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	warehouseHandler := handlers.NewWarehouseHandler(warehouseService)
	productHandler := handlers.NewProductHandler(productService)
	farmerHandler := handlers.NewFarmerHandler(farmerService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	healthHandler := handlers.NewHealthHandler()

	api := s.Router.Group("/api")
	handlers.RegisterDeliveryRoutes(api, deliveryHandler)
	handlers.RegisterWarehouseRoutes(api, warehouseHandler)
	handlers.RegisterProductRoutes(api, productHandler)
	handlers.RegisterFarmerRoutes(s.Router.Group("/api/farmer"), farmerHandler)
	handlers.RegisterFeedbackRoutes(s.Router.Group("/api/feedback"), feedbackHandler)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(config.Get().HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
