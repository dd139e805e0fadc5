package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agrilink/agrilink/internal/config"
	gateway "github.com/agrilink/agrilink/internal/gateways"
	"github.com/agrilink/agrilink/internal/notifier"
	"github.com/agrilink/agrilink/internal/repository"
	"github.com/agrilink/agrilink/pkg/logger"
	"github.com/agrilink/agrilink/pkg/pg"
	"github.com/agrilink/agrilink/pkg/prom"
	"github.com/agrilink/agrilink/pkg/redis"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

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

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	cfg := &gateway.Config{
		Providers: []gateway.ProviderConfig{
			{Name: "primary", URL: config.Get().MailProviderPrimaryUrl, Weight: 100},
			{Name: "secondary", URL: config.Get().MailProviderSecondaryUrl, Weight: 80},
			{Name: "backup", URL: config.Get().MailProviderBackupUrl, Weight: 60},
		},
		Timeout:                 time.Second * 5,
		MaxRetries:              3,
		RetryDelay:              time.Millisecond * 100,
		MaxConns:                1000,
		HealthCheckInterval:     30 * time.Second,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   60 * time.Second,
	}
	client, err := gateway.NewClient(cfg)
	if err != nil {
		logger.Error("failed to create email gateway", "error", err)
		return
	}

	logRepo := repository.NewNotificationLogRepository(db)

	idempotencyService := notifier.NewIdempotencyService(redisAdap, notifier.DefaultIdempotencyConfig())

	service, err := notifier.NewService(redisAdap)
	if err != nil {
		logger.Error("failed to create the notifier service", "error", err)
		return
	}
	service.RegisterProcessor(notifier.NewEmailProcessor(
		client,
		logRepo,
		idempotencyService,
		config.Get().MailFromAddress,
		config.Get().TrackingBaseUrl,
	))

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	if err := prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}

	go func() {
		prom.ListenAndServer(":9100", "/metrics")
	}()

	go func() {
		if err := service.Start(); err != nil {
			logger.Error("failed to start notifier", "error", err)
		}
	}()

	<-c
	service.Stop()
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
