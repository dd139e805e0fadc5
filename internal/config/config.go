package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/agrilink/agrilink/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every env-backed setting used by the binaries. Only this
// struct may be used to read configuration; no direct env access
// anywhere else.
type Config struct {
	AppEnv  string `env:"APP_ENV" default:"dev"`
	AppName string `env:"APP_NAME" default:"agrilink"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR" default:":5000"`
	CorsOrigin     string `env:"CORS_ORIGIN" default:"http://localhost:5173"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	PromNamespace string `env:"PROM_NAMESPACE" default:"agrilink"`

	LogLevel []string `env:"LOG_LEVEL"`

	QueueName              string        `env:"QUEUE_NAME" default:"notifications"`
	QueueConsumerGroup     string        `env:"QUEUE_CONSUMER_GROUP" default:"notifier"`
	QueueConsumerName      string        `env:"QUEUE_CONSUMER_NAME" default:"notifier-1"`
	QueueMaxRetries        int           `env:"QUEUE_MAX_RETRIES" default:"3"`
	QueueVisibilityTimeout time.Duration `env:"QUEUE_VISIBILITY_TIMEOUT" default:"30s"`
	QueuePollInterval      time.Duration `env:"QUEUE_POLL_INTERVAL" default:"1s"`
	QueueBatchSize         int64         `env:"QUEUE_BATCH_SIZE" default:"10"`
	QueueMaxLen            int64         `env:"QUEUE_MAX_LEN" default:"100000"`
	QueueEnableDLQ         bool          `env:"QUEUE_ENABLE_DLQ" default:"1"`

	MailProviderPrimaryUrl   string `env:"MAIL_PROVIDER_PRIMARY_URL"`
	MailProviderSecondaryUrl string `env:"MAIL_PROVIDER_SECONDARY_URL"`
	MailProviderBackupUrl    string `env:"MAIL_PROVIDER_BACKUP_URL"`
	MailFromAddress          string `env:"MAIL_FROM_ADDRESS" default:"logistics@agrilink.local"`
	TrackingBaseUrl          string `env:"TRACKING_BASE_URL" default:"http://localhost:5173/tracking"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
