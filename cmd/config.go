package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"fueldelivery/internal/adapters/in/ws"
	"fueldelivery/internal/adapters/out/postgres"
	"fueldelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every variable, e.g. FUELDELIVERY_HTTP_PORT.
const EnvPrefix = "FUELDELIVERY"

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	DBDriver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	DBDSN             string        `envconfig:"DB_DSN"`
	DBHost            string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort            string        `envconfig:"DB_PORT" default:"5432"`
	DBUser            string        `envconfig:"DB_USER"`
	DBPassword        string        `envconfig:"DB_PASSWORD"`
	DBName            string        `envconfig:"DB_NAME"`
	DBSslMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	AutoMigrate       bool          `envconfig:"AUTO_MIGRATE" default:"true"`

	RedisURL          string        `envconfig:"REDIS_URL"`
	DirectoryCacheTTL time.Duration `envconfig:"DIRECTORY_CACHE_TTL" default:"5m"`

	KafkaBrokers           string `envconfig:"KAFKA_BROKERS"`
	KafkaOrderChangedTopic string `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"order-changed"`

	WSSendBuffer     int           `envconfig:"WS_SEND_BUFFER" default:"64"`
	WSWriteTimeout   time.Duration `envconfig:"WS_WRITE_TIMEOUT" default:"10s"`
	WSPingInterval   time.Duration `envconfig:"WS_PING_INTERVAL" default:"30s"`
	WSIdleTimeout    time.Duration `envconfig:"WS_IDLE_TIMEOUT" default:"90s"`
	WSAllowedOrigins []string      `envconfig:"WS_ALLOWED_ORIGINS"`

	SweepSchedule   string        `envconfig:"SWEEP_SCHEDULE" default:"@every 30s"`
	ExpirySchedule  string        `envconfig:"EXPIRY_SCHEDULE" default:"0 * * * * *"`
	PendingOrderTTL time.Duration `envconfig:"PENDING_ORDER_TTL" default:"2h"`
	ExpiryBatchSize int           `envconfig:"EXPIRY_BATCH_SIZE" default:"100"`
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("processing env: %w", err)
	}
	return cfg, nil
}

func (c Config) DatabaseOptions() postgres.Options {
	dsn := c.DBDSN
	if dsn == "" && c.DBDriver == postgres.DriverPostgres {
		dsn = postgres.PostgresDSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
	}
	return postgres.Options{
		Driver:          c.DBDriver,
		DSN:             dsn,
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	}
}

func (c Config) WebsocketConfig() ws.Config {
	return ws.Config{
		WriteTimeout:   c.WSWriteTimeout,
		PingInterval:   c.WSPingInterval,
		PongTimeout:    c.WSIdleTimeout,
		AllowedOrigins: c.WSAllowedOrigins,
	}
}

func (c Config) JobsConfig() jobs.Config {
	return jobs.Config{
		SweepSchedule:   c.SweepSchedule,
		IdleTimeout:     c.WSIdleTimeout,
		ExpirySchedule:  c.ExpirySchedule,
		PendingOrderTTL: c.PendingOrderTTL,
		ExpiryBatchSize: c.ExpiryBatchSize,
	}
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
