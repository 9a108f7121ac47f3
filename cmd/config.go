package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

const (
	EventBusMemory   = "memory"
	EventBusAMQP     = "amqp"
	EventBusPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	EventBus        string
	AMQPURL         string
	AMQPExchange    string
	PGNotifyChannel string

	JWTSecret string
	JWTTTL    time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string

	SubscriberQueueSize int
	BusHealthSchedule   string
	LogLevel            slog.Level
}

// LoadConfig reads .env.<APP_ENV> and then .env into the environment without
// overriding variables already set, and builds the Config from it.
func LoadConfig() (Config, error) {
	if env := os.Getenv("APP_ENV"); env != "" {
		if err := loadDotEnv(".env." + env); err != nil {
			return Config{}, err
		}
	}
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return ConfigFromEnv(os.Getenv)
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// ConfigFromEnv builds a Config from lookup, applying defaults, and validates it.
func ConfigFromEnv(lookup func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPPort:          get("HTTP_PORT", "8080"),
		DBDriver:          strings.ToLower(get("DB_DRIVER", postgres.DriverPostgres)),
		DBHost:            get("DB_HOST", ""),
		DBPort:            get("DB_PORT", "5432"),
		DBUser:            get("DB_USER", ""),
		DBPassword:        lookup("DB_PASSWORD"),
		DBName:            get("DB_NAME", ""),
		DBSslMode:         get("DB_SSLMODE", "disable"),
		SQLitePath:        get("SQLITE_PATH", "dispatch.db"),
		EventBus:          strings.ToLower(get("EVENT_BUS", EventBusMemory)),
		AMQPURL:           get("AMQP_URL", ""),
		AMQPExchange:      get("AMQP_EXCHANGE", "dispatch_events"),
		PGNotifyChannel:   get("PG_NOTIFY_CHANNEL", "ops_events"),
		JWTSecret:         lookup("JWT_SECRET"),
		AdminName:         get("ADMIN_NAME", "Administrator"),
		AdminEmail:        get("ADMIN_EMAIL", ""),
		AdminPassword:     lookup("ADMIN_PASSWORD"),
		BusHealthSchedule: get("BUS_HEALTH_SCHEDULE", "@every 10s"),
	}

	var errs []error

	ttl, err := strconv.Atoi(get("JWT_TTL_MINUTES", "60"))
	if err != nil || ttl <= 0 {
		errs = append(errs, errors.New("JWT_TTL_MINUTES must be a positive integer"))
	}
	cfg.JWTTTL = time.Duration(ttl) * time.Minute

	cfg.SubscriberQueueSize, err = strconv.Atoi(get("SUBSCRIBER_QUEUE_SIZE", "64"))
	if err != nil || cfg.SubscriberQueueSize <= 0 {
		errs = append(errs, errors.New("SUBSCRIBER_QUEUE_SIZE must be a positive integer"))
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if err = errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combinations a field-by-field parse cannot.
func (c Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	switch c.DBDriver {
	case postgres.DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for postgres"))
		}
	case postgres.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of postgres, sqlite", c.DBDriver))
	}

	switch c.EventBus {
	case EventBusMemory:
	case EventBusAMQP:
		if c.AMQPURL == "" {
			errs = append(errs, errors.New("AMQP_URL is required for the amqp event bus"))
		}
	case EventBusPostgres:
		if c.DBDriver != postgres.DriverPostgres {
			errs = append(errs, errors.New("the postgres event bus needs DB_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("EVENT_BUS %q is not one of memory, amqp, postgres", c.EventBus))
	}

	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// DatabaseOptions addresses the configured store.
func (c Config) DatabaseOptions() postgres.Options {
	if c.DBDriver == postgres.DriverSQLite {
		return postgres.Options{
			Driver: postgres.DriverSQLite,
			DSN:    c.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000",
		}
	}
	return postgres.Options{Driver: postgres.DriverPostgres, DSN: c.PostgresDSN()}
}

// PostgresDSN is a libpq keyword/value connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
