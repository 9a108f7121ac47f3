package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := cmd.ConfigFromEnv(env(map[string]string{
		"JWT_SECRET": "s3cret",
		"DB_DRIVER":  "sqlite",
	}))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.EventBusMemory, cfg.EventBus)
	assert.Equal(t, "dispatch_events", cfg.AMQPExchange)
	assert.Equal(t, "ops_events", cfg.PGNotifyChannel)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 64, cfg.SubscriberQueueSize)
	assert.Equal(t, "@every 10s", cfg.BusHealthSchedule)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)

	opts := cfg.DatabaseOptions()
	assert.Equal(t, postgres.DriverSQLite, opts.Driver)
	assert.Contains(t, opts.DSN, "dispatch.db")
}

func TestConfigFromEnv_Postgres(t *testing.T) {
	cfg, err := cmd.ConfigFromEnv(env(map[string]string{
		"JWT_SECRET":      "s3cret",
		"JWT_TTL_MINUTES": "15",
		"DB_HOST":         "db",
		"DB_USER":         "dispatch",
		"DB_PASSWORD":     "pw",
		"DB_NAME":         "dispatch",
		"EVENT_BUS":       "postgres",
		"LOG_LEVEL":       "debug",
	}))

	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "host=db port=5432 user=dispatch password=pw dbname=dispatch sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, postgres.DriverPostgres, cfg.DatabaseOptions().Driver)
}

func TestConfigFromEnv_Rejects(t *testing.T) {
	base := map[string]string{"JWT_SECRET": "s3cret", "DB_DRIVER": "sqlite"}

	tests := []struct {
		name     string
		override map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"postgres without host", map[string]string{"DB_DRIVER": "postgres"}},
		{"unknown bus", map[string]string{"EVENT_BUS": "kafka"}},
		{"amqp without url", map[string]string{"EVENT_BUS": "amqp"}},
		{"notify bus on sqlite", map[string]string{"EVENT_BUS": "postgres"}},
		{"bad ttl", map[string]string{"JWT_TTL_MINUTES": "soon"}},
		{"zero queue", map[string]string{"SUBSCRIBER_QUEUE_SIZE": "0"}},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}},
		{"half an admin", map[string]string{"ADMIN_EMAIL": "root@dispatch.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make(map[string]string, len(base)+len(tt.override))
			for k, v := range base {
				values[k] = v
			}
			for k, v := range tt.override {
				values[k] = v
			}

			_, err := cmd.ConfigFromEnv(env(values))

			require.Error(t, err)
			assert.ErrorIs(t, err, cmd.ErrInvalidConfig)
		})
	}
}

func TestLoadConfig_ReadsEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("HTTP_PORT=9090\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("HTTP_PORT=7070\nJWT_SECRET=from-file\nDB_DRIVER=sqlite\n"), 0o600))

	t.Chdir(dir)
	t.Setenv("APP_ENV", "test")
	// t.Setenv restores these after the test; godotenv only fills unset keys.
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "")
	require.NoError(t, os.Unsetenv("HTTP_PORT"))
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	require.NoError(t, os.Unsetenv("DB_DRIVER"))

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestLoadConfig_MissingFilesAreFine(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := cmd.LoadConfig()

	require.NoError(t, err)
}
