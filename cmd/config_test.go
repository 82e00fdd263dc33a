package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordertrack/internal/jobs"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_USER", "ordertrack")
	t.Setenv("DB_NAME", "ordertrack")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "8082", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.StoreMetadataTTL)
	assert.Equal(t, 256, cfg.EmailQueueSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, jobs.DefaultAutoCompleteSchedule, cfg.Schedules().AutoComplete)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "host=localhost port=5432 user=ordertrack password= dbname=ordertrack sslmode=disable", cfg.DSN())
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DB_USER=app\nDB_NAME=orders\nKAFKA_BROKERS=k1:9092, k2:9092\nEMAIL_SEND_TIMEOUT=3s\nLOG_LEVEL=debug\n",
	), 0o600))
	// godotenv does not override variables that are already set
	t.Setenv("DB_NAME", "from-env")
	t.Cleanup(func() {
		for _, key := range []string{"DB_USER", "KAFKA_BROKERS", "EMAIL_SEND_TIMEOUT", "LOG_LEVEL"} {
			os.Unsetenv(key)
		}
	})

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "app", cfg.DBUser)
	assert.Equal(t, "from-env", cfg.DBName)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 3*time.Second, cfg.OutboxConfig().SendTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("DB_USER", "ordertrack")
	t.Setenv("DB_NAME", "ordertrack")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("EMAIL_WORKERS", "0")

	_, err := LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER is required")
	assert.Contains(t, err.Error(), "EMAIL_WORKERS")
}

func TestLoadConfig_BadLogLevel(t *testing.T) {
	t.Setenv("DB_USER", "ordertrack")
	t.Setenv("DB_NAME", "ordertrack")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := LoadConfig("")

	assert.ErrorContains(t, err, "LOG_LEVEL")
}
