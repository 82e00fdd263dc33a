package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ordertrack/internal/adapters/out/email"
	"ordertrack/internal/jobs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// StoreMetadataTTL is how long the loaded table metadata is trusted before a reconnect.
	StoreMetadataTTL time.Duration

	// RedisAddr enables the catalog cache when set.
	RedisAddr  string
	CatalogTTL time.Duration

	// KafkaBrokers enables the mail relay gateway when set; otherwise mail is only logged.
	KafkaBrokers []string
	EmailTopic   string

	EmailQueueSize   int
	EmailWorkers     int
	EmailSendTimeout time.Duration

	AutoCompleteSchedule     string
	ArchiveReconcileSchedule string

	LogLevel slog.Level
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) OutboxConfig() email.OutboxConfig {
	return email.OutboxConfig{
		QueueSize:   c.EmailQueueSize,
		Workers:     c.EmailWorkers,
		SendTimeout: c.EmailSendTimeout,
	}
}

func (c Config) Schedules() jobs.Schedules {
	return jobs.Schedules{
		AutoComplete:     c.AutoCompleteSchedule,
		ArchiveReconcile: c.ArchiveReconcileSchedule,
	}
}

// LoadConfig reads the environment, after loading envFile if it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := Config{
		HTTPPort:   v.GetString("HTTP_PORT"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		StoreMetadataTTL: v.GetDuration("STORE_METADATA_TTL"),

		RedisAddr:  v.GetString("REDIS_ADDR"),
		CatalogTTL: v.GetDuration("CATALOG_TTL"),

		KafkaBrokers: splitList(v.GetString("KAFKA_BROKERS")),
		EmailTopic:   v.GetString("EMAIL_TOPIC"),

		EmailQueueSize:   v.GetInt("EMAIL_QUEUE_SIZE"),
		EmailWorkers:     v.GetInt("EMAIL_WORKERS"),
		EmailSendTimeout: v.GetDuration("EMAIL_SEND_TIMEOUT"),

		AutoCompleteSchedule:     v.GetString("AUTO_COMPLETE_SCHEDULE"),
		ArchiveReconcileSchedule: v.GetString("ARCHIVE_RECONCILE_SCHEDULE"),

		LogLevel: level,
	}
	return cfg, cfg.validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8082")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("STORE_METADATA_TTL", "5m")
	v.SetDefault("CATALOG_TTL", "5m")
	v.SetDefault("EMAIL_TOPIC", "ordertrack.mail")
	v.SetDefault("EMAIL_QUEUE_SIZE", 256)
	v.SetDefault("EMAIL_WORKERS", 2)
	v.SetDefault("EMAIL_SEND_TIMEOUT", "10s")
	v.SetDefault("AUTO_COMPLETE_SCHEDULE", jobs.DefaultAutoCompleteSchedule)
	v.SetDefault("ARCHIVE_RECONCILE_SCHEDULE", jobs.DefaultArchiveReconcileSchedule)
	v.SetDefault("LOG_LEVEL", "info")
}

func (c Config) validate() error {
	var problems []error
	if c.DBUser == "" {
		problems = append(problems, errors.New("DB_USER is required"))
	}
	if c.DBName == "" {
		problems = append(problems, errors.New("DB_NAME is required"))
	}
	if c.StoreMetadataTTL <= 0 {
		problems = append(problems, errors.New("STORE_METADATA_TTL must be positive"))
	}
	if c.EmailWorkers <= 0 || c.EmailQueueSize <= 0 {
		problems = append(problems, errors.New("EMAIL_WORKERS and EMAIL_QUEUE_SIZE must be positive"))
	}
	return errors.Join(problems...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
