// Package db opens the gorm connection and provides shared query helpers.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"topbrands_backend/internal/platform/config"
)

// retryInterval is the fixed wait between connection attempts.
const retryInterval = 3 * time.Second

// Config holds PostgreSQL connection settings.
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string
}

// ConfigFrom extracts the database settings from the process config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		Name:         cfg.DBName,
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		SSLMode:      cfg.DBSSLMode,
		InstanceName: cfg.DBInstance,
	}
}

// BuildDSN builds a PostgreSQL DSN. A Cloud SQL instance name takes precedence
// over host/port and connects through the unix socket directory.
func BuildDSN(cfg Config) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name, sslmode)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// GormConfig is shared by every connection so unique violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// PostgresOpener opens PostgreSQL through gorm.
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), GormConfig())
}

// SQLiteOpener opens a SQLite file through gorm.
func SQLiteOpener(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), GormConfig())
}

// ConnectWithRetry calls opener every retryInterval until it succeeds or
// timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInterval
	b.MaxInterval = retryInterval
	b.Multiplier = 1
	b.RandomizationFactor = 0
	b.MaxElapsedTime = timeout

	var db *gorm.DB
	op := func() error {
		var err error
		db, err = opener(dsn)
		if err != nil {
			slog.Warn("DB connect failed, retrying", "error", err)
		}
		return err
	}
	if err := backoff.Retry(op, b); err != nil {
		return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
	}
	return db, nil
}

// Open connects using cfg and, when cfg.RunMigrations is set, migrates models.
func Open(cfg *config.Config, models ...any) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		db, err = ConnectWithRetry(cfg.SQLitePath, cfg.DBConnTimeout, SQLiteOpener)
	default:
		db, err = ConnectWithRetry(BuildDSN(ConfigFrom(cfg)), cfg.DBConnTimeout, PostgresOpener)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "driver", cfg.DBDriver)

	if cfg.RunMigrations {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("DB migrations applied", "models", len(models))
	}
	return db, nil
}
