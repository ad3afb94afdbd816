// Package gormstore implements the domain repositories on top of GORM with
// SQLite or PostgreSQL underneath.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string
	DSN    string
	// LogLevel is one of silent, error, warn, info.
	LogLevel string
	Logger   *zap.Logger
}

// Open connects to the configured database. SQLite is held to a single connection so
// in-memory databases survive and writers never contend.
func Open(cfg Config) (*gorm.DB, error) {
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(cfg.Logger, level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gormstore: open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("gormstore: sql handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}
	return db, nil
}

// Migrate creates or alters every table the repositories use.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models()...); err != nil {
		return fmt.Errorf("gormstore: migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps driver-level failures onto the given domain sentinels.
func translate(err error, conflict, notFound, invalidRef error) error {
	switch {
	case err == nil:
		return nil
	case conflict != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case invalidRef != nil && errors.Is(err, gorm.ErrForeignKeyViolated):
		return invalidRef
	default:
		return err
	}
}
