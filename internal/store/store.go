// Package store opens the document store backing the kiosk collections.
package store

import (
	"context"
	"fmt"
	"time"

	"kiosk/internal/apperr"
	"kiosk/internal/config"
	"kiosk/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Collections lists the models migrated at startup.
var Collections = []any{&models.Category{}, &models.MenuItem{}, &models.Order{}}

// Open connects to the configured SQL backend, verifies the connection and
// migrates the collections. The memory driver has no database and is
// rejected here.
func Open(ctx context.Context, cfg config.StoreConfig, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q has no SQL backend", cfg.Driver)
	}

	gormCfg := &gorm.Config{}
	if log != nil {
		gormCfg.Logger = gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		gormCfg.Logger = gormlogger.Discard
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, apperr.FromStore("open store", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// SQLite allows one writer; a private ":memory:" database also only
		// exists on the connection that created it.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Ping(ctx, db, cfg.Timeout); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout(cfg.Timeout))
	defer cancel()
	if err := db.WithContext(migrateCtx).AutoMigrate(Collections...); err != nil {
		_ = sqlDB.Close()
		return nil, apperr.FromStore("migrate collections", err)
	}
	return db, nil
}

// Ping checks that the store answers within timeout.
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.FromStore("ping store", err)
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

func migrateTimeout(t time.Duration) time.Duration {
	if t < 30*time.Second {
		return 30 * time.Second
	}
	return t
}
