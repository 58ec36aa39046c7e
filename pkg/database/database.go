package database

import (
	"context"
	"eventhub_backend/internal/config"
	"eventhub_backend/internal/model"
	"eventhub_backend/pkg/logger"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func newGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(
		zap.NewStdLog(logger.Log),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Open connects to MySQL and applies the pool settings.
func Open(dsn string, pool PoolConfig, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newGormLogger(debug),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or alters the table of every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Log.Info("Database migration completed")
	return nil
}

// InitDB opens the configured database. Tables are migrated outside release
// mode, or whenever a migration is forced.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg.Database.DSN(), PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, !cfg.Server.IsRelease())
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName))

	if !cfg.Server.IsRelease() || cfg.ForceMigrate || cfg.MigrateOnly {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// PingTimeout bounds health checks against the stores.
const PingTimeout = 2 * time.Second

// Ping checks the connection with a short deadline.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
