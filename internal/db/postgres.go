package db

import (
	"fmt"
	"time"

	"fittrack-go/internal/config"
	"fittrack-go/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
)

func NewPostgres(cfg config.DBConfig, log logger.Logger) (*gorm.DB, error) {
	if cfg.DSN != "" {
		log.Info("db: connecting using DSN")
	} else {
		log.Info("db: connecting to postgres", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Name, "sslmode", cfg.SSLMode)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, defaultMaxOpenConns))
	sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, defaultMaxIdleConns))
	sqlDB.SetConnMaxLifetime(orDefault(cfg.ConnMaxLifetime, defaultConnMaxLifetime))

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	log.Info("db: connected")
	return gormDB, nil
}

func orDefault[T int | time.Duration](value, fallback T) T {
	if value == 0 {
		return fallback
	}
	return value
}
