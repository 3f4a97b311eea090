package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the pool and SQL logging. The zero value keeps the defaults.
type Options struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

func (o Options) withDefaults() Options {
	if o.MaxIdleConns == 0 {
		o.MaxIdleConns = 10
	}
	if o.MaxOpenConns == 0 {
		o.MaxOpenConns = 100
	}
	if o.ConnMaxLifetime == 0 {
		o.ConnMaxLifetime = time.Hour
	}
	if o.LogLevel == 0 {
		o.LogLevel = logger.Warn
	}
	return o
}

// LogLevelFor logs every statement outside production.
func LogLevelFor(environment string) logger.LogLevel {
	if environment == "production" {
		return logger.Warn
	}
	return logger.Info
}

func newLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // FindOne treats not-found as (nil, nil)
			ParameterizedQueries:      true, // Keep message content out of SQL logs
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, opts Options) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	return nil
}

func NewGormDBFromDSN(dsn string, opts Options) (*gorm.DB, error) {
	opts = opts.withDefaults()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger(opts.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, opts); err != nil {
		return nil, err
	}

	return db, nil
}
