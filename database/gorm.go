package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"k8s.io/klog/v2"
)

// klogWriter routes GORM's logger output through klog
type klogWriter struct{}

func (klogWriter) Printf(format string, args ...interface{}) {
	klog.InfofDepth(1, format, args...)
}

// NewLogger builds the GORM logger. Release mode only logs slow queries and errors.
func NewLogger(ginMode string) logger.Interface {
	level := logger.Info
	if ginMode == "release" {
		level = logger.Warn
	}
	return logger.New(
		klogWriter{},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}

// Open opens a database with the shared GORM options. Constraint
// violations are translated into gorm.ErrDuplicatedKey and friends.
func Open(dialector gorm.Dialector, log logger.Interface) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
}

// Connect opens the PostgreSQL connection, configures the pool and runs migrations
func Connect(dbURL, ginMode string) (*gorm.DB, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	db, err := Open(postgres.Open(dbURL), NewLogger(ginMode))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	klog.Info("Connected to database")

	var version string
	if err := db.Raw("SELECT version()").Scan(&version).Error; err == nil {
		klog.Infof("Database: %s", version)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}
