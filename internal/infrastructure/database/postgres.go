package database

import (
	"context"
	"embed"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// NewPostgresDB creates a new PostgreSQL database connection using GORM.
// The first ping is retried with exponential backoff for up to
// STORE_CONNECT_TIMEOUT so the API can start before the database is ready.
func NewPostgresDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               gormLogger,
		DisableAutomaticPing: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, apperrors.ErrDBConnectionFailed(fmt.Errorf("failed to connect to database: %w", err))
	}

	// Get generic database object to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.ErrDBConnectionFailed(fmt.Errorf("failed to get database object: %w", err))
	}

	// Connection pool settings
	sqlDB.SetMaxOpenConns(cfg.Store.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Store.MinConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Test connection
	if err := retryConnect(ctx, cfg.Store.ConnectTimeout, log, "postgres", sqlDB.PingContext); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.ErrDBConnectionFailed(fmt.Errorf("failed to ping database: %w", err))
	}

	log.Info("✅ Database connected successfully", zap.String("driver", config.StoreDriverPostgres))

	return db, nil
}

// MigrationSource returns the embedded SQL migrations
func MigrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFS,
		Root:       "migrations",
	}
}

// Migrate runs up to limit migrations in dir; 0 means all of them
func Migrate(db *gorm.DB, dir migrate.MigrationDirection, limit int, log *zap.Logger) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate, error: %v", err)
	}

	n, err := migrate.ExecMax(sqlDB, "postgres", MigrationSource(), dir, limit)
	if err != nil {
		return n, fmt.Errorf("failed to apply migration, error: %v", err)
	}

	log.Info("✅ Applied migrations", zap.Int("count", n))
	return n, nil
}

// AutoMigrate applies every pending embedded migration
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	_, err := Migrate(db, migrate.Up, 0, log)
	return err
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Info("✅ Database connection closed")
	return nil
}

func retryConnect(ctx context.Context, maxElapsed time.Duration, log *zap.Logger, store string, ping func(context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed

	return backoff.RetryNotify(func() error {
		return ping(ctx)
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		log.Warn("store not reachable yet, retrying",
			zap.String("store", store),
			zap.Duration("retry_in", next),
			zap.Error(err),
		)
	})
}
