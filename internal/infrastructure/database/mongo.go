package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// NewMongoDB connects to MongoDB and returns the configured database handle
func NewMongoDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Store.MongoURI))
	if err != nil {
		return nil, nil, apperrors.ErrDBConnectionFailed(fmt.Errorf("failed to connect to mongo: %w", err))
	}

	ping := func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
	if err := retryConnect(ctx, cfg.Store.ConnectTimeout, log, "mongo", ping); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, apperrors.ErrDBConnectionFailed(fmt.Errorf("failed to ping mongo: %w", err))
	}

	log.Info("✅ Database connected successfully",
		zap.String("driver", config.StoreDriverMongo),
		zap.String("database", cfg.Store.MongoDatabase),
	)

	return client, client.Database(cfg.Store.MongoDatabase), nil
}

// CloseMongo disconnects the client
func CloseMongo(ctx context.Context, client *mongo.Client, log *zap.Logger) error {
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close mongo: %w", err)
	}
	log.Info("✅ Database connection closed", zap.String("driver", config.StoreDriverMongo))
	return nil
}
