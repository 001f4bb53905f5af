package main

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/config"
	"github.com/kawsar-hussain/server-A11/internal/infrastructure/database"
	"github.com/kawsar-hussain/server-A11/pkg/logger"
)

// bootstrap loads configuration, builds the logger and connects to the
// document store. Callers own the returned client.
func bootstrap(ctx context.Context) (*config.Config, *zap.Logger, *mongo.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = log.With(
		zap.String("service", cfg.Service.Name),
		zap.String("environment", cfg.Service.Environment),
	)

	client, err := database.NewConnection(ctx, &cfg.Mongo, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, log, client, nil
}
