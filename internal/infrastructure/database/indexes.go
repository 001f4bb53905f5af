package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/adapter/repository"
)

type collectionIndex struct {
	collection string
	model      mongo.IndexModel
}

// payment.transactionId carries the exactly-once guarantee for reconciliation
var indexes = []collectionIndex{
	{
		collection: repository.CollectionPayments,
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "transactionId", Value: 1}},
			Options: options.Index().SetName("transactionId_unique").SetUnique(true),
		},
	},
	{
		collection: repository.CollectionPayments,
		model: mongo.IndexModel{
			Keys: bson.D{{Key: "donorEmail", Value: 1}, {Key: "paidAt", Value: -1}},
			Options: options.Index().
				SetName("donorEmail_paidAt").
				SetCollation(repository.CaseInsensitive),
		},
	},
	{
		collection: repository.CollectionUsers,
		model: mongo.IndexModel{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true).
				SetCollation(repository.CaseInsensitive),
		},
	},
	{
		collection: repository.CollectionRequests,
		model: mongo.IndexModel{
			Keys: bson.D{{Key: "requesterEmail", Value: 1}},
			Options: options.Index().
				SetName("requesterEmail").
				SetCollation(repository.CaseInsensitive),
		},
	},
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	logger.Info("Ensuring database indexes...")

	for _, idx := range indexes {
		name, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			logger.Error("Failed to create index",
				zap.String("collection", idx.collection),
				zap.Error(err))
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
		logger.Debug("Index ready",
			zap.String("collection", idx.collection),
			zap.String("index", name))
	}

	logger.Info("Database indexes ensured", zap.Int("count", len(indexes)))
	return nil
}
