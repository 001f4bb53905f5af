package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/domain/model"
	"github.com/kawsar-hussain/server-A11/internal/domain/repository"
)

type paymentRepository struct {
	store
	logger *zap.Logger
}

// NewPaymentRepository creates a Mongo-backed payment repository. The
// payment collection needs the unique transactionId index from EnsureIndexes.
func NewPaymentRepository(db *mongo.Database, timeout time.Duration, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		store:  newStore(db, CollectionPayments, timeout),
		logger: logger,
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Info("Payment already recorded",
				zap.String("transaction_id", payment.TransactionID))
		} else {
			r.logger.Error("Failed to insert payment",
				zap.String("transaction_id", payment.TransactionID),
				zap.Error(err))
		}
		return mapError(err, "payment", payment.TransactionID)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Payment, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id.Hex())
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	return r.findOne(ctx, bson.M{"transactionId": transactionID}, transactionID)
}

func (r *paymentRepository) findOne(ctx context.Context, filter bson.M, id string) (*model.Payment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var payment model.Payment
	if err := r.coll.FindOne(ctx, filter).Decode(&payment); err != nil {
		return nil, mapError(err, "payment", id)
	}
	return &payment, nil
}

// ListByDonorEmail returns the donor's payments, newest first
func (r *paymentRepository) ListByDonorEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetCollation(CaseInsensitive).
		SetSort(bson.D{{Key: "paidAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{"donorEmail": model.NormalizeEmail(email)}, opts)
	if err != nil {
		r.logger.Error("Failed to list payments",
			zap.String("donor_email", email),
			zap.Error(err))
		return nil, mapError(err, "payment", "")
	}
	defer cursor.Close(ctx)

	payments := make([]*model.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, mapError(err, "payment", "")
	}
	return payments, nil
}
