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

// CaseInsensitive compares strings ignoring case, matching the email indexes
var CaseInsensitive = &options.Collation{Locale: "en", Strength: 2}

type donationRequestRepository struct {
	store
	logger *zap.Logger
}

// NewDonationRequestRepository creates a Mongo-backed donation request repository
func NewDonationRequestRepository(db *mongo.Database, timeout time.Duration, logger *zap.Logger) repository.DonationRequestRepository {
	return &donationRequestRepository{
		store:  newStore(db, CollectionRequests, timeout),
		logger: logger,
	}
}

func (r *donationRequestRepository) Create(ctx context.Context, req *model.DonationRequest) (*model.InsertResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, req)
	if err != nil {
		r.logger.Error("Failed to insert donation request",
			zap.String("requester_email", req.RequesterEmail),
			zap.Error(err))
		return nil, mapError(err, "donation request", "")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid
	}
	return insertResult(res), nil
}

func (r *donationRequestRepository) List(ctx context.Context) ([]*model.DonationRequest, error) {
	return r.find(ctx, bson.M{}, options.Find())
}

func (r *donationRequestRepository) ListByRequesterEmail(ctx context.Context, email string) ([]*model.DonationRequest, error) {
	filter := bson.M{"requesterEmail": model.NormalizeEmail(email)}
	return r.find(ctx, filter, options.Find().SetCollation(CaseInsensitive))
}

func (r *donationRequestRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.DonationRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to find donation requests", zap.Error(err))
		return nil, mapError(err, "donation request", "")
	}
	defer cursor.Close(ctx)

	requests := make([]*model.DonationRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		r.logger.Error("Failed to decode donation requests", zap.Error(err))
		return nil, mapError(err, "donation request", "")
	}
	return requests, nil
}

func (r *donationRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.DonationRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var req model.DonationRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return nil, mapError(err, "donation request", id.Hex())
	}
	return &req, nil
}

func (r *donationRequestRepository) Update(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*model.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("Failed to update donation request",
			zap.String("id", id.Hex()),
			zap.Error(err))
		return nil, mapError(err, "donation request", id.Hex())
	}
	return updateResult(res), nil
}

func (r *donationRequestRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.DeleteResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete donation request",
			zap.String("id", id.Hex()),
			zap.Error(err))
		return nil, mapError(err, "donation request", id.Hex())
	}
	return deleteResult(res), nil
}
