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

type userRepository struct {
	store
	logger *zap.Logger
}

func NewUserRepository(db *mongo.Database, timeout time.Duration, logger *zap.Logger) repository.UserRepository {
	return &userRepository{
		store:  newStore(db, CollectionUsers, timeout),
		logger: logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.InsertResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			r.logger.Error("Failed to insert user",
				zap.String("email", user.Email),
				zap.Error(err))
		}
		return nil, mapError(err, "user", user.Email)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return insertResult(res), nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, mapError(err, "user", "")
	}
	defer cursor.Close(ctx)

	users := make([]*model.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, mapError(err, "user", "")
	}
	return users, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user model.User
	opts := options.FindOne().SetCollation(CaseInsensitive)
	if err := r.coll.FindOne(ctx, bson.M{"email": model.NormalizeEmail(email)}, opts).Decode(&user); err != nil {
		return nil, mapError(err, "user", email)
	}
	return &user, nil
}

func (r *userRepository) UpdateByEmail(ctx context.Context, email string, set map[string]interface{}) (*model.UpdateResult, error) {
	opts := options.Update().SetCollation(CaseInsensitive)
	return r.update(ctx, bson.M{"email": model.NormalizeEmail(email)}, set, opts)
}

func (r *userRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*model.UpdateResult, error) {
	return r.update(ctx, bson.M{"_id": id}, set, options.Update())
}

func (r *userRepository) update(ctx context.Context, filter bson.M, set map[string]interface{}, opts *options.UpdateOptions) (*model.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		r.logger.Error("Failed to update user", zap.Any("filter", filter), zap.Error(err))
		return nil, mapError(err, "user", "")
	}
	return updateResult(res), nil
}
