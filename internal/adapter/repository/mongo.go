package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/kawsar-hussain/server-A11/internal/domain/errors"
	"github.com/kawsar-hussain/server-A11/internal/domain/model"
	apperrors "github.com/kawsar-hussain/server-A11/pkg/errors"
)

// Collection names
const (
	CollectionUsers    = "users"
	CollectionRequests = "request"
	CollectionPayments = "payment"
)

const defaultOperationTimeout = 5 * time.Second

// collection opens a collection that understands decimal.Decimal fields
func collection(db *mongo.Database, name string) *mongo.Collection {
	return db.Collection(name, options.Collection().SetRegistry(Registry))
}

// store bounds every call against one collection by a per-operation timeout
type store struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func newStore(db *mongo.Database, name string, timeout time.Duration) store {
	if timeout <= 0 {
		timeout = defaultOperationTimeout
	}
	return store{coll: collection(db, name), timeout: timeout}
}

func (s store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// mapError translates driver errors into domain errors. kind and id only
// feed the NotFound message.
func mapError(err error, kind, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domainErrors.NewNotFoundError(kind, id)
	case mongo.IsDuplicateKeyError(err):
		return domainErrors.NewDuplicateKeyError(kind+" already exists", err)
	case mongo.IsTimeout(err),
		mongo.IsNetworkError(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded):
		return domainErrors.NewStoreUnavailableError(err)
	default:
		return apperrors.Wrap(err, "document store operation failed")
	}
}

func insertResult(res *mongo.InsertOneResult) *model.InsertResult {
	out := &model.InsertResult{Acknowledged: true}
	if oid, ok := res.InsertedID.(interface{ Hex() string }); ok {
		out.InsertedID = oid.Hex()
	}
	return out
}

func updateResult(res *mongo.UpdateResult) *model.UpdateResult {
	return &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}

func deleteResult(res *mongo.DeleteResult) *model.DeleteResult {
	return &model.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}
