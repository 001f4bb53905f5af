package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kawsar-hussain/server-A11/internal/domain/model"
)

// DonationRequestRepository stores donation requests in the "request" collection
type DonationRequestRepository interface {
	Create(ctx context.Context, req *model.DonationRequest) (*model.InsertResult, error)
	List(ctx context.Context) ([]*model.DonationRequest, error)

	// ListByRequesterEmail matches the requester email case-insensitively
	ListByRequesterEmail(ctx context.Context, email string) ([]*model.DonationRequest, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*model.DonationRequest, error)

	// Update applies a field-level $set; fields absent from set are untouched
	Update(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*model.UpdateResult, error)

	Delete(ctx context.Context, id primitive.ObjectID) (*model.DeleteResult, error)
}
