package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kawsar-hussain/server-A11/internal/domain/model"
)

// PaymentRepository stores settled payments. Implementations must reject a
// second record with the same transaction id with a DuplicateKey error.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Payment, error)

	// GetByTransactionID returns a NotFound error when no record exists
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)

	ListByDonorEmail(ctx context.Context, email string) ([]*model.Payment, error)
}
