package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kawsar-hussain/server-A11/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.InsertResult, error)
	List(ctx context.Context) ([]*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateByEmail(ctx context.Context, email string, set map[string]interface{}) (*model.UpdateResult, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*model.UpdateResult, error)
}
