package http

import (
	"context"

	"github.com/kawsar-hussain/server-A11/internal/domain/model"
	"github.com/kawsar-hussain/server-A11/internal/domain/provider"
	"github.com/kawsar-hussain/server-A11/internal/usecase"
)

// DonationRequestService is implemented by usecase.DonationRequestUsecase
type DonationRequestService interface {
	CreateRequest(ctx context.Context, fields model.RequestFields) (*model.InsertResult, error)
	ListRequests(ctx context.Context) ([]*model.DonationRequest, error)
	ListRequestsByRequester(ctx context.Context, email string) ([]*model.DonationRequest, error)
	GetRequestByID(ctx context.Context, id string) (*model.DonationRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.UpdateResult, error)
	ReplaceFields(ctx context.Context, id string, fields model.RequestFields) (*model.UpdateResult, error)
	DeleteRequest(ctx context.Context, id string) (*model.DeleteResult, error)
}

// PaymentService is implemented by usecase.PaymentUsecase
type PaymentService interface {
	CreateCheckout(ctx context.Context, in usecase.CheckoutInput) (*provider.CreateSessionResponse, error)
	Reconcile(ctx context.Context, sessionID string) (*usecase.ReconcileResult, error)
	GetPayment(ctx context.Context, id string) (*model.Payment, error)
	ListPaymentsByDonor(ctx context.Context, email string) ([]*model.Payment, error)
}

// UserService is implemented by usecase.UserUsecase
type UserService interface {
	Register(ctx context.Context, in model.UserInput) (*model.InsertResult, error)
	List(ctx context.Context) ([]*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, email string, patch model.UserProfilePatch) (*model.UpdateResult, error)
	UpdateRole(ctx context.Context, id, role string) (*model.UpdateResult, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.UpdateResult, error)
}

var (
	_ DonationRequestService = (*usecase.DonationRequestUsecase)(nil)
	_ PaymentService         = (*usecase.PaymentUsecase)(nil)
	_ UserService            = (*usecase.UserUsecase)(nil)
)
