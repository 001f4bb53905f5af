package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/kawsar-hussain/server-A11/internal/domain/errors"
	"github.com/kawsar-hussain/server-A11/internal/domain/model"
	"github.com/kawsar-hussain/server-A11/internal/domain/repository"
)

// DonationRequestUsecase manages donation requests and their status field.
// Status values are not validated and any transition is allowed.
type DonationRequestUsecase struct {
	repo   repository.DonationRequestRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewDonationRequestUsecase(repo repository.DonationRequestRepository, logger *zap.Logger) *DonationRequestUsecase {
	return &DonationRequestUsecase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateRequest stores a new request stamped with the current time. A missing
// status defaults to pending.
func (u *DonationRequestUsecase) CreateRequest(ctx context.Context, fields model.RequestFields) (*model.InsertResult, error) {
	if err := fields.ValidateExtraKeys(); err != nil {
		return nil, err
	}
	fields.NormalizeEmails()
	req := model.NewDonationRequest(fields, u.now().UTC().Truncate(time.Millisecond))

	result, err := u.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	u.logger.Info("Donation request created",
		zap.String("id", result.InsertedID),
		zap.String("requester_email", req.RequesterEmail),
		zap.String("status", req.Status))
	return result, nil
}

func (u *DonationRequestUsecase) ListRequests(ctx context.Context) ([]*model.DonationRequest, error) {
	return u.repo.List(ctx)
}

// ListRequestsByRequester matches the requester email ignoring case and
// surrounding whitespace.
func (u *DonationRequestUsecase) ListRequestsByRequester(ctx context.Context, email string) ([]*model.DonationRequest, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, domainErrors.NewInvalidInputError("email is required")
	}
	return u.repo.ListByRequesterEmail(ctx, email)
}

func (u *DonationRequestUsecase) GetRequestByID(ctx context.Context, id string) (*model.DonationRequest, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	return u.repo.GetByID(ctx, oid)
}

// UpdateStatus sets only the status field. An unknown id yields a zero-match
// acknowledgement.
func (u *DonationRequestUsecase) UpdateStatus(ctx context.Context, id, status string) (*model.UpdateResult, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	status = strings.TrimSpace(status)
	if status == "" {
		return nil, domainErrors.NewInvalidInputError("status is required")
	}

	result, err := u.repo.Update(ctx, oid, map[string]interface{}{"status": status})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Donation request status updated",
		zap.String("id", id),
		zap.String("status", status),
		zap.Int64("matched", result.MatchedCount))
	return result, nil
}

// ReplaceFields overwrites the provided fields and leaves the rest untouched.
func (u *DonationRequestUsecase) ReplaceFields(ctx context.Context, id string, fields model.RequestFields) (*model.UpdateResult, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	if err := fields.ValidateExtraKeys(); err != nil {
		return nil, err
	}
	fields.NormalizeEmails()
	set := fields.ToUpdate()
	if len(set) == 0 {
		return &model.UpdateResult{Acknowledged: true}, nil
	}

	return u.repo.Update(ctx, oid, set)
}

func (u *DonationRequestUsecase) DeleteRequest(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	result, err := u.repo.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}

	u.logger.Info("Donation request deleted",
		zap.String("id", id),
		zap.Int64("deleted", result.DeletedCount))
	return result, nil
}
