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

type UserUsecase struct {
	repo   repository.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewUserUsecase(repo repository.UserRepository, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates an active buyer. A second registration with the same
// email fails with a DuplicateKey error.
func (u *UserUsecase) Register(ctx context.Context, in model.UserInput) (*model.InsertResult, error) {
	email := model.NormalizeEmail(in.Email)
	if email == "" {
		return nil, domainErrors.NewInvalidInputError("email is required")
	}

	user := &model.User{
		Email:      email,
		Name:       strings.TrimSpace(in.Name),
		PhotoURL:   in.PhotoURL,
		BloodGroup: in.BloodGroup,
		District:   in.District,
		Upazila:    in.Upazila,
		Role:       model.RoleBuyer,
		Status:     model.UserStatusActive,
		CreatedAt:  u.now().UTC().Truncate(time.Millisecond),
	}

	result, err := u.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	u.logger.Info("User registered", zap.String("email", email), zap.String("id", result.InsertedID))
	return result, nil
}

func (u *UserUsecase) List(ctx context.Context) ([]*model.User, error) {
	return u.repo.List(ctx)
}

func (u *UserUsecase) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, domainErrors.NewInvalidInputError("email is required")
	}
	return u.repo.GetByEmail(ctx, email)
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, email string, patch model.UserProfilePatch) (*model.UpdateResult, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, domainErrors.NewInvalidInputError("email is required")
	}

	set := patch.ToUpdate()
	if len(set) == 0 {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	return u.repo.UpdateByEmail(ctx, email, set)
}

func (u *UserUsecase) UpdateRole(ctx context.Context, id, role string) (*model.UpdateResult, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if !model.IsValidRole(role) {
		return nil, domainErrors.NewInvalidInputError("role must be one of buyer, volunteer, admin")
	}
	return u.updateField(ctx, id, "role", role)
}

func (u *UserUsecase) UpdateStatus(ctx context.Context, id, status string) (*model.UpdateResult, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !model.IsValidUserStatus(status) {
		return nil, domainErrors.NewInvalidInputError("status must be active or blocked")
	}
	return u.updateField(ctx, id, "status", status)
}

func (u *UserUsecase) updateField(ctx context.Context, id, field, value string) (*model.UpdateResult, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	result, err := u.repo.UpdateByID(ctx, oid, map[string]interface{}{field: value})
	if err != nil {
		return nil, err
	}

	u.logger.Info("User updated",
		zap.String("id", id),
		zap.String(field, value),
		zap.Int64("matched", result.MatchedCount))
	return result, nil
}
