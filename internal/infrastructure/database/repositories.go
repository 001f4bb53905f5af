package database

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/adapter/repository"
	domainRepo "github.com/kawsar-hussain/server-A11/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	DonationRequest domainRepo.DonationRequestRepository
	Payment         domainRepo.PaymentRepository
	User            domainRepo.UserRepository
}

// NewRepositories creates repository instances over one database
func NewRepositories(db *mongo.Database, opTimeout time.Duration, logger *zap.Logger) *Repositories {
	return &Repositories{
		DonationRequest: repository.NewDonationRequestRepository(db, opTimeout, logger),
		Payment:         repository.NewPaymentRepository(db, opTimeout, logger),
		User:            repository.NewUserRepository(db, opTimeout, logger),
	}
}
