package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/kawsar-hussain/server-A11/internal/domain/errors"
	"github.com/kawsar-hussain/server-A11/internal/domain/model"
	"github.com/kawsar-hussain/server-A11/internal/domain/provider"
	"github.com/kawsar-hussain/server-A11/internal/domain/repository"
	apperrors "github.com/kawsar-hussain/server-A11/pkg/errors"
)

// ReconcileOutcome tells the caller what a reconciliation did
type ReconcileOutcome string

const (
	// OutcomeRecorded means this call inserted the payment record
	OutcomeRecorded ReconcileOutcome = "recorded"
	// OutcomeAlreadyReconciled means a record for the transaction already existed
	OutcomeAlreadyReconciled ReconcileOutcome = "already_reconciled"
	// OutcomeNotSettled means the session is not paid yet; nothing was stored
	OutcomeNotSettled ReconcileOutcome = "not_settled"
)

type ReconcileResult struct {
	Outcome       ReconcileOutcome `json:"outcome"`
	Payment       *model.Payment   `json:"payment,omitempty"`
	PaymentStatus string           `json:"paymentStatus,omitempty"`
}

// PaymentNotifier is told about every newly recorded payment
type PaymentNotifier interface {
	PaymentRecorded(ctx context.Context, payment *model.Payment) error
}

// CheckoutInput is a donation checkout request in major currency units
type CheckoutInput struct {
	Amount         decimal.Decimal
	DonorName      string
	DonorEmail     string
	IdempotencyKey string
}

type PaymentConfig struct {
	SiteOrigin  string
	Currency    string
	ProductName string
	// Timeout bounds a whole reconciliation, including store and gateway calls.
	Timeout time.Duration
}

type PaymentUsecase struct {
	paymentRepo repository.PaymentRepository
	gateway     provider.CheckoutGateway
	notifiers   []PaymentNotifier
	cfg         PaymentConfig
	logger      *zap.Logger
	now         func() time.Time
}

func NewPaymentUsecase(
	paymentRepo repository.PaymentRepository,
	gateway provider.CheckoutGateway,
	cfg PaymentConfig,
	logger *zap.Logger,
	notifiers ...PaymentNotifier,
) *PaymentUsecase {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.ProductName == "" {
		cfg.ProductName = "Donation"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		notifiers:   notifiers,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// MaxMinorUnits is the largest amount Stripe accepts for a single charge
const MaxMinorUnits int64 = 99999999

var maxMinorUnits = decimal.NewFromInt(MaxMinorUnits)

// exceedsMaxAmount compares in decimal so that amounts beyond int64 never wrap
func exceedsMaxAmount(amount decimal.Decimal) bool {
	return amount.Mul(decimal.NewFromInt(100)).GreaterThan(maxMinorUnits)
}

// ParseAmount reads a donation amount in major units from a decoded JSON
// value. Numbers and numeric strings are accepted; anything not strictly
// positive, or above MaxMinorUnits, is an InvalidAmount error.
func ParseAmount(raw interface{}) (decimal.Decimal, error) {
	var (
		amount decimal.Decimal
		err    error
	)

	switch v := raw.(type) {
	case nil:
		return decimal.Zero, domainErrors.NewInvalidAmountError("donation amount is required", nil)
	case decimal.Decimal:
		amount = v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, domainErrors.NewInvalidAmountError("donation amount is not a number", nil)
		}
		amount = decimal.NewFromFloat(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case int64:
		amount = decimal.NewFromInt(v)
	case json.Number:
		amount, err = decimal.NewFromString(v.String())
	case string:
		amount, err = decimal.NewFromString(strings.TrimSpace(v))
	default:
		return decimal.Zero, domainErrors.NewInvalidAmountError(fmt.Sprintf("donation amount has unsupported type %T", raw), nil)
	}
	if err != nil {
		return decimal.Zero, domainErrors.NewInvalidAmountError("donation amount is not a number", err)
	}

	if !amount.IsPositive() {
		return decimal.Zero, domainErrors.NewInvalidAmountError("donation amount must be positive", nil)
	}
	if exceedsMaxAmount(amount) {
		return decimal.Zero, domainErrors.NewInvalidAmountError("donation amount exceeds the maximum charge", nil)
	}
	return amount, nil
}

// MinorUnits converts a major-unit amount to minor units, truncating any
// fraction of a minor unit.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// MajorUnits converts a gateway minor-unit total back to major units
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-2)
}

// CreateCheckout opens a hosted checkout session for a donation
func (u *PaymentUsecase) CreateCheckout(ctx context.Context, in CheckoutInput) (*provider.CreateSessionResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domainErrors.NewInvalidAmountError("donation amount must be positive", nil)
	}
	if exceedsMaxAmount(in.Amount) {
		return nil, domainErrors.NewInvalidAmountError("donation amount exceeds the maximum charge", nil)
	}

	minor := MinorUnits(in.Amount)
	if minor <= 0 {
		return nil, domainErrors.NewInvalidAmountError("donation amount is below the smallest currency unit", nil)
	}

	key := in.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	origin := strings.TrimRight(u.cfg.SiteOrigin, "/")
	session, err := u.gateway.CreateSession(ctx, &provider.CreateSessionRequest{
		Amount:         minor,
		Currency:       u.cfg.Currency,
		ProductName:    u.cfg.ProductName,
		DonorName:      strings.TrimSpace(in.DonorName),
		DonorEmail:     model.NormalizeEmail(in.DonorEmail),
		SuccessURL:     origin + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      origin + "/dashboard/payment-cancelled",
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.Int64("amount_minor", minor),
		zap.String("idempotency_key", key))
	return session, nil
}

// Reconcile turns a completed checkout session into exactly one payment
// record. It is safe to call any number of times for the same session, also
// concurrently: the unique transactionId index decides which call inserts.
//
// The work is detached from the caller's cancellation so that an aborted
// request still finishes what it started.
func (u *PaymentUsecase) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, domainErrors.NewInvalidInputError("session_id is required")
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.cfg.Timeout)
	defer cancel()

	session, err := u.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		apperrors.LogError(u.logger, err, "Failed to retrieve checkout session", zap.String("session_id", sessionID))
		return nil, err
	}

	txID := session.PaymentIntentID
	if txID == "" {
		txID = sessionID
	}

	existing, err := u.paymentRepo.GetByTransactionID(ctx, txID)
	switch {
	case err == nil:
		u.logger.Info("Payment already reconciled",
			zap.String("session_id", sessionID),
			zap.String("transaction_id", txID))
		return &ReconcileResult{Outcome: OutcomeAlreadyReconciled, Payment: existing, PaymentStatus: existing.PaymentStatus}, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		apperrors.LogError(u.logger, err, "Failed to look up payment", zap.String("transaction_id", txID))
		return nil, err
	}

	if session.PaymentStatus != model.PaymentStatusPaid {
		u.logger.Info("Checkout session not settled",
			zap.String("session_id", sessionID),
			zap.String("payment_status", session.PaymentStatus))
		return &ReconcileResult{Outcome: OutcomeNotSettled, PaymentStatus: session.PaymentStatus}, nil
	}

	payment := u.paymentFromSession(session, txID)
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		if !errors.Is(err, domainErrors.ErrDuplicateKey) {
			apperrors.LogError(u.logger, err, "Failed to record payment", zap.String("transaction_id", txID))
			return nil, err
		}

		// lost the insert race; the winner's record is the answer
		existing, err := u.paymentRepo.GetByTransactionID(ctx, txID)
		if err != nil {
			return nil, err
		}
		u.logger.Info("Concurrent reconciliation resolved",
			zap.String("session_id", sessionID),
			zap.String("transaction_id", txID))
		return &ReconcileResult{Outcome: OutcomeAlreadyReconciled, Payment: existing, PaymentStatus: existing.PaymentStatus}, nil
	}

	u.logger.Info("Payment recorded",
		zap.String("session_id", sessionID),
		zap.String("transaction_id", txID),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("currency", payment.Currency))

	u.notify(ctx, payment)
	return &ReconcileResult{Outcome: OutcomeRecorded, Payment: payment, PaymentStatus: payment.PaymentStatus}, nil
}

func (u *PaymentUsecase) paymentFromSession(session *provider.SessionSnapshot, txID string) *model.Payment {
	email := session.CustomerEmail
	if email == "" {
		email = session.Metadata[provider.MetadataDonorEmail]
	}
	currency := session.Currency
	if currency == "" {
		currency = u.cfg.Currency
	}

	return &model.Payment{
		Amount:        MajorUnits(session.AmountTotal),
		Currency:      strings.ToLower(currency),
		DonorEmail:    model.NormalizeEmail(email),
		DonorName:     session.Metadata[provider.MetadataDonorName],
		TransactionID: txID,
		SessionID:     session.ID,
		PaymentStatus: session.PaymentStatus,
		PaidAt:        u.now().UTC().Truncate(time.Millisecond),
	}
}

func (u *PaymentUsecase) notify(ctx context.Context, payment *model.Payment) {
	for _, n := range u.notifiers {
		if err := n.PaymentRecorded(ctx, payment); err != nil {
			u.logger.Warn("Payment notification failed",
				zap.String("transaction_id", payment.TransactionID),
				zap.String("notifier", fmt.Sprintf("%T", n)),
				zap.Error(err))
		}
	}
}

func (u *PaymentUsecase) GetPayment(ctx context.Context, id string) (*model.Payment, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	return u.paymentRepo.GetByID(ctx, oid)
}

// ListPaymentsByDonor returns a donor's payment history, newest first
func (u *PaymentUsecase) ListPaymentsByDonor(ctx context.Context, email string) ([]*model.Payment, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, domainErrors.NewInvalidInputError("email is required")
	}
	return u.paymentRepo.ListByDonorEmail(ctx, email)
}
