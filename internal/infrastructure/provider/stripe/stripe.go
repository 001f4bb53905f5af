package stripe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/config"
	domainErrors "github.com/kawsar-hussain/server-A11/internal/domain/errors"
	"github.com/kawsar-hussain/server-A11/internal/domain/provider"
)

const providerName = "stripe"

// StripeProvider implements provider.CheckoutGateway with Stripe Checkout
type StripeProvider struct {
	api     *client.API
	timeout time.Duration
	logger  *zap.Logger
}

// NewStripeProvider creates a Stripe client with its own backends so that
// several providers (and tests) never share the package-level stripe.Key.
func NewStripeProvider(cfg *config.StripeConfig, logger *zap.Logger) *StripeProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	backendConfig := &stripego.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripego.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     logger.Sugar(),
	}
	if cfg.APIBase != "" {
		backendConfig.URL = stripego.String(cfg.APIBase)
	}

	return &StripeProvider{
		api:     client.New(cfg.SecretKey, stripego.NewBackendsWithConfig(backendConfig)),
		timeout: timeout,
		logger:  logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return providerName
}

// CreateSession opens a one-off payment mode Checkout session
func (s *StripeProvider) CreateSession(ctx context.Context, req *provider.CreateSessionRequest) (*provider.CreateSessionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := &stripego.CheckoutSessionParams{
		Mode: stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency: stripego.String(req.Currency),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripego.String(req.ProductName),
					},
					UnitAmount: stripego.Int64(req.Amount),
				},
				Quantity: stripego.Int64(1),
			},
		},
		SuccessURL: stripego.String(req.SuccessURL),
		CancelURL:  stripego.String(req.CancelURL),
	}
	if req.DonorEmail != "" {
		params.CustomerEmail = stripego.String(req.DonorEmail)
		params.AddMetadata(provider.MetadataDonorEmail, req.DonorEmail)
	}
	if req.DonorName != "" {
		params.AddMetadata(provider.MetadataDonorName, req.DonorName)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	params.Context = ctx

	s.logger.Info("Creating checkout session",
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency),
		zap.String("donor_email", req.DonorEmail))

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		s.logger.Error("Failed to create checkout session", zap.Error(err))
		return nil, s.mapError(ctx, err, "")
	}

	return &provider.CreateSessionResponse{ID: session.ID, URL: session.URL}, nil
}

// RetrieveSession fetches a session by id
func (s *StripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*provider.SessionSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	session, err := s.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		s.logger.Warn("Failed to retrieve checkout session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, s.mapError(ctx, err, sessionID)
	}

	snapshot := &provider.SessionSnapshot{
		ID:            session.ID,
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
		CustomerEmail: session.CustomerEmail,
		Metadata:      session.Metadata,
	}
	if session.PaymentIntent != nil {
		snapshot.PaymentIntentID = session.PaymentIntent.ID
	}
	if snapshot.CustomerEmail == "" && session.CustomerDetails != nil {
		snapshot.CustomerEmail = session.CustomerDetails.Email
	}
	return snapshot, nil
}

// mapError classifies a Stripe failure. sessionID is empty on create.
func (s *StripeProvider) mapError(ctx context.Context, err error, sessionID string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return domainErrors.NewGatewayTimeoutError(err)
	}

	var stripeErr *stripego.Error
	if !errors.As(err, &stripeErr) {
		return domainErrors.NewGatewayUnavailableError(err)
	}

	switch {
	case sessionID != "" && (stripeErr.Code == stripego.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound):
		return domainErrors.NewSessionNotFoundError(sessionID, err)
	case stripeErr.HTTPStatusCode == http.StatusTooManyRequests || stripeErr.HTTPStatusCode >= http.StatusInternalServerError:
		return domainErrors.NewGatewayUnavailableError(err)
	case stripeErr.HTTPStatusCode >= http.StatusBadRequest && stripeErr.Type == stripego.ErrorTypeInvalidRequest:
		return domainErrors.NewInvalidInputError(stripeErr.Msg)
	default:
		return domainErrors.NewGatewayUnavailableError(err)
	}
}
