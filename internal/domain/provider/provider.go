package provider

import (
	"context"
)

// CheckoutGateway creates hosted checkout sessions and reads them back.
type CheckoutGateway interface {
	// CreateSession opens a hosted payment page for a single donation
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error)

	// RetrieveSession returns a SessionNotFound error when the gateway has no such session
	RetrieveSession(ctx context.Context, sessionID string) (*SessionSnapshot, error)

	GetProviderName() string
}

// CreateSessionRequest is a provider-agnostic checkout request
type CreateSessionRequest struct {
	Amount         int64  `json:"amount"` // Amount in smallest currency unit
	Currency       string `json:"currency"`
	ProductName    string `json:"product_name"`
	DonorName      string `json:"donor_name"`
	DonorEmail     string `json:"donor_email"`
	SuccessURL     string `json:"success_url"`
	CancelURL      string `json:"cancel_url"`
	IdempotencyKey string `json:"-"`
}

type CreateSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SessionSnapshot is the state of a checkout session at retrieval time
type SessionSnapshot struct {
	ID              string            `json:"id"`
	PaymentStatus   string            `json:"payment_status"`
	PaymentIntentID string            `json:"payment_intent_id,omitempty"`
	AmountTotal     int64             `json:"amount_total"` // Amount in smallest currency unit
	Currency        string            `json:"currency"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// Metadata keys attached to checkout sessions
const (
	MetadataDonorName  = "donor_name"
	MetadataDonorEmail = "donor_email"
)
