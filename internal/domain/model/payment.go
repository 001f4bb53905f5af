package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatusPaid is the gateway payment status of a settled checkout.
const PaymentStatusPaid = "paid"

// Payment is an immutable record of a settled donation, one per TransactionID.
type Payment struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	// Amount is in major currency units (25.00, not 2500).
	Amount        decimal.Decimal `bson:"amount" json:"amount"`
	Currency      string          `bson:"currency" json:"currency"`
	DonorEmail    string          `bson:"donorEmail" json:"donorEmail"`
	DonorName     string          `bson:"donorName,omitempty" json:"donorName,omitempty"`
	TransactionID string          `bson:"transactionId" json:"transactionId"`
	SessionID     string          `bson:"sessionId" json:"sessionId"`
	PaymentStatus string          `bson:"paymentStatus" json:"paymentStatus"`
	PaidAt        time.Time       `bson:"paidAt" json:"paidAt"`
}

// MarshalJSON renders Amount as a JSON number with two decimals (25.00).
func (p Payment) MarshalJSON() ([]byte, error) {
	type plain Payment
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{
		plain:  plain(p),
		Amount: json.Number(p.Amount.StringFixed(2)),
	})
}
