package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/domain/model"
	"github.com/kawsar-hussain/server-A11/pkg/messaging"
)

// EventPaymentRecorded is published once per newly recorded payment
const EventPaymentRecorded = "payment.recorded"

// PaymentEvent is the JSON payload on the payment channel
type PaymentEvent struct {
	Type          string    `json:"type"`
	PaymentID     string    `json:"paymentId"`
	TransactionID string    `json:"transactionId"`
	SessionID     string    `json:"sessionId"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	DonorEmail    string    `json:"donorEmail"`
	DonorName     string    `json:"donorName,omitempty"`
	PaidAt        time.Time `json:"paidAt"`
}

func NewPaymentEvent(payment *model.Payment) PaymentEvent {
	return PaymentEvent{
		Type:          EventPaymentRecorded,
		PaymentID:     payment.ID.Hex(),
		TransactionID: payment.TransactionID,
		SessionID:     payment.SessionID,
		Amount:        payment.Amount.StringFixed(2),
		Currency:      payment.Currency,
		DonorEmail:    payment.DonorEmail,
		DonorName:     payment.DonorName,
		PaidAt:        payment.PaidAt,
	}
}

// EventNotifier publishes payment events for other services (dashboards,
// donor leaderboards) to consume.
type EventNotifier struct {
	publisher messaging.Publisher
	channel   string
	logger    *zap.Logger
}

func NewEventNotifier(publisher messaging.Publisher, channel string, logger *zap.Logger) *EventNotifier {
	return &EventNotifier{
		publisher: publisher,
		channel:   channel,
		logger:    logger,
	}
}

func (n *EventNotifier) PaymentRecorded(ctx context.Context, payment *model.Payment) error {
	if err := n.publisher.Publish(ctx, n.channel, NewPaymentEvent(payment)); err != nil {
		return err
	}

	n.logger.Debug("Payment event published",
		zap.String("channel", n.channel),
		zap.String("transaction_id", payment.TransactionID))
	return nil
}
