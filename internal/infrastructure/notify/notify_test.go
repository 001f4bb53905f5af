package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/kawsar-hussain/server-A11/internal/config"
	"github.com/kawsar-hussain/server-A11/internal/domain/model"
	"github.com/kawsar-hussain/server-A11/pkg/messaging"
)

func testPayment() *model.Payment {
	return &model.Payment{
		ID:            primitive.NewObjectID(),
		Amount:        decimal.RequireFromString("25"),
		Currency:      "usd",
		DonorEmail:    "donor@example.com",
		DonorName:     "Rahim",
		TransactionID: "pi_123",
		SessionID:     "cs_test_1",
		PaymentStatus: "paid",
		PaidAt:        time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestEventNotifier_PaymentRecorded(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	sub := client.Subscribe(ctx, "donation.payments")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	notifier := NewEventNotifier(messaging.NewRedisPublisherFromClient(client), "donation.payments", zap.NewNop())
	payment := testPayment()
	require.NoError(t, notifier.PaymentRecorded(ctx, payment))

	recvCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(recvCtx)
	require.NoError(t, err)

	var event PaymentEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
	assert.Equal(t, EventPaymentRecorded, event.Type)
	assert.Equal(t, payment.ID.Hex(), event.PaymentID)
	assert.Equal(t, "25.00", event.Amount)
	assert.Equal(t, "pi_123", event.TransactionID)
	assert.True(t, event.PaidAt.Equal(payment.PaidAt))
}

func TestEventNotifier_PublisherDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	notifier := NewEventNotifier(messaging.NewRedisPublisherFromClient(client), "donation.payments", zap.NewNop())
	assert.Error(t, notifier.PaymentRecorded(context.Background(), testPayment()))
}

type captureSender struct {
	messages []*gomail.Message
	err      error
}

func (s *captureSender) DialAndSend(m ...*gomail.Message) error {
	s.messages = append(s.messages, m...)
	return s.err
}

func TestReceiptMailer(t *testing.T) {
	ctx := context.Background()

	t.Run("sends a receipt to the donor", func(t *testing.T) {
		sender := &captureSender{}
		mailer := NewReceiptMailerWithSender(sender, "no-reply@example.com", "Blood Donation", zap.NewNop())

		require.NoError(t, mailer.PaymentRecorded(ctx, testPayment()))
		require.Len(t, sender.messages, 1)

		msg := sender.messages[0]
		assert.Equal(t, []string{"donor@example.com"}, msg.GetHeader("To"))
		assert.Equal(t, []string{"Thank you for your donation"}, msg.GetHeader("Subject"))

		var buf bytes.Buffer
		_, err := msg.WriteTo(&buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "25.00 USD")
		assert.Contains(t, buf.String(), "pi_123")
	})

	t.Run("skips payments without an email", func(t *testing.T) {
		sender := &captureSender{}
		mailer := NewReceiptMailerWithSender(sender, "no-reply@example.com", "Blood Donation", zap.NewNop())

		payment := testPayment()
		payment.DonorEmail = ""
		require.NoError(t, mailer.PaymentRecorded(ctx, payment))
		assert.Empty(t, sender.messages)
	})

	t.Run("reports delivery failures", func(t *testing.T) {
		sender := &captureSender{err: errors.New("connection refused")}
		mailer := NewReceiptMailerWithSender(sender, "no-reply@example.com", "Blood Donation", zap.NewNop())

		assert.ErrorContains(t, mailer.PaymentRecorded(ctx, testPayment()), "connection refused")
	})

	t.Run("disabled without smtp host", func(t *testing.T) {
		assert.Nil(t, NewReceiptMailer(&config.EmailConfig{}, "Blood Donation", zap.NewNop()))
	})
}
