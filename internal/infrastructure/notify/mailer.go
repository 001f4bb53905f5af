package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/kawsar-hussain/server-A11/internal/config"
	"github.com/kawsar-hussain/server-A11/internal/domain/model"
)

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ReceiptMailer emails a donation receipt to the donor
type ReceiptMailer struct {
	sender   Sender
	from     string
	fromName string
	logger   *zap.Logger
}

// NewReceiptMailer returns nil when SMTP is not configured
func NewReceiptMailer(cfg *config.EmailConfig, serviceName string, logger *zap.Logger) *ReceiptMailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	return NewReceiptMailerWithSender(dialer, cfg.From, serviceName, logger)
}

func NewReceiptMailerWithSender(sender Sender, from, fromName string, logger *zap.Logger) *ReceiptMailer {
	return &ReceiptMailer{
		sender:   sender,
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

func (m *ReceiptMailer) PaymentRecorded(_ context.Context, payment *model.Payment) error {
	if payment.DonorEmail == "" {
		m.logger.Debug("Skipping receipt without donor email",
			zap.String("transaction_id", payment.TransactionID))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, m.fromName))
	msg.SetHeader("To", payment.DonorEmail)
	msg.SetHeader("Subject", "Thank you for your donation")
	msg.SetBody("text/plain", receiptText(payment))
	msg.AddAlternative("text/html", receiptHTML(payment))

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send receipt: %w", err)
	}

	m.logger.Info("Donation receipt sent",
		zap.String("to", payment.DonorEmail),
		zap.String("transaction_id", payment.TransactionID))
	return nil
}

func donorGreeting(payment *model.Payment) string {
	if payment.DonorName != "" {
		return payment.DonorName
	}
	return "friend"
}

func receiptText(payment *model.Payment) string {
	return fmt.Sprintf(`Hello %s,

We received your donation of %s %s.

Transaction: %s
Date: %s

Thank you for supporting blood donors in your community.`,
		donorGreeting(payment),
		payment.Amount.StringFixed(2), currencyCode(payment.Currency),
		payment.TransactionID,
		payment.PaidAt.Format("2 January 2006 15:04 MST"))
}

func receiptHTML(payment *model.Payment) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta http-equiv="Content-Type" content="text/html; charset=UTF-8" /><title>Donation receipt</title></head>
<body style="margin: 0; padding: 24px; font-family: Arial, sans-serif; background-color: #f7f9fc;">
	<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="background-color: #ffffff; border-radius: 8px;">
		<tr><td style="padding: 30px; color: #333333; font-size: 16px; line-height: 1.6;">
			<p style="margin-top: 0;">Hello <strong>%s</strong>,</p>
			<p>We received your donation of <strong>%s %s</strong>.</p>
			<p style="color: #666666; font-size: 13px;">Transaction: %s<br />Date: %s</p>
			<p style="margin-bottom: 0;">Thank you for supporting blood donors in your community.</p>
		</td></tr>
	</table>
</body>
</html>`,
		html.EscapeString(donorGreeting(payment)),
		payment.Amount.StringFixed(2), html.EscapeString(currencyCode(payment.Currency)),
		html.EscapeString(payment.TransactionID),
		payment.PaidAt.Format("2 January 2006 15:04 MST"))
}

func currencyCode(currency string) string {
	if currency == "" {
		return "USD"
	}
	return strings.ToUpper(currency)
}
