// Package email provides outbound email delivery for notifications and
// form acknowledgements.
package email

import (
	"context"

	"autocenter_backend/platform/config"
)

// InventoryAlertData carries everything the inventory alert template needs.
type InventoryAlertData struct {
	RecipientName  string
	Make           string
	Model          string
	Year           int
	PriceEur       int
	Mileage        int
	FuelType       string
	Transmission   string
	ListingURL     string
	UnsubscribeURL string
}

// Sender delivers transactional email. Implementations return an error for
// delivery failures; batch callers decide whether to continue.
type Sender interface {
	SendInventoryAlertEmail(ctx context.Context, toEmail string, data InventoryAlertData) error
	SendContactAckEmail(ctx context.Context, toEmail, name string) error
	SendNewsletterWelcomeEmail(ctx context.Context, toEmail string) error
}

// NewSender returns the configured Sender: SMTP when email is enabled,
// otherwise a no-op sender that only logs.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return &NoopSender{}, nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}

// NoopSender is used when email delivery is disabled (e.g., local development).
type NoopSender struct{}

func (s *NoopSender) SendInventoryAlertEmail(_ context.Context, _ string, _ InventoryAlertData) error {
	return nil
}

func (s *NoopSender) SendContactAckEmail(_ context.Context, _, _ string) error {
	return nil
}

func (s *NoopSender) SendNewsletterWelcomeEmail(_ context.Context, _ string) error {
	return nil
}
