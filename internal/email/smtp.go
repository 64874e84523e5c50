package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendInventoryAlertEmail notifies a subscriber about a newly listed vehicle
// matching their saved criteria.
func (s *SMTPSender) SendInventoryAlertEmail(ctx context.Context, toEmail string, data InventoryAlertData) error {
	content, err := renderEmailTemplate("inventory_alert.html", inventoryAlertEmailData{
		baseEmailData: baseEmailData{
			Title:    "Hakuvahti löysi auton",
			Heading:  fmt.Sprintf("%s %s (%d)", data.Make, data.Model, data.Year),
			CTALabel: "Katso auto",
			CTAURL:   data.ListingURL,
		},
		RecipientName:  data.RecipientName,
		PriceFormatted: formatCurrencyEUR(data.PriceEur),
		Mileage:        data.Mileage,
		FuelType:       data.FuelType,
		Transmission:   data.Transmission,
		UnsubscribeURL: data.UnsubscribeURL,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectInventoryAlertFmt, data.Make, data.Model), content)
}

// SendContactAckEmail thanks the sender of a contact-form submission.
func (s *SMTPSender) SendContactAckEmail(ctx context.Context, toEmail, name string) error {
	content, err := renderEmailTemplate("contact_ack.html", contactAckEmailData{
		baseEmailData: baseEmailData{
			Title:   "Kiitos yhteydenotostasi",
			Heading: "Kiitos yhteydenotostasi",
		},
		Name: name,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectContactAck, content)
}

// SendNewsletterWelcomeEmail confirms a newsletter subscription.
func (s *SMTPSender) SendNewsletterWelcomeEmail(ctx context.Context, toEmail string) error {
	content, err := renderEmailTemplate("newsletter_welcome.html", newsletterWelcomeEmailData{
		baseEmailData: baseEmailData{
			Title:   "Tervetuloa tilaajaksi",
			Heading: "Tervetuloa tilaajaksi",
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectNewsletterWelcome, content)
}
