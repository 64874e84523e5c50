package email

import (
	"strings"
	"testing"
)

func TestRenderInventoryAlertTemplate(t *testing.T) {
	html, err := renderEmailTemplate("inventory_alert.html", inventoryAlertEmailData{
		baseEmailData: baseEmailData{
			Title:    "Hakuvahti löysi auton",
			Heading:  "BMW 3-series (2018)",
			CTALabel: "Katso auto",
			CTAURL:   "https://example.fi/cars/abc",
		},
		RecipientName:  "Matti",
		PriceFormatted: formatCurrencyEUR(25000),
		Mileage:        80000,
		FuelType:       "PETROL",
		Transmission:   "AUTOMATIC",
		UnsubscribeURL: "https://example.fi/api/v1/alerts/unsubscribe?token=abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Hei Matti",
		"BMW 3-series (2018)",
		"25000 €",
		"80000 km",
		"https://example.fi/cars/abc",
		"unsubscribe?token=abc",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected rendered email to contain %q", want)
		}
	}
}

func TestRenderInventoryAlertTemplateWithoutName(t *testing.T) {
	html, err := renderEmailTemplate("inventory_alert.html", inventoryAlertEmailData{
		baseEmailData:  baseEmailData{Heading: "BMW X5 (2020)"},
		PriceFormatted: formatCurrencyEUR(45000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "Hei ") {
		t.Fatal("greeting should be omitted when recipient name is unknown")
	}
}

func TestRenderContactAckTemplate(t *testing.T) {
	html, err := renderEmailTemplate("contact_ack.html", contactAckEmailData{
		baseEmailData: baseEmailData{Title: "Kiitos yhteydenotostasi", Heading: "Kiitos yhteydenotostasi"},
		Name:          "Matti",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "Kiitos yhteydenotostasi") {
		t.Fatal("expected acknowledgment copy in rendered email")
	}
}

func TestRenderNewsletterWelcomeTemplate(t *testing.T) {
	html, err := renderEmailTemplate("newsletter_welcome.html", newsletterWelcomeEmailData{
		baseEmailData: baseEmailData{Title: "Tervetuloa tilaajaksi", Heading: "Tervetuloa tilaajaksi"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "Tervetuloa") {
		t.Fatal("expected welcome copy in rendered email")
	}
}

func TestRenderEscapesUserContent(t *testing.T) {
	html, err := renderEmailTemplate("contact_ack.html", contactAckEmailData{
		baseEmailData: baseEmailData{Heading: "Kiitos"},
		Name:          `<script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("expected user content to be HTML-escaped")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := renderEmailTemplate("missing.html", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestFormatCurrencyEUR(t *testing.T) {
	if got := formatCurrencyEUR(25000); got != "25000 €" {
		t.Fatalf("unexpected format: %q", got)
	}
}
