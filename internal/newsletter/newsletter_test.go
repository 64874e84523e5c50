package newsletter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autocenter_backend/platform/apperr"
)

// Validation runs before any store access, so a bare Service is enough to
// exercise the rejection paths.
func TestSubscribeValidation(t *testing.T) {
	svc := &Service{}

	cases := []struct {
		name        string
		email       string
		subscriber  string
		wantMessage string
	}{
		{
			name:        "malformed email",
			email:       "not-an-address",
			wantMessage: "Virheellinen sähköpostiosoite",
		},
		{
			name:        "name too short",
			email:       "tilaaja@example.fi",
			subscriber:  "A",
			wantMessage: "Nimi on liian lyhyt (vähintään 2 merkkiä)",
		},
		{
			name:        "name too long",
			email:       "tilaaja@example.fi",
			subscriber:  strings.Repeat("ä", 101),
			wantMessage: "Nimi on liian pitkä (enintään 100 merkkiä)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Subscribe(context.Background(), tc.email, tc.subscriber)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var appErr *apperr.Error
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *apperr.Error, got %T", err)
			}
			if appErr.Kind != apperr.KindValidation {
				t.Fatalf("expected validation kind, got %v", appErr.Kind)
			}
			if appErr.Message != tc.wantMessage {
				t.Fatalf("expected %q, got %q", tc.wantMessage, appErr.Message)
			}
		})
	}
}

func TestValidateNameCountsRunes(t *testing.T) {
	// 100 two-byte runes stay within the limit even though the byte
	// length is double.
	if err := validateName(strings.Repeat("ä", 100)); err != nil {
		t.Fatalf("100-rune name must pass validation, got %q", err.Message)
	}
	if err := validateName(strings.Repeat("ä", 101)); err == nil {
		t.Fatal("101-rune name must fail validation")
	}
}
