package service

import (
	"strings"
	"testing"

	"autocenter_backend/internal/leads/transport"
	"autocenter_backend/platform/validator"
)

func validationService() *Service {
	return &Service{validate: validator.New()}
}

func validRequest() transport.ContactRequest {
	return transport.ContactRequest{
		Name:    "Matti Meikäläinen",
		Email:   "matti@example.fi",
		Phone:   "+358 40 123 4567",
		Message: "Olen kiinnostunut autosta ja haluaisin varata koeajon.",
	}
}

func TestValidateContactAcceptsValidRequest(t *testing.T) {
	if err := validationService().validateContact(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateContactPhoneIsOptional(t *testing.T) {
	req := validRequest()
	req.Phone = ""
	if err := validationService().validateContact(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateContactFieldErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*transport.ContactRequest)
		message string
	}{
		{
			"name too short",
			func(r *transport.ContactRequest) { r.Name = "M" },
			"Nimi on liian lyhyt (vähintään 2 merkkiä)",
		},
		{
			"name too long",
			func(r *transport.ContactRequest) { r.Name = strings.Repeat("a", 101) },
			"Nimi on liian pitkä (enintään 100 merkkiä)",
		},
		{
			"name with digits",
			func(r *transport.ContactRequest) { r.Name = "Matti123" },
			"Nimi sisältää virheellisiä merkkejä",
		},
		{
			"email too short",
			func(r *transport.ContactRequest) { r.Email = "a@b" },
			"Sähköpostiosoite on liian lyhyt",
		},
		{
			"email too long",
			func(r *transport.ContactRequest) { r.Email = strings.Repeat("a", 250) + "@ex.fi" },
			"Sähköpostiosoite on liian pitkä",
		},
		{
			"email malformed",
			func(r *transport.ContactRequest) { r.Email = "matti.example.fi" },
			"Virheellinen sähköpostiosoite",
		},
		{
			"phone invalid",
			func(r *transport.ContactRequest) { r.Phone = "12345" },
			"Virheellinen puhelinnumero",
		},
		{
			"message too short",
			func(r *transport.ContactRequest) { r.Message = "Moi!" },
			"Viesti on liian lyhyt (vähintään 10 merkkiä)",
		},
		{
			"message too long",
			func(r *transport.ContactRequest) { r.Message = strings.Repeat("a", 5001) },
			"Viesti on liian pitkä (enintään 5000 merkkiä)",
		},
	}

	svc := validationService()
	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		err := svc.validateContact(req)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if err.Message != tc.message {
			t.Fatalf("%s: expected message %q, got %q", tc.name, tc.message, err.Message)
		}
	}
}

func TestValidateContactCountsCharactersNotBytes(t *testing.T) {
	svc := validationService()

	req := validRequest()
	// 100 two-byte characters stay within the 100-character name limit.
	req.Name = strings.Repeat("ä", 100)
	if err := svc.validateContact(req); err != nil {
		t.Fatalf("unexpected error for 100-character name: %v", err)
	}

	req = validRequest()
	req.Message = strings.Repeat("ä", 10)
	if err := svc.validateContact(req); err != nil {
		t.Fatalf("unexpected error for 10-character message: %v", err)
	}
}

func TestValidateContactTrimsBeforeChecking(t *testing.T) {
	req := validRequest()
	req.Name = "  M  "
	err := validationService().validateContact(req)
	if err == nil || err.Message != "Nimi on liian lyhyt (vähintään 2 merkkiä)" {
		t.Fatalf("expected trimmed name to fail length check, got %v", err)
	}
}
