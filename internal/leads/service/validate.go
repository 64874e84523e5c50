package service

import (
	"regexp"
	"strings"

	"autocenter_backend/internal/leads/transport"
	"autocenter_backend/platform/apperr"
)

// Validation limits for the contact form.
const (
	nameMinLen    = 2
	nameMaxLen    = 100
	emailMinLen   = 5
	emailMaxLen   = 255
	messageMinLen = 10
	messageMaxLen = 5000
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateContact checks the contact form field by field and returns the
// first failure as a Finnish, user-facing validation error. Fields are
// trimmed before length checks, matching what gets stored. The name
// charset and Finnish phone format come from the shared person_name and
// fi_phone validator rules.
func (s *Service) validateContact(req transport.ContactRequest) *apperr.Error {
	name := strings.TrimSpace(req.Name)
	switch {
	case len([]rune(name)) < nameMinLen:
		return apperr.Validation("Nimi on liian lyhyt (vähintään 2 merkkiä)").WithField("name")
	case len([]rune(name)) > nameMaxLen:
		return apperr.Validation("Nimi on liian pitkä (enintään 100 merkkiä)").WithField("name")
	case s.validate.Var(name, "person_name") != nil:
		return apperr.Validation("Nimi sisältää virheellisiä merkkejä").WithField("name")
	}

	email := strings.TrimSpace(req.Email)
	switch {
	case len(email) < emailMinLen:
		return apperr.Validation("Sähköpostiosoite on liian lyhyt").WithField("email")
	case len(email) > emailMaxLen:
		return apperr.Validation("Sähköpostiosoite on liian pitkä").WithField("email")
	case !emailRegex.MatchString(email):
		return apperr.Validation("Virheellinen sähköpostiosoite").WithField("email")
	}

	if err := s.validate.Var(req.Phone, "fi_phone"); err != nil {
		return apperr.Validation("Virheellinen puhelinnumero").WithField("phone")
	}

	message := strings.TrimSpace(req.Message)
	switch {
	case len([]rune(message)) < messageMinLen:
		return apperr.Validation("Viesti on liian lyhyt (vähintään 10 merkkiä)").WithField("message")
	case len([]rune(message)) > messageMaxLen:
		return apperr.Validation("Viesti on liian pitkä (enintään 5000 merkkiä)").WithField("message")
	}

	return nil
}
