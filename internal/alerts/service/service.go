// Package service implements inventory alert subscriptions and the
// matching pass that notifies subscribers when a listing arrives.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"autocenter_backend/internal/alerts/repository"
	"autocenter_backend/internal/email"
	"autocenter_backend/platform/apperr"
	"autocenter_backend/platform/logger"

	"github.com/google/uuid"
)

const minAlertYear = 1950

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Store is the persistence port for alert subscriptions.
type Store interface {
	Create(ctx context.Context, params repository.CreateAlertParams) (repository.Alert, error)
	ListActive(ctx context.Context) ([]repository.Alert, error)
	ListByEmail(ctx context.Context, email string) ([]repository.Alert, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// Dispatcher delivers one alert notification. Failures are per-recipient
// and never abort the matching pass.
type Dispatcher interface {
	SendInventoryAlertEmail(ctx context.Context, toEmail string, data email.InventoryAlertData) error
}

// SecretConfig supplies the shared webhook secret.
type SecretConfig interface {
	GetWebhookSecret() string
}

// BaseURLConfig supplies the public site base URL for links in emails.
type BaseURLConfig interface {
	GetAppBaseURL() string
}

// Criteria is the set of optional alert bounds. Nil means "any".
type Criteria struct {
	VehicleMake  string
	VehicleModel string
	MaxPrice     *int
	MinYear      *int
	MaxMileage   *int
	BodyType     string
	FuelType     string
}

type Service struct {
	store      Store
	dispatcher Dispatcher
	secret     string
	baseURL    string
	log        *logger.Logger
}

func New(store Store, dispatcher Dispatcher, secretCfg SecretConfig, urlCfg BaseURLConfig, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		secret:     secretCfg.GetWebhookSecret(),
		baseURL:    strings.TrimRight(urlCfg.GetAppBaseURL(), "/"),
		log:        log,
	}
}

// CreateAlert validates and stores a new subscription. Duplicate
// subscriptions for the same email and criteria are allowed; each is an
// independent row.
func (s *Service) CreateAlert(ctx context.Context, emailAddr, name string, criteria Criteria) (repository.Alert, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if !emailRegex.MatchString(emailAddr) {
		return repository.Alert{}, apperr.Validation("Virheellinen sähköpostiosoite").WithField("email")
	}

	if criteria.MaxPrice != nil && *criteria.MaxPrice <= 0 {
		return repository.Alert{}, apperr.Validation("maxPrice must be positive").WithField("maxPrice")
	}
	if criteria.MinYear != nil {
		maxYear := time.Now().Year() + 1
		if *criteria.MinYear < minAlertYear || *criteria.MinYear > maxYear {
			return repository.Alert{}, apperr.Validation(
				fmt.Sprintf("minYear must be between %d and %d", minAlertYear, maxYear)).WithField("minYear")
		}
	}
	if criteria.MaxMileage != nil && *criteria.MaxMileage <= 0 {
		return repository.Alert{}, apperr.Validation("maxMileage must be positive").WithField("maxMileage")
	}

	alert, err := s.store.Create(ctx, repository.CreateAlertParams{
		Email:        emailAddr,
		Name:         optional(strings.TrimSpace(name)),
		VehicleMake:  optional(strings.TrimSpace(criteria.VehicleMake)),
		VehicleModel: optional(strings.TrimSpace(criteria.VehicleModel)),
		MaxPrice:     criteria.MaxPrice,
		MinYear:      criteria.MinYear,
		MaxMileage:   criteria.MaxMileage,
		BodyType:     optional(strings.TrimSpace(criteria.BodyType)),
		FuelType:     optional(strings.TrimSpace(criteria.FuelType)),
	})
	if err != nil {
		s.log.DatabaseError("create alert", err)
		return repository.Alert{}, apperr.Internal("Ilmoitushälytyksen luominen epäonnistui")
	}
	return alert, nil
}

// GetAlertsByEmail returns the caller's active subscriptions, newest
// first. An empty result is not an error.
func (s *Service) GetAlertsByEmail(ctx context.Context, emailAddr string) ([]repository.Alert, error) {
	return s.store.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
}

// VerifySecret guards externally triggered matching. It must be called
// before any store access. When no secret is configured the check is a
// no-op; otherwise the provided value must match byte for byte.
func (s *Service) VerifySecret(provided string) error {
	if s.secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(s.secret)) != 1 {
		return apperr.Unauthorized("Unauthorized")
	}
	return nil
}

// NotifyMatchingAlerts scans all active subscriptions, dispatches a
// notification for each one the listing satisfies and returns the number
// of attempted dispatches. A failed dispatch is logged and skipped; it
// still counts as an attempt, so the return value reports attempts, not
// confirmed deliveries.
func (s *Service) NotifyMatchingAlerts(ctx context.Context, listing Listing) (int, error) {
	alerts, err := s.store.ListActive(ctx)
	if err != nil {
		s.log.DatabaseError("list active alerts", err)
		return 0, apperr.Internal("load alerts")
	}

	attempted := 0
	for _, alert := range alerts {
		if !MatchesCriteria(listing, alert) {
			continue
		}
		attempted++

		data := email.InventoryAlertData{
			RecipientName:  optionalString(alert.Name),
			Make:           listing.Make,
			Model:          listing.Model,
			Year:           listing.Year,
			PriceEur:       listing.PriceEur,
			Mileage:        listing.Mileage,
			FuelType:       listing.FuelType,
			Transmission:   listing.Transmission,
			ListingURL:     s.listingURL(listing.ID),
			UnsubscribeURL: s.unsubscribeURL(alert.ID),
		}

		if err := s.dispatcher.SendInventoryAlertEmail(ctx, alert.Email, data); err != nil {
			s.log.DispatchFailed(alert.Email, "inventory alert", err)
			continue
		}

		if err := s.store.MarkNotified(ctx, alert.ID); err != nil {
			s.log.DatabaseError("mark alert notified", err)
		}
	}

	return attempted, nil
}

// Unsubscribe deactivates the alert referenced by an unsubscribe token.
func (s *Service) Unsubscribe(ctx context.Context, token string) error {
	alertID, err := VerifyUnsubscribeToken(token)
	if err != nil {
		return apperr.BadRequest("Invalid or expired unsubscribe token")
	}

	err = s.store.Deactivate(ctx, alertID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("alert not found")
	}
	if err != nil {
		s.log.DatabaseError("deactivate alert", err)
		return apperr.Internal("Tilauksen peruuttaminen epäonnistui")
	}
	return nil
}

func (s *Service) listingURL(id string) string {
	return s.baseURL + "/cars/" + id
}

func (s *Service) unsubscribeURL(alertID uuid.UUID) string {
	return s.baseURL + "/api/v1/alerts/unsubscribe?token=" + UnsubscribeToken(alertID)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
