package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"autocenter_backend/internal/alerts/repository"
	"autocenter_backend/internal/email"
	"autocenter_backend/platform/apperr"
	"autocenter_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	alerts      []repository.Alert
	listErr     error
	created     []repository.CreateAlertParams
	notified    []uuid.UUID
	deactivated []uuid.UUID
	missing     map[uuid.UUID]bool
}

func (f *fakeStore) Create(_ context.Context, params repository.CreateAlertParams) (repository.Alert, error) {
	f.created = append(f.created, params)
	return repository.Alert{
		ID:        uuid.New(),
		Email:     params.Email,
		Name:      params.Name,
		IsActive:  true,
		CreatedAt: time.Now(),
	}, nil
}

func (f *fakeStore) ListActive(_ context.Context) ([]repository.Alert, error) {
	return f.alerts, f.listErr
}

func (f *fakeStore) ListByEmail(_ context.Context, email string) ([]repository.Alert, error) {
	var out []repository.Alert
	for _, alert := range f.alerts {
		if alert.Email == email {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkNotified(_ context.Context, id uuid.UUID) error {
	f.notified = append(f.notified, id)
	return nil
}

func (f *fakeStore) Deactivate(_ context.Context, id uuid.UUID) error {
	if f.missing[id] {
		return repository.ErrNotFound
	}
	f.deactivated = append(f.deactivated, id)
	return nil
}

type fakeDispatcher struct {
	sent    []string
	data    []email.InventoryAlertData
	failFor map[string]bool
}

func (f *fakeDispatcher) SendInventoryAlertEmail(_ context.Context, toEmail string, data email.InventoryAlertData) error {
	f.sent = append(f.sent, toEmail)
	f.data = append(f.data, data)
	if f.failFor[toEmail] {
		return errors.New("smtp unavailable")
	}
	return nil
}

type testConfig struct {
	secret  string
	baseURL string
}

func (c testConfig) GetWebhookSecret() string { return c.secret }
func (c testConfig) GetAppBaseURL() string    { return c.baseURL }

func newTestService(store *fakeStore, dispatcher *fakeDispatcher, secret string) *Service {
	cfg := testConfig{secret: secret, baseURL: "https://example.fi"}
	return New(store, dispatcher, cfg, cfg, logger.New("test"))
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func kindOf(err error) apperr.Kind {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return apperr.KindUnknown
}

func TestMatchesCriteria(t *testing.T) {
	listing := Listing{
		ID:       uuid.NewString(),
		Make:     "BMW",
		Model:    "3-series",
		Year:     2018,
		PriceEur: 25000,
		Mileage:  80000,
		FuelType: "PETROL",
		BodyType: "SEDAN",
	}

	cases := []struct {
		name  string
		alert repository.Alert
		want  bool
	}{
		{"empty criteria match anything", repository.Alert{}, true},
		{"make matches case-insensitively", repository.Alert{VehicleMake: strPtr("bmw")}, true},
		{"make mismatch", repository.Alert{VehicleMake: strPtr("Audi")}, false},
		{"model matches case-insensitively", repository.Alert{VehicleModel: strPtr("3-SERIES")}, true},
		{"price at limit matches", repository.Alert{MaxPrice: intPtr(25000)}, true},
		{"price above limit fails", repository.Alert{MaxPrice: intPtr(24999)}, false},
		{"year at limit matches", repository.Alert{MinYear: intPtr(2018)}, true},
		{"year below limit fails", repository.Alert{MinYear: intPtr(2019)}, false},
		{"mileage at limit matches", repository.Alert{MaxMileage: intPtr(80000)}, true},
		{"mileage above limit fails", repository.Alert{MaxMileage: intPtr(79999)}, false},
		{"fuel matches case-insensitively", repository.Alert{FuelType: strPtr("petrol")}, true},
		{"all criteria together", repository.Alert{
			VehicleMake: strPtr("BMW"),
			MaxPrice:    intPtr(30000),
			MinYear:     intPtr(2015),
		}, true},
	}

	for _, tc := range cases {
		if got := MatchesCriteria(listing, tc.alert); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchesCriteriaFailsClosedOnMissingListingFields(t *testing.T) {
	// A listing without fuel or body type must not satisfy alerts that
	// filter on them.
	listing := Listing{Make: "BMW", Model: "X5", Year: 2020, PriceEur: 45000, Mileage: 30000}

	if MatchesCriteria(listing, repository.Alert{FuelType: strPtr("DIESEL")}) {
		t.Fatal("expected fuel criterion to fail for listing without fuel type")
	}
	if MatchesCriteria(listing, repository.Alert{BodyType: strPtr("SUV")}) {
		t.Fatal("expected body criterion to fail for listing without body type")
	}
	if !MatchesCriteria(listing, repository.Alert{VehicleMake: strPtr("BMW")}) {
		t.Fatal("expected criteria on present fields to still match")
	}
}

func TestCreateAlertValidation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeDispatcher{}, "")
	ctx := context.Background()

	if _, err := svc.CreateAlert(ctx, "not-an-email", "", Criteria{}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}
	if _, err := svc.CreateAlert(ctx, "a@b.com", "", Criteria{MaxPrice: intPtr(0)}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for non-positive maxPrice, got %v", err)
	}
	if _, err := svc.CreateAlert(ctx, "a@b.com", "", Criteria{MaxMileage: intPtr(-1)}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for negative maxMileage, got %v", err)
	}

	maxYear := time.Now().Year() + 1
	if _, err := svc.CreateAlert(ctx, "a@b.com", "", Criteria{MinYear: intPtr(1949)}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for minYear 1949, got %v", err)
	}
	if _, err := svc.CreateAlert(ctx, "a@b.com", "", Criteria{MinYear: intPtr(maxYear + 1)}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for minYear %d, got %v", maxYear+1, err)
	}
	if _, err := svc.CreateAlert(ctx, "a@b.com", "", Criteria{MinYear: intPtr(1950)}); err != nil {
		t.Fatalf("expected minYear 1950 to be accepted, got %v", err)
	}
	if _, err := svc.CreateAlert(ctx, "a@b.com", "", Criteria{MinYear: intPtr(maxYear)}); err != nil {
		t.Fatalf("expected minYear %d to be accepted, got %v", maxYear, err)
	}

	if len(store.created) != 2 {
		t.Fatalf("expected exactly the valid requests to reach the store, got %d", len(store.created))
	}
}

func TestCreateAlertNormalizesEmail(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeDispatcher{}, "")

	alert, err := svc.CreateAlert(context.Background(), "  Matti@Example.FI ", "Matti", Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alert.Email != "matti@example.fi" {
		t.Fatalf("expected lowercased trimmed email, got %q", alert.Email)
	}
}

func TestCreateAlertAllowsDuplicates(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeDispatcher{}, "")
	ctx := context.Background()

	criteria := Criteria{VehicleMake: "BMW", MaxPrice: intPtr(30000)}
	if _, err := svc.CreateAlert(ctx, "a@b.com", "", criteria); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateAlert(ctx, "a@b.com", "", criteria); err != nil {
		t.Fatalf("duplicate create failed: %v", err)
	}
	if len(store.created) != 2 {
		t.Fatalf("expected two independent rows, got %d", len(store.created))
	}
}

func TestVerifySecret(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeDispatcher{}, "topsecret")

	if err := svc.VerifySecret("topsecret"); err != nil {
		t.Fatalf("expected matching secret to pass, got %v", err)
	}
	if err := svc.VerifySecret("wrong"); kindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for wrong secret, got %v", err)
	}
	if err := svc.VerifySecret(""); kindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for absent secret, got %v", err)
	}

	open := newTestService(&fakeStore{}, &fakeDispatcher{}, "")
	if err := open.VerifySecret("anything"); err != nil {
		t.Fatalf("expected no-op check when secret unconfigured, got %v", err)
	}
}

func TestNotifyMatchingAlertsDispatchesToMatchesOnly(t *testing.T) {
	matching := func(email string) repository.Alert {
		return repository.Alert{ID: uuid.New(), Email: email, VehicleMake: strPtr("BMW"), IsActive: true}
	}
	store := &fakeStore{alerts: []repository.Alert{
		matching("a@example.fi"),
		matching("b@example.fi"),
		{ID: uuid.New(), Email: "c@example.fi", VehicleMake: strPtr("Audi"), IsActive: true},
		{ID: uuid.New(), Email: "d@example.fi", MaxPrice: intPtr(20000), IsActive: true},
		matching("e@example.fi"),
	}}
	dispatcher := &fakeDispatcher{}
	svc := newTestService(store, dispatcher, "")

	listing := Listing{
		ID:       uuid.NewString(),
		Make:     "BMW",
		Model:    "3-series",
		Year:     2018,
		PriceEur: 25000,
		Mileage:  80000,
		FuelType: "PETROL",
	}

	attempted, err := svc.NotifyMatchingAlerts(context.Background(), listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempted != 3 {
		t.Fatalf("expected 3 attempted dispatches, got %d", attempted)
	}
	if len(dispatcher.sent) != 3 {
		t.Fatalf("expected 3 emails sent, got %d: %v", len(dispatcher.sent), dispatcher.sent)
	}
	if len(store.notified) != 3 {
		t.Fatalf("expected 3 alerts marked notified, got %d", len(store.notified))
	}

	data := dispatcher.data[0]
	if data.Make != "BMW" || data.PriceEur != 25000 {
		t.Fatalf("unexpected notification payload: %+v", data)
	}
	if !strings.HasPrefix(data.ListingURL, "https://example.fi/cars/") {
		t.Fatalf("unexpected listing URL %q", data.ListingURL)
	}
	if !strings.Contains(data.UnsubscribeURL, "/api/v1/alerts/unsubscribe?token=") {
		t.Fatalf("unexpected unsubscribe URL %q", data.UnsubscribeURL)
	}
}

func TestNotifyMatchingAlertsCountsFailedDispatches(t *testing.T) {
	first := repository.Alert{ID: uuid.New(), Email: "fail@example.fi", IsActive: true}
	second := repository.Alert{ID: uuid.New(), Email: "ok@example.fi", IsActive: true}
	store := &fakeStore{alerts: []repository.Alert{first, second}}
	dispatcher := &fakeDispatcher{failFor: map[string]bool{"fail@example.fi": true}}
	svc := newTestService(store, dispatcher, "")

	attempted, err := svc.NotifyMatchingAlerts(context.Background(), Listing{ID: uuid.NewString(), Make: "BMW"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempted != 2 {
		t.Fatalf("failed dispatch must still count as an attempt, got %d", attempted)
	}
	if len(store.notified) != 1 || store.notified[0] != second.ID {
		t.Fatalf("only the successful dispatch should be marked notified, got %v", store.notified)
	}
}

func TestNotifyMatchingAlertsStoreFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	svc := newTestService(store, &fakeDispatcher{}, "")

	if _, err := svc.NotifyMatchingAlerts(context.Background(), Listing{Make: "BMW"}); kindOf(err) != apperr.KindInternal {
		t.Fatalf("expected internal error when store is unavailable, got %v", err)
	}
}

func TestUnsubscribeTokenRoundTrip(t *testing.T) {
	alertID := uuid.New()
	token := UnsubscribeToken(alertID)

	parsed, err := VerifyUnsubscribeToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != alertID {
		t.Fatalf("expected %s, got %s", alertID, parsed)
	}
}

func TestVerifyUnsubscribeTokenRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not base64!!!",
		"bm90LWEtdXVpZA",            // "not-a-uuid"
		"bm8tY29sb24taGVyZQ",        // "no-colon-here"
		"bm90LWEtdXVpZDoxMjM0NTY3OA", // "not-a-uuid:12345678"
	}
	for _, token := range cases {
		if _, err := VerifyUnsubscribeToken(token); err == nil {
			t.Fatalf("expected error for token %q", token)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	alertID := uuid.New()
	store := &fakeStore{}
	svc := newTestService(store, &fakeDispatcher{}, "")
	ctx := context.Background()

	if err := svc.Unsubscribe(ctx, UnsubscribeToken(alertID)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deactivated) != 1 || store.deactivated[0] != alertID {
		t.Fatalf("expected alert %s deactivated, got %v", alertID, store.deactivated)
	}

	if err := svc.Unsubscribe(ctx, "garbage"); kindOf(err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request for invalid token, got %v", err)
	}

	missing := uuid.New()
	store.missing = map[uuid.UUID]bool{missing: true}
	if err := svc.Unsubscribe(ctx, UnsubscribeToken(missing)); kindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown alert, got %v", err)
	}
}

func TestEndToEndMatchExample(t *testing.T) {
	alert := repository.Alert{
		ID:          uuid.New(),
		Email:       "a@b.com",
		VehicleMake: strPtr("BMW"),
		MaxPrice:    intPtr(30000),
		IsActive:    true,
	}
	store := &fakeStore{alerts: []repository.Alert{alert}}
	dispatcher := &fakeDispatcher{}
	svc := newTestService(store, dispatcher, "")

	listing := Listing{
		ID:       uuid.NewString(),
		Make:     "BMW",
		Model:    "3-series",
		Year:     2018,
		PriceEur: 25000,
		Mileage:  80000,
		FuelType: "PETROL",
	}

	attempted, err := svc.NotifyMatchingAlerts(context.Background(), listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempted != 1 {
		t.Fatalf("expected exactly one notification, got %d", attempted)
	}
	if fmt.Sprintf("%v", dispatcher.sent) != "[a@b.com]" {
		t.Fatalf("expected notification to a@b.com, got %v", dispatcher.sent)
	}
}
