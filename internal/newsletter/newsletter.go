// Package newsletter stores newsletter subscriptions and sends the
// welcome email.
package newsletter

import (
	"context"
	"regexp"
	"strings"
	"time"

	"autocenter_backend/internal/email"
	"autocenter_backend/internal/events"
	"autocenter_backend/platform/apperr"
	"autocenter_backend/platform/logger"
	"autocenter_backend/platform/sanitize"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Subscriber struct {
	ID           uuid.UUID
	Email        string
	Name         *string
	SubscribedAt time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert stores a subscription; resubscribing refreshes the name but is
// not an error.
func (r *Repository) Upsert(ctx context.Context, emailAddr string, name *string) (Subscriber, bool, error) {
	var sub Subscriber
	var inserted bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO newsletter_subscribers (email, name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET name = coalesce(excluded.name, newsletter_subscribers.name)
		RETURNING id, email, name, subscribed_at, (xmax = 0)`,
		emailAddr, name).Scan(&sub.ID, &sub.Email, &sub.Name, &sub.SubscribedAt, &inserted)
	return sub, inserted, err
}

func (r *Repository) List(ctx context.Context) ([]Subscriber, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, subscribed_at FROM newsletter_subscribers
		ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Name, &sub.SubscribedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

type Service struct {
	repo *Repository
	bus  events.Bus
	mail email.Sender
	log  *logger.Logger
}

func NewService(repo *Repository, bus events.Bus, mail email.Sender, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, mail: mail, log: log}
}

// Subscribe validates and stores a subscription. The welcome email is
// only sent for first-time subscribers.
func (s *Service) Subscribe(ctx context.Context, emailAddr, name string) (Subscriber, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if len(emailAddr) < 5 || len(emailAddr) > 255 || !emailRegex.MatchString(emailAddr) {
		return Subscriber{}, apperr.Validation("Virheellinen sähköpostiosoite").WithField("email")
	}

	name = sanitize.Text(name)
	if name != "" {
		if err := validateName(name); err != nil {
			return Subscriber{}, err
		}
	}

	var namePtr *string
	if name != "" {
		namePtr = &name
	}

	sub, inserted, err := s.repo.Upsert(ctx, emailAddr, namePtr)
	if err != nil {
		s.log.DatabaseError("upsert subscriber", err)
		return Subscriber{}, apperr.Internal("save subscription")
	}

	if inserted {
		s.bus.Publish(ctx, events.NewsletterSubscribed{
			BaseEvent: events.NewBaseEvent(),
			Email:     sub.Email,
			Name:      name,
		})
		if err := s.mail.SendNewsletterWelcomeEmail(ctx, sub.Email); err != nil {
			s.log.DispatchFailed(sub.Email, "newsletter welcome", err)
		}
	}

	return sub, nil
}

func (s *Service) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	return s.repo.List(ctx)
}

// validateName bounds the optional subscriber name. Length is counted in
// runes so diacritics don't shorten the allowance.
func validateName(name string) *apperr.Error {
	switch length := len([]rune(name)); {
	case length < 2:
		return apperr.Validation("Nimi on liian lyhyt (vähintään 2 merkkiä)").WithField("name")
	case length > 100:
		return apperr.Validation("Nimi on liian pitkä (enintään 100 merkkiä)").WithField("name")
	}
	return nil
}
