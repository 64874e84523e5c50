// Package activity keeps an append-only audit trail of notable domain
// events, populated by event bus subscriptions.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"autocenter_backend/internal/events"
	"autocenter_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Entry struct {
	ID          uuid.UUID
	Type        string
	Description string
	Metadata    map[string]interface{}
	CreatedAt   time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Append(ctx context.Context, entryType, description string, metadata map[string]interface{}) error {
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO activity_log (type, description, metadata)
		VALUES ($1, $2, $3)`, entryType, description, metaJSON)
	return err
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, type, description, metadata, created_at FROM activity_log
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var metaRaw []byte
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Description, &metaRaw, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(metaRaw) > 0 {
			if err := json.Unmarshal(metaRaw, &entry.Metadata); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Recorder subscribes to domain events and appends one log row per event.
// A failed append is logged and dropped; the audit trail is best-effort
// and must never fail the originating operation.
type Recorder struct {
	repo *Repository
	log  *logger.Logger
}

func NewRecorder(repo *Repository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Subscribe registers the recorder for every audited event type.
func (rec *Recorder) Subscribe(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(rec.onLeadCreated))
	bus.Subscribe(events.VehicleListed{}.EventName(), events.HandlerFunc(rec.onVehicleListed))
	bus.Subscribe(events.VehicleUpdated{}.EventName(), events.HandlerFunc(rec.onVehicleUpdated))
	bus.Subscribe(events.VehicleDeleted{}.EventName(), events.HandlerFunc(rec.onVehicleDeleted))
	bus.Subscribe(events.UserCreated{}.EventName(), events.HandlerFunc(rec.onUserCreated))
	bus.Subscribe(events.NewsletterSubscribed{}.EventName(), events.HandlerFunc(rec.onNewsletterSubscribed))
}

func (rec *Recorder) onLeadCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadCreated)
	if !ok {
		return nil
	}
	return rec.append(ctx, "LEAD_CREATED",
		fmt.Sprintf("New lead created from contact form with score %d/100", e.Score),
		map[string]interface{}{
			"leadId":   e.LeadID.String(),
			"score":    e.Score,
			"quality":  e.Quality,
			"priority": e.Priority,
		})
}

func (rec *Recorder) onVehicleListed(ctx context.Context, event events.Event) error {
	e, ok := event.(events.VehicleListed)
	if !ok {
		return nil
	}
	return rec.append(ctx, "VEHICLE_LISTED",
		fmt.Sprintf("Vehicle listed: %s %s (%d)", e.Make, e.Model, e.Year),
		map[string]interface{}{
			"vehicleId": e.VehicleID.String(),
			"priceEur":  e.PriceEur,
		})
}

func (rec *Recorder) onVehicleUpdated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.VehicleUpdated)
	if !ok {
		return nil
	}
	return rec.append(ctx, "VEHICLE_UPDATED", "Vehicle listing updated",
		map[string]interface{}{
			"vehicleId": e.VehicleID.String(),
			"actorId":   e.ActorID.String(),
		})
}

func (rec *Recorder) onVehicleDeleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.VehicleDeleted)
	if !ok {
		return nil
	}
	return rec.append(ctx, "VEHICLE_DELETED", "Vehicle listing removed",
		map[string]interface{}{
			"vehicleId": e.VehicleID.String(),
			"actorId":   e.ActorID.String(),
		})
}

func (rec *Recorder) onUserCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.UserCreated)
	if !ok {
		return nil
	}
	return rec.append(ctx, "USER_CREATED",
		fmt.Sprintf("Account created with role %s", e.Role),
		map[string]interface{}{
			"userId":  e.UserID.String(),
			"actorId": e.ActorID.String(),
		})
}

func (rec *Recorder) onNewsletterSubscribed(ctx context.Context, event events.Event) error {
	e, ok := event.(events.NewsletterSubscribed)
	if !ok {
		return nil
	}
	return rec.append(ctx, "NEWSLETTER_SUBSCRIBED", "New newsletter subscriber",
		map[string]interface{}{"email": e.Email})
}

func (rec *Recorder) append(ctx context.Context, entryType, description string, metadata map[string]interface{}) error {
	if err := rec.repo.Append(ctx, entryType, description, metadata); err != nil {
		rec.log.DatabaseError("append activity", err)
	}
	return nil
}
