package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Alert is one stored subscription. Nil criteria fields mean "any".
// Duplicate subscriptions for the same email and criteria are allowed;
// each is an independent row.
type Alert struct {
	ID                uuid.UUID
	Email             string
	Name              *string
	VehicleMake       *string
	VehicleModel      *string
	MaxPrice          *int
	MinYear           *int
	MaxMileage        *int
	BodyType          *string
	FuelType          *string
	IsActive          bool
	NotificationCount int
	LastNotifiedAt    *time.Time
	CreatedAt         time.Time
}

type CreateAlertParams struct {
	Email        string
	Name         *string
	VehicleMake  *string
	VehicleModel *string
	MaxPrice     *int
	MinYear      *int
	MaxMileage   *int
	BodyType     *string
	FuelType     *string
}

const alertColumns = `id, email, name, vehicle_make, vehicle_model, max_price, min_year,
	max_mileage, body_type, fuel_type, is_active, notification_count, last_notified_at, created_at`

func scanAlert(row pgx.Row) (Alert, error) {
	var alert Alert
	err := row.Scan(
		&alert.ID,
		&alert.Email,
		&alert.Name,
		&alert.VehicleMake,
		&alert.VehicleModel,
		&alert.MaxPrice,
		&alert.MinYear,
		&alert.MaxMileage,
		&alert.BodyType,
		&alert.FuelType,
		&alert.IsActive,
		&alert.NotificationCount,
		&alert.LastNotifiedAt,
		&alert.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Alert{}, ErrNotFound
	}
	return alert, err
}

func (r *Repository) Create(ctx context.Context, params CreateAlertParams) (Alert, error) {
	return scanAlert(r.pool.QueryRow(ctx, `
		INSERT INTO inventory_alerts
			(email, name, vehicle_make, vehicle_model, max_price, min_year,
			 max_mileage, body_type, fuel_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+alertColumns,
		params.Email,
		params.Name,
		params.VehicleMake,
		params.VehicleModel,
		params.MaxPrice,
		params.MinYear,
		params.MaxMileage,
		params.BodyType,
		params.FuelType,
	))
}

// ListActive returns every active alert. The matching pass scans all of
// them; at dealership scale there is no need for pagination.
func (r *Repository) ListActive(ctx context.Context) ([]Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+alertColumns+` FROM inventory_alerts
		WHERE is_active = true
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func (r *Repository) ListByEmail(ctx context.Context, email string) ([]Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+alertColumns+` FROM inventory_alerts
		WHERE email = $1 AND is_active = true
		ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Alert, error) {
	return scanAlert(r.pool.QueryRow(ctx, `
		SELECT `+alertColumns+` FROM inventory_alerts WHERE id = $1`, id))
}

// MarkNotified records a successful dispatch against the alert.
func (r *Repository) MarkNotified(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventory_alerts
		SET last_notified_at = now(), notification_count = notification_count + 1
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventory_alerts SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectAlerts(rows pgx.Rows) ([]Alert, error) {
	var alerts []Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}
