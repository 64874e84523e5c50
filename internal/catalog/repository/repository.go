package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

const (
	StatusAvailable = "AVAILABLE"
	StatusReserved  = "RESERVED"
	StatusSold      = "SOLD"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Vehicle struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	PriceEur     int       `json:"priceEur"`
	Mileage      int       `json:"mileage"`
	FuelType     *string   `json:"fuelType"`
	Transmission *string   `json:"transmission"`
	BodyType     *string   `json:"bodyType"`
	Color        *string   `json:"color"`
	Description  *string   `json:"description"`
	Status       string    `json:"status"`
	IsFeatured   bool      `json:"isFeatured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateVehicleParams struct {
	Slug         string
	Make         string
	Model        string
	Year         int
	PriceEur     int
	Mileage      int
	FuelType     *string
	Transmission *string
	BodyType     *string
	Color        *string
	Description  *string
}

type UpdateVehicleParams struct {
	PriceEur    *int
	Mileage     *int
	Status      *string
	Description *string
	IsFeatured  *bool
}

type ListFilter struct {
	Make     string
	FuelType string
	Status   string
	MinPrice int
	MaxPrice int
	MinYear  int
	MaxYear  int
	Search   string
	Page     int
	Limit    int
}

const vehicleColumns = `id, slug, make, model, year, price_eur, mileage, fuel_type,
	transmission, body_type, color, description, status, is_featured, created_at, updated_at`

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var v Vehicle
	err := row.Scan(
		&v.ID,
		&v.Slug,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.PriceEur,
		&v.Mileage,
		&v.FuelType,
		&v.Transmission,
		&v.BodyType,
		&v.Color,
		&v.Description,
		&v.Status,
		&v.IsFeatured,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, ErrNotFound
	}
	return v, err
}

func (r *Repository) Create(ctx context.Context, params CreateVehicleParams) (Vehicle, error) {
	return scanVehicle(r.pool.QueryRow(ctx, `
		INSERT INTO vehicles
			(slug, make, model, year, price_eur, mileage, fuel_type,
			 transmission, body_type, color, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+vehicleColumns,
		params.Slug,
		params.Make,
		params.Model,
		params.Year,
		params.PriceEur,
		params.Mileage,
		params.FuelType,
		params.Transmission,
		params.BodyType,
		params.Color,
		params.Description,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Vehicle, error) {
	return scanVehicle(r.pool.QueryRow(ctx, `
		SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (Vehicle, error) {
	return scanVehicle(r.pool.QueryRow(ctx, `
		SELECT `+vehicleColumns+` FROM vehicles WHERE slug = $1`, slug))
}

// List applies the optional filters and returns one page plus the total
// count across all pages.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Vehicle, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM vehicles `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`SELECT %s FROM vehicles %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		vehicleColumns, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, total, rows.Err()
}

// ListFeatured returns the available listings flagged for the front page,
// newest first.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]Vehicle, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+vehicleColumns+` FROM vehicles
		WHERE is_featured AND status = $1
		ORDER BY created_at DESC
		LIMIT $2`, StatusAvailable, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateVehicleParams) (Vehicle, error) {
	return scanVehicle(r.pool.QueryRow(ctx, `
		UPDATE vehicles SET
			price_eur   = coalesce($2, price_eur),
			mileage     = coalesce($3, mileage),
			status      = coalesce($4, status),
			description = coalesce($5, description),
			is_featured = coalesce($6, is_featured),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+vehicleColumns,
		id, params.PriceEur, params.Mileage, params.Status, params.Description, params.IsFeatured))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func buildWhere(filter ListFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Make != "" {
		add("lower(make) = lower($%d)", filter.Make)
	}
	if filter.FuelType != "" {
		add("lower(fuel_type) = lower($%d)", filter.FuelType)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.MinPrice > 0 {
		add("price_eur >= $%d", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		add("price_eur <= $%d", filter.MaxPrice)
	}
	if filter.MinYear > 0 {
		add("year >= $%d", filter.MinYear)
	}
	if filter.MaxYear > 0 {
		add("year <= $%d", filter.MaxYear)
	}
	if filter.Search != "" {
		add("(make || ' ' || model) ILIKE '%%' || $%d || '%%'", filter.Search)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
