package repository

import (
	"context"
	"encoding/json"
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

type Lead struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       *string
	Message     string
	CarInterest *string
	Score       int
	Quality     string
	Priority    string
	Factors     map[string]int
	Status      string
	Source      string
	IP          string
	UserAgent   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateLeadParams struct {
	Name        string
	Email       string
	Phone       *string
	Message     string
	CarInterest *string
	Score       int
	Quality     string
	Priority    string
	Factors     map[string]int
	Source      string
	IP          string
	UserAgent   string
}

type ListFilter struct {
	Priority string
	Status   string
	Limit    int
	Offset   int
}

type Stats struct {
	Total        int
	AverageScore float64
	ByPriority   map[string]int
	ByStatus     map[string]int
}

const leadColumns = `id, name, email, phone, message, car_interest, lead_score, quality,
	priority, factors, status, source, ip, user_agent, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var factorsRaw []byte
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Message,
		&lead.CarInterest,
		&lead.Score,
		&lead.Quality,
		&lead.Priority,
		&factorsRaw,
		&lead.Status,
		&lead.Source,
		&lead.IP,
		&lead.UserAgent,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	if len(factorsRaw) > 0 {
		if err := json.Unmarshal(factorsRaw, &lead.Factors); err != nil {
			return Lead{}, err
		}
	}
	return lead, nil
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	factorsJSON, err := json.Marshal(params.Factors)
	if err != nil {
		return Lead{}, err
	}

	return scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO contact_submissions
			(name, email, phone, message, car_interest, lead_score, quality,
			 priority, factors, source, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+leadColumns,
		params.Name,
		params.Email,
		params.Phone,
		params.Message,
		params.CarInterest,
		params.Score,
		params.Quality,
		params.Priority,
		factorsJSON,
		params.Source,
		params.IP,
		params.UserAgent,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM contact_submissions WHERE id = $1`, id))
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Lead, int, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM contact_submissions
		WHERE ($1 = '' OR priority = $1)
		  AND ($2 = '' OR status = $2)`,
		filter.Priority, filter.Status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM contact_submissions
		WHERE ($1 = '' OR priority = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		filter.Priority, filter.Status, limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	return leads, total, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contact_submissions SET status = $2, updated_at = now()
		WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{
		ByPriority: make(map[string]int),
		ByStatus:   make(map[string]int),
	}

	err := r.pool.QueryRow(ctx, `
		SELECT count(*), coalesce(avg(lead_score), 0) FROM contact_submissions`).
		Scan(&stats.Total, &stats.AverageScore)
	if err != nil {
		return Stats{}, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT priority, count(*) FROM contact_submissions GROUP BY priority`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var priority string
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return Stats{}, err
		}
		stats.ByPriority[priority] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	statusRows, err := r.pool.Query(ctx, `
		SELECT status, count(*) FROM contact_submissions GROUP BY status`)
	if err != nil {
		return Stats{}, err
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var status string
		var count int
		if err := statusRows.Scan(&status, &count); err != nil {
			return Stats{}, err
		}
		stats.ByStatus[status] = count
	}
	return stats, statusRows.Err()
}
