package participants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simple-survey/backend/internal/models"
)

// ErrNotFound is returned when no participant exists for a token.
var ErrNotFound = errors.New("participant not found")

// Repository handles participant persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a participants repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all participants ordered by creation time ascending.
func (r *Repository) List(ctx context.Context) ([]models.Participant, error) {
	rows, err := r.pool.Query(ctx, `SELECT token, label, created_at FROM participants ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.Token, &p.Label, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create inserts a participant with a fresh server-generated token.
func (r *Repository) Create(ctx context.Context, label string) (*models.Participant, error) {
	p := models.Participant{Token: uuid.NewString(), Label: label}
	const q = `INSERT INTO participants (token, label) VALUES ($1, $2) RETURNING created_at`
	if err := r.pool.QueryRow(ctx, q, p.Token, p.Label).Scan(&p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the participant for a token, or ErrNotFound.
func (r *Repository) Get(ctx context.Context, token string) (*models.Participant, error) {
	const q = `SELECT token, label, created_at FROM participants WHERE token = $1`
	var p models.Participant
	err := r.pool.QueryRow(ctx, q, token).Scan(&p.Token, &p.Label, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateLabel replaces a participant's label, or returns ErrNotFound.
func (r *Repository) UpdateLabel(ctx context.Context, token, label string) (*models.Participant, error) {
	const q = `UPDATE participants SET label = $2 WHERE token = $1 RETURNING token, label, created_at`
	var p models.Participant
	err := r.pool.QueryRow(ctx, q, token, label).Scan(&p.Token, &p.Label, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a participant; the responses row, if any, goes with it
// via ON DELETE CASCADE in the same statement. Returns ErrNotFound for an
// unknown token.
func (r *Repository) Delete(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM participants WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAll returns the number of participants.
func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM participants`).Scan(&n)
	return n, err
}

// CreateWithToken inserts a participant with a caller-supplied token,
// skipping tokens that already exist. Reports whether a row was inserted.
// Used by seeding only; the admin API always generates tokens.
func (r *Repository) CreateWithToken(ctx context.Context, token, label string) (bool, error) {
	const q = `INSERT INTO participants (token, label) VALUES ($1, $2) ON CONFLICT (token) DO NOTHING`
	tag, err := r.pool.Exec(ctx, q, token, label)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
