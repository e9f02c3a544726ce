package responses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simple-survey/backend/internal/models"
)

// Repository handles survey response persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a responses repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert stores a submission for a token. A resubmission replaces the
// stored document and refreshes submitted_at; the ON CONFLICT clause also
// absorbs the race where two first-time submissions pass the existence
// check together, so neither surfaces a uniqueness violation.
func (r *Repository) Upsert(ctx context.Context, token string, data []byte) error {
	const q = `INSERT INTO responses (token, response_data) VALUES ($1, $2)
		ON CONFLICT (token) DO UPDATE SET response_data = EXCLUDED.response_data, submitted_at = NOW()`
	_, err := r.pool.Exec(ctx, q, token, string(data))
	return err
}

// GetByToken returns the stored response for a token, or nil when the
// participant has not submitted yet.
func (r *Repository) GetByToken(ctx context.Context, token string) (*models.Response, error) {
	const q = `SELECT token, response_data, submitted_at FROM responses WHERE token = $1`
	var resp models.Response
	err := r.pool.QueryRow(ctx, q, token).Scan(&resp.Token, &resp.ResponseData, &resp.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAll returns every response joined with its participant, ordered by
// submission time ascending. The join is a left outer join so a response
// without a participant row still surfaces, with a nil label.
func (r *Repository) ListAll(ctx context.Context) ([]models.ResponseExport, error) {
	const q = `SELECT r.token, p.label, r.submitted_at, r.response_data
		FROM responses r
		LEFT JOIN participants p ON p.token = r.token
		ORDER BY r.submitted_at ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.ResponseExport{}
	for rows.Next() {
		var e models.ResponseExport
		var data string
		if err := rows.Scan(&e.Token, &e.Label, &e.SubmittedAt, &data); err != nil {
			return nil, err
		}
		e.Answers = []byte(data)
		list = append(list, e)
	}
	return list, rows.Err()
}
