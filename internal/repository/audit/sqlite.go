package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "github.com/jsodoma4050/business-intelligence/internal/audit"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, records []domain.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(records))
	args := make([]any, 0, len(records)*7)
	for i, rec := range records {
		placeholders[i] = "(?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			rec.Endpoint, rec.Ticker, rec.Outcome, rec.StatusCode, rec.Error, rec.DurationMs,
			rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
	}

	query := fmt.Sprintf( //nolint:gosec // placeholders are not user input
		"INSERT INTO fetch_log (endpoint, ticker, outcome, status_code, error, duration_ms, created_at) VALUES %s",
		strings.Join(placeholders, ", "),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("save fetch records: %w", err)
	}

	n, _ := res.RowsAffected()
	return n, nil
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]domain.Record, error) {
	const query = `SELECT id, endpoint, ticker, outcome, status_code, error, duration_ms, created_at
		FROM fetch_log
		ORDER BY id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list fetch records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		var createdStr string
		if err := rows.Scan(&rec.ID, &rec.Endpoint, &rec.Ticker, &rec.Outcome,
			&rec.StatusCode, &rec.Error, &rec.DurationMs, &createdStr); err != nil {
			return nil, fmt.Errorf("scan fetch record: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}

	return records, rows.Err()
}
