package audit

import "context"

type Repository interface {
	Save(ctx context.Context, records []Record) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]Record, error)
}
