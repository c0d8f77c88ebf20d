package audit

import (
	"context"
	"testing"
	"time"

	domain "github.com/jsodoma4050/business-intelligence/internal/audit"
	"github.com/jsodoma4050/business-intelligence/internal/platform/sqlite"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSave_And_ListRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	at := time.Date(2024, 6, 3, 14, 0, 0, 123000000, time.UTC)
	records := []domain.Record{
		{Endpoint: "stockprice", Ticker: "AAPL", Outcome: "success", StatusCode: 200, DurationMs: 80, CreatedAt: at},
		{Endpoint: "stockprice", Ticker: "MSFT", Outcome: "http_error", StatusCode: 502, Error: "upstream stockprice returned HTTP 502", DurationMs: 40, CreatedAt: at},
		{Endpoint: "earningstranscript", Ticker: "NVDA", Outcome: "transport_error", Error: "dial tcp: refused", CreatedAt: at.Add(time.Second)},
	}

	n, err := repo.Save(ctx, records)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows inserted, got %d", n)
	}

	got, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].Ticker != "NVDA" {
		t.Errorf("expected newest first, got %s", got[0].Ticker)
	}
	if got[1].StatusCode != 502 || got[1].Error == "" {
		t.Errorf("unexpected record %+v", got[1])
	}
	if !got[2].CreatedAt.Equal(at) {
		t.Errorf("createdAt = %v, want %v", got[2].CreatedAt, at)
	}
	if got[2].ID == 0 {
		t.Error("expected id assigned")
	}
}

func TestListRecent_Limit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	for _, tk := range []string{"A", "B", "C", "D"} {
		if _, err := repo.Save(ctx, []domain.Record{{Endpoint: "stockprice", Ticker: tk, Outcome: "success", CreatedAt: time.Now()}}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Ticker != "D" || got[1].Ticker != "C" {
		t.Errorf("unexpected records %+v", got)
	}
}

func TestSave_Empty(t *testing.T) {
	repo := NewRepository(setupTestDB(t).DB)
	n, err := repo.Save(context.Background(), nil)
	if err != nil || n != 0 {
		t.Errorf("expected no-op, got n=%d err=%v", n, err)
	}
}
