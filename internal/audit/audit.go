package audit

import (
	"time"

	"github.com/jsodoma4050/business-intelligence/internal/upstream"
)

// Record is the metadata of one upstream call. Response bodies are never kept.
type Record struct {
	ID         int64     `json:"id"`
	Endpoint   string    `json:"endpoint"`
	Ticker     string    `json:"ticker"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"statusCode,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromCall(c upstream.Call, at time.Time) Record {
	r := Record{
		Endpoint:   c.Endpoint,
		Ticker:     c.Ticker,
		Outcome:    c.Outcome(),
		StatusCode: c.StatusCode,
		DurationMs: c.Duration.Milliseconds(),
		CreatedAt:  at.UTC(),
	}
	if c.Err != nil {
		r.Error = c.Err.Error()
	}
	return r
}
