package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsodoma4050/business-intelligence/internal/audit"
	"github.com/jsodoma4050/business-intelligence/internal/stock"
	"github.com/jsodoma4050/business-intelligence/internal/transcript"
)

// Deps are the services and settings the HTTP layer is built from.
type Deps struct {
	Stocks      *stock.Service
	Transcripts *transcript.Service
	// Audit is nil when the fetch audit log is disabled.
	Audit *audit.Service
	// APIKey is consulted on every upstream-backed request.
	APIKey             func() string
	ExposeErrorDetails bool
}

// NewHandler creates the full HTTP handler with routes and middleware.
// Exported for use in tests (e.g., httptest.NewServer).
func NewHandler(deps Deps) http.Handler {
	return newMux(deps)
}

func newMux(deps Deps) http.Handler {
	h := &handler{
		stockSvc:      deps.Stocks,
		transcriptSvc: deps.Transcripts,
		auditSvc:      deps.Audit,
		apiKey:        deps.APIKey,
		exposeDetails: deps.ExposeErrorDetails,
	}

	mux := http.NewServeMux()

	// No method in these patterns: the handlers answer other methods with a
	// JSON 405 themselves.
	mux.HandleFunc("/api/stocks", h.getStocks)
	mux.HandleFunc("/api/transcript", h.getTranscript)

	mux.HandleFunc("GET /api/fetches", h.listFetches)
	mux.HandleFunc("GET /health", h.health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Apply middleware stack: recovery -> requestID -> logging -> cors
	var handler http.Handler = mux
	handler = cors(handler)
	handler = logging(handler)
	handler = requestID(handler)
	handler = recovery(handler)

	return handler
}
