package server

import (
	"net/http"

	"github.com/jsodoma4050/business-intelligence/internal/apperror"
	"github.com/jsodoma4050/business-intelligence/internal/audit"
	"github.com/jsodoma4050/business-intelligence/internal/stock"
	"github.com/jsodoma4050/business-intelligence/internal/transcript"
)

type handler struct {
	stockSvc      *stock.Service
	transcriptSvc *transcript.Service
	auditSvc      *audit.Service
	apiKey        func() string
	exposeDetails bool
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// upstreamKey enforces the GET-only contract and resolves the API key. It
// writes the error response itself and returns false when the request must
// not proceed.
func (h *handler) upstreamKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		writeError(w, apperror.New(apperror.MethodNotAllowed, "Only GET requests are supported"), false)
		return "", false
	}
	key := ""
	if h.apiKey != nil {
		key = h.apiKey()
	}
	if key == "" {
		writeError(w, apperror.New(apperror.Config, "API key not configured"), false)
		return "", false
	}
	return key, true
}

func (h *handler) getStocks(w http.ResponseWriter, r *http.Request) {
	key, ok := h.upstreamKey(w, r)
	if !ok {
		return
	}

	snap, err := h.stockSvc.Snapshot(r.Context(), key)
	if err != nil {
		writeError(w, apperror.From(err), h.exposeDetails)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (h *handler) getTranscript(w http.ResponseWriter, r *http.Request) {
	key, ok := h.upstreamKey(w, r)
	if !ok {
		return
	}

	req, appErr := transcript.ParseRequest(r.URL.Query())
	if appErr != nil {
		writeError(w, appErr, false)
		return
	}

	result, err := h.transcriptSvc.Get(r.Context(), key, req)
	if err != nil {
		writeError(w, apperror.From(err), h.exposeDetails)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handler) listFetches(w http.ResponseWriter, r *http.Request) {
	if h.auditSvc == nil {
		writeError(w, apperror.New(apperror.NotFound, "Fetch audit log is not enabled"), false)
		return
	}

	req, appErr := audit.ParseListRequest(r.URL.Query().Get("limit"))
	if appErr != nil {
		writeError(w, appErr, false)
		return
	}

	records, err := h.auditSvc.List(r.Context(), req)
	if err != nil {
		writeError(w, apperror.From(err), h.exposeDetails)
		return
	}

	writeJSON(w, http.StatusOK, records)
}
