package server

import (
	"encoding/json"
	"net/http"

	"github.com/jsodoma4050/business-intelligence/internal/apperror"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON[T any](w http.ResponseWriter, status int, data T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError renders an AppError envelope. Public details are always
// included; the internal cause only when exposeCause is set.
func writeError(w http.ResponseWriter, ae *apperror.AppError, exposeCause bool) {
	body := errorBody{
		Error:   ae.Kind(),
		Message: ae.Message(),
		Details: ae.Details(),
	}
	if body.Details == nil && exposeCause && ae.Cause() != nil {
		body.Details = ae.Cause().Error()
	}
	writeJSON(w, ae.HTTPStatus(), body)
}
