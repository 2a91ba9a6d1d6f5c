package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/kv"
	"github.com/mvbarbosa/fuellog/internal/validate"
)

// errorResponse is the JSON error envelope every failed request returns.
// Code is stable for programmatic handling; Message is localized for display.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []fieldDetail `json:"details,omitempty"`
}

// fieldDetail is one validation violation, message already localized.
type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeJSON writes v with the given status. Encoding failures are logged,
// not surfaced — the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeError maps a service error onto the HTTP error taxonomy:
// validation → 422 (with every violation listed), not found → 404,
// duplicate and missing confirmation → 409, storage unavailable → 503,
// quota exceeded → 507, anything else → 500. Messages come out of the
// localization table in the active language.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		details := make([]fieldDetail, len(verr.Fields))
		for i, f := range verr.Fields {
			details[i] = fieldDetail{Field: f.Field, Message: s.locale.T(f.MessageKey, f.Args)}
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{
			Code:    "validation_error",
			Message: details[0].Message,
			Details: details,
		}})

	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "error.invalid_request", nil))

	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, s.envelope("not_found", "error.vehicle_not_found", nil))

	case errors.Is(err, domain.ErrDuplicate):
		writeJSON(w, http.StatusConflict, s.envelope("duplicate", "error.vehicle_duplicate", nil))

	case errors.Is(err, domain.ErrConfirmRequired):
		writeJSON(w, http.StatusConflict, s.envelope("confirm_required", "error.confirm_required", nil))

	case errors.Is(err, kv.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, s.envelope("storage_unavailable", "error.storage_unavailable", nil))

	case errors.Is(err, kv.ErrQuotaExceeded):
		writeJSON(w, http.StatusInsufficientStorage, s.envelope("storage_full", "error.storage_full", nil))

	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, s.envelope("internal", "error.storage_write", nil))
	}
}

// envelope builds an errorResponse with the message translated.
func (s *Server) envelope(code, messageKey string, args map[string]string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: s.locale.T(messageKey, args)}}
}

// duplicateError builds the 409 envelope for a duplicate vehicle with its
// name and localized category filled into the message.
func (s *Server) duplicateError(name string, category domain.Category) errorResponse {
	return s.envelope("duplicate", "error.vehicle_duplicate", map[string]string{
		"name":     name,
		"category": s.locale.T("category."+string(category), nil),
	})
}

// categoryParam reads and validates the ?category= query parameter.
// ok is false after a 422 response has been written.
func (s *Server) categoryParam(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	cat := domain.Category(r.URL.Query().Get("category"))
	if !cat.Valid() {
		writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "error.category_unknown", nil))
		return "", false
	}
	return cat, true
}
