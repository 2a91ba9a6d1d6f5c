package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mvbarbosa/fuellog/internal/domain"
)

// languageBody is the request and response shape of the language setting.
type languageBody struct {
	Language string `json:"language"`
}

// GetLanguage handles GET /settings/language.
func (s *Server) GetLanguage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, languageBody{Language: s.locale.Language()})
}

// SetLanguage handles PUT /settings/language. The code is matched against
// the supported languages; the response carries the canonical code that was
// actually activated.
func (s *Server) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "error.language_unknown", nil))
		return
	}

	code, err := s.locale.SetLanguage(r.Context(), req.Language)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "error.language_unknown", nil))
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, languageBody{Language: code})
}
