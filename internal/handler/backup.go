// Package handler — backup.go implements GET /export and POST /import.
// Export returns the full backup document; import applies one, section by
// section, with partial success.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/mvbarbosa/fuellog/internal/domain"
)

// importResponse is the client-facing import outcome: the section counts plus
// the warnings rendered in the active language.
type importResponse struct {
	Accepted bool     `json:"accepted"`
	Vehicles int      `json:"vehicles"`
	Trips    int      `json:"trips"`
	Language string   `json:"language,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// GetExport handles GET /export. The Content-Disposition header makes a
// browser download the document as a file.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	backup, err := s.backup.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="fuel-logbook-backup.json"`)
	writeJSON(w, http.StatusOK, backup)
}

// PostImport handles POST /import. The body is the backup JSON document
// (size-limited by middleware). A structurally broken document is a 422;
// individually malformed sections are skipped and reported as warnings while
// the rest of the import proceeds.
func (s *Server) PostImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "import.not_object", nil))
		return
	}

	// An accepted language section flips the active language before warnings
	// are rendered; "keeping {language}" must name the pre-import one.
	current := s.locale.Language()

	report, err := s.backup.Import(r.Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "import.not_object", nil))
			return
		}
		s.writeError(w, r, err)
		return
	}

	resp := importResponse{
		Accepted: report.Accepted,
		Vehicles: report.Vehicles,
		Trips:    report.Trips,
		Language: report.Language,
	}
	for _, key := range report.Warnings {
		resp.Warnings = append(resp.Warnings, s.locale.T(key, map[string]string{"language": current}))
	}

	status := http.StatusOK
	if !report.Accepted {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}
