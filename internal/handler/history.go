package handler

import (
	"net/http"
)

// ListHistory handles GET /history?category=.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}

	trips, err := s.history.List(r.Context(), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// ClearHistory handles DELETE /history?category=&confirm=true.
// Without confirm=true the request fails with 409 and nothing is removed —
// the query parameter is the API form of the confirm dialog.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := s.history.Clear(r.Context(), category, confirmed); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHistoryView handles GET /history/view?category=.
func (s *Server) GetHistoryView(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"view": string(s.history.View(category))})
}

// ToggleHistoryView handles PUT /history/view?category=.
func (s *Server) ToggleHistoryView(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"view": string(s.history.ToggleView(category))})
}
