package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/validate"
)

// createVehicleRequest carries the raw vehicle form. Numeric fields arrive as
// strings so the validator can accept the comma decimal separator.
type createVehicleRequest struct {
	Name       string `json:"name"`
	Efficiency string `json:"efficiency"`
	Category   string `json:"category"`
}

// ListVehicles handles GET /vehicles?category=.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}

	vehicles, err := s.vehicles.List(r.Context(), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// CreateVehicle handles POST /vehicles.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "error.invalid_request", nil))
		return
	}

	vehicle, err := s.vehicles.Add(r.Context(), validate.VehicleInput{
		Name:       req.Name,
		Efficiency: req.Efficiency,
		Category:   req.Category,
	})
	if err != nil {
		// The duplicate message names the offending vehicle, which only this
		// handler knows; everything else goes through the shared mapping.
		if errors.Is(err, domain.ErrDuplicate) {
			writeJSON(w, http.StatusConflict, s.duplicateError(req.Name, domain.Category(req.Category)))
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

// SelectVehicle handles POST /vehicles/{id}/select.
func (s *Server) SelectVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, s.envelope("not_found", "error.vehicle_not_found", nil))
		return
	}

	vehicle, err := s.vehicles.Select(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// GetSelectedVehicle handles GET /vehicles/selected?category=.
// Responds 204 when no vehicle is selected for the category.
func (s *Server) GetSelectedVehicle(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}

	vehicle, found, err := s.vehicles.Selected(r.Context(), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /vehicles/{id}.
func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, s.envelope("not_found", "error.vehicle_not_found", nil))
		return
	}

	if err := s.vehicles.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
