package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mvbarbosa/fuellog/internal/validate"
)

// createTripRequest carries the raw trip form. Numeric fields arrive as
// strings so the validator can accept the comma decimal separator; earnings
// left blank means "not supplied", which is distinct from "0".
type createTripRequest struct {
	Category   string  `json:"category"`
	VehicleID  *string `json:"vehicle_id,omitempty"`
	Initial    string  `json:"initial_km"`
	Final      string  `json:"final_km"`
	Efficiency string  `json:"efficiency"`
	Price      string  `json:"price_per_liter"`
	Earnings   string  `json:"earnings,omitempty"`
}

// tripResponse wraps the stored record with its display formatting in the
// active locale. Stored values keep full precision; the formatted strings
// round to one decimal for quantities and two for money.
type tripResponse struct {
	Trip      any               `json:"trip"`
	Formatted map[string]string `json:"formatted"`
}

// CreateTrip handles POST /trips: validate, compute the derived values,
// record the trip, and return it with localized display strings.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "error.invalid_request", nil))
		return
	}

	var vehicleID *uuid.UUID
	if req.VehicleID != nil {
		id, err := uuid.Parse(*req.VehicleID)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, s.envelope("validation_error", "error.invalid_request", nil))
			return
		}
		vehicleID = &id
	}

	trip, err := s.trips.ComputeAndRecord(r.Context(), validate.TripInput{
		Initial:    req.Initial,
		Final:      req.Final,
		Efficiency: req.Efficiency,
		Price:      req.Price,
		Earnings:   req.Earnings,
		Category:   req.Category,
	}, vehicleID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	formatted := map[string]string{
		"distance": s.locale.FormatQuantity(trip.DistanceKm),
		"liters":   s.locale.FormatQuantity(trip.Liters),
		"cost":     s.locale.FormatCurrency(trip.Cost),
	}
	if trip.Profit != nil {
		formatted["profit"] = s.locale.FormatCurrency(*trip.Profit)
	}

	writeJSON(w, http.StatusCreated, tripResponse{Trip: trip, Formatted: formatted})
}
