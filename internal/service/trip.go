package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/event"
	"github.com/mvbarbosa/fuellog/internal/repo"
	"github.com/mvbarbosa/fuellog/internal/validate"
)

// TripService computes and records fuel trips. Derived values are computed
// once here with full float64 precision and frozen into the record; nothing
// downstream ever recomputes them.
type TripService struct {
	trips  repo.TripRepo
	bus    *event.Bus
	limits validate.Limits
	cap    int

	now func() time.Time
}

// NewTripService constructs a TripService. cap is the maximum history length;
// recording a trip beyond it evicts the oldest entries.
func NewTripService(trips repo.TripRepo, bus *event.Bus, limits validate.Limits, cap int) *TripService {
	return &TripService{trips: trips, bus: bus, limits: limits, cap: cap, now: time.Now}
}

// ComputeAndRecord validates the form, computes the derived values, and
// prepends the new record to the persisted history, truncating it to the cap
// from the tail. vehicleID may be nil: trips can be logged without a saved
// vehicle. Returns *validate.Error (matches domain.ErrValidation) on bad
// input; on any error the history is unchanged.
func (s *TripService) ComputeAndRecord(ctx context.Context, in validate.TripInput, vehicleID *uuid.UUID) (domain.Trip, error) {
	res := validate.Trip(in, s.limits)
	if !res.Valid {
		return domain.Trip{}, &validate.Error{Fields: res.Errors}
	}

	d := res.Data
	trip := domain.Trip{
		ID:            uuid.New(),
		CreatedAt:     s.now().UTC(),
		Category:      d.Category,
		VehicleID:     vehicleID,
		InitialKm:     d.InitialKm,
		FinalKm:       d.FinalKm,
		Efficiency:    d.Efficiency,
		PricePerLiter: d.PricePerLiter,
	}

	trip.DistanceKm = d.FinalKm - d.InitialKm
	trip.Liters = trip.DistanceKm / d.Efficiency
	trip.Cost = trip.Liters * d.PricePerLiter
	if d.Earnings != nil {
		e := *d.Earnings
		trip.Earnings = &e
		profit := e - trip.Cost
		trip.Profit = &profit
	}

	history, err := s.trips.List(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.ComputeAndRecord: %w", err)
	}

	history = append([]domain.Trip{trip}, history...)
	if len(history) > s.cap {
		history = history[:s.cap]
	}

	if err := s.trips.Replace(ctx, history); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.ComputeAndRecord: %w", err)
	}

	s.bus.Publish(event.HistoryChanged)
	return trip, nil
}
