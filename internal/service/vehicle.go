// Package service contains the business logic for the fuel logbook.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No store access details live here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/event"
	"github.com/mvbarbosa/fuellog/internal/repo"
	"github.com/mvbarbosa/fuellog/internal/validate"
)

// VehicleService implements business logic for vehicle operations. It also
// owns the per-category "currently selected vehicle" slot — explicit session
// state, held here and never persisted.
type VehicleService struct {
	vehicles repo.VehicleRepo
	bus      *event.Bus
	limits   validate.Limits

	mu       sync.Mutex
	selected map[domain.Category]uuid.UUID

	now func() time.Time
}

// NewVehicleService constructs a VehicleService backed by the provided repo.
func NewVehicleService(vehicles repo.VehicleRepo, bus *event.Bus, limits validate.Limits) *VehicleService {
	return &VehicleService{
		vehicles: vehicles,
		bus:      bus,
		limits:   limits,
		selected: make(map[domain.Category]uuid.UUID),
		now:      time.Now,
	}
}

// List returns the saved vehicles of one category, oldest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VehicleService) List(ctx context.Context, category domain.Category) ([]domain.Vehicle, error) {
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.List: %w", err)
	}
	out := []domain.Vehicle{}
	for _, v := range all {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out, nil
}

// Add validates the form, rejects case-insensitive name+category duplicates,
// persists the new vehicle, and auto-selects it when it is the first of its
// category. Returns *validate.Error (matches domain.ErrValidation) or
// domain.ErrDuplicate on rejection; on either, the collection is unchanged.
func (s *VehicleService) Add(ctx context.Context, in validate.VehicleInput) (domain.Vehicle, error) {
	res := validate.Vehicle(in, s.limits)
	if !res.Valid {
		return domain.Vehicle{}, &validate.Error{Fields: res.Errors}
	}

	all, err := s.vehicles.List(ctx)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w", err)
	}

	sameCategory := 0
	for _, v := range all {
		if v.Category != res.Data.Category {
			continue
		}
		sameCategory++
		if strings.EqualFold(v.Name, res.Data.Name) {
			return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w: %s/%s",
				domain.ErrDuplicate, res.Data.Category, res.Data.Name)
		}
	}

	vehicle := domain.Vehicle{
		ID:         uuid.New(),
		Name:       res.Data.Name,
		Efficiency: res.Data.Efficiency,
		Category:   res.Data.Category,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.vehicles.Replace(ctx, append(all, vehicle)); err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w", err)
	}

	if sameCategory == 0 {
		s.mu.Lock()
		s.selected[vehicle.Category] = vehicle.ID
		s.mu.Unlock()
	}

	s.bus.Publish(event.VehiclesChanged)
	return vehicle, nil
}

// Select loads the vehicle into the transient current slot of its category.
// Returns domain.ErrNotFound when no vehicle with that id exists.
func (s *VehicleService) Select(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	vehicle, err := s.get(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Select: %w", err)
	}

	s.mu.Lock()
	s.selected[vehicle.Category] = vehicle.ID
	s.mu.Unlock()
	return vehicle, nil
}

// Selected returns the currently selected vehicle of category, if any.
func (s *VehicleService) Selected(ctx context.Context, category domain.Category) (domain.Vehicle, bool, error) {
	s.mu.Lock()
	id, ok := s.selected[category]
	s.mu.Unlock()
	if !ok {
		return domain.Vehicle{}, false, nil
	}

	vehicle, err := s.get(ctx, id)
	if err != nil {
		return domain.Vehicle{}, false, fmt.Errorf("service.VehicleService.Selected: %w", err)
	}
	return vehicle, true, nil
}

// Delete removes a vehicle by id, clearing the category selection when the
// deleted vehicle was selected. Trips that referenced it keep their frozen
// values — history is never touched by a vehicle delete.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}

	kept := make([]domain.Vehicle, 0, len(all))
	var deleted *domain.Vehicle
	for _, v := range all {
		if v.ID == id {
			d := v
			deleted = &d
			continue
		}
		kept = append(kept, v)
	}
	if deleted == nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", domain.ErrNotFound)
	}

	if err := s.vehicles.Replace(ctx, kept); err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}

	s.mu.Lock()
	if s.selected[deleted.Category] == id {
		delete(s.selected, deleted.Category)
	}
	s.mu.Unlock()

	s.bus.Publish(event.VehiclesChanged)
	return nil
}

// get finds one vehicle by id in the persisted collection.
func (s *VehicleService) get(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return domain.Vehicle{}, err
	}
	for _, v := range all {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Vehicle{}, domain.ErrNotFound
}
