package service_test

import (
	"context"
	"sync"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/repo"
)

// mockVehicleRepo is a hand-written test double for repo.VehicleRepo.
// Each method is a function field — set only the ones your test needs.
type mockVehicleRepo struct {
	list    func(ctx context.Context) ([]domain.Vehicle, error)
	replace func(ctx context.Context, vehicles []domain.Vehicle) error
}

func (m *mockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	return m.list(ctx)
}
func (m *mockVehicleRepo) Replace(ctx context.Context, vehicles []domain.Vehicle) error {
	return m.replace(ctx, vehicles)
}

// compile-time check: mockVehicleRepo must satisfy repo.VehicleRepo.
var _ repo.VehicleRepo = (*mockVehicleRepo)(nil)

// mockTripRepo is a hand-written test double for repo.TripRepo.
type mockTripRepo struct {
	list    func(ctx context.Context) ([]domain.Trip, error)
	replace func(ctx context.Context, trips []domain.Trip) error
}

func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Replace(ctx context.Context, trips []domain.Trip) error {
	return m.replace(ctx, trips)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockSettingsRepo is a hand-written test double for repo.SettingsRepo.
type mockSettingsRepo struct {
	get  func(ctx context.Context) (domain.Settings, bool, error)
	save func(ctx context.Context, settings domain.Settings) error
}

func (m *mockSettingsRepo) Get(ctx context.Context) (domain.Settings, bool, error) {
	return m.get(ctx)
}
func (m *mockSettingsRepo) Save(ctx context.Context, settings domain.Settings) error {
	return m.save(ctx, settings)
}

// compile-time check: mockSettingsRepo must satisfy repo.SettingsRepo.
var _ repo.SettingsRepo = (*mockSettingsRepo)(nil)

// fakeVehicleRepo is a stateful in-memory VehicleRepo for flows that span
// several operations (add then list, delete then select).
type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles []domain.Vehicle
}

func (f *fakeVehicleRepo) List(context.Context) ([]domain.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out, nil
}

func (f *fakeVehicleRepo) Replace(_ context.Context, vehicles []domain.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vehicles = vehicles
	return nil
}

var _ repo.VehicleRepo = (*fakeVehicleRepo)(nil)

// fakeTripRepo is the stateful counterpart for trip flows.
type fakeTripRepo struct {
	mu    sync.Mutex
	trips []domain.Trip

	listCalls int
}

func (f *fakeTripRepo) List(context.Context) ([]domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]domain.Trip, len(f.trips))
	copy(out, f.trips)
	return out, nil
}

func (f *fakeTripRepo) Replace(_ context.Context, trips []domain.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trips = trips
	return nil
}

var _ repo.TripRepo = (*fakeTripRepo)(nil)
