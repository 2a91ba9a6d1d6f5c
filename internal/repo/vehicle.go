package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/kv"
)

// VehicleRepo defines the persistence operations for the vehicle collection.
// The service layer depends on this interface, not the concrete kv-backed
// implementation, which allows the service to be unit-tested with a mock.
type VehicleRepo interface {
	// List returns the persisted vehicle collection, oldest first.
	// A corrupt stored payload is discarded and an empty collection returned.
	List(ctx context.Context) ([]domain.Vehicle, error)

	// Replace overwrites the whole persisted collection. A returned error
	// means the previous collection is still in place.
	Replace(ctx context.Context, vehicles []domain.Vehicle) error
}

// kvVehicleRepo is the kv.Store implementation of VehicleRepo.
type kvVehicleRepo struct {
	store kv.Store
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided store.
func NewVehicleRepo(store kv.Store) VehicleRepo {
	return &kvVehicleRepo{store: store}
}

// List loads the vehicle collection. Malformed stored JSON is treated as
// absent: the bad payload is logged and dropped rather than failing the read.
func (r *kvVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	found, err := r.store.Get(ctx, keyVehicles, &vehicles)
	if err != nil {
		if errors.Is(err, kv.ErrCorrupt) {
			slog.WarnContext(ctx, "discarding corrupt vehicle collection", "error", err)
			return []domain.Vehicle{}, nil
		}
		return nil, fmt.Errorf("repo.VehicleRepo.List: %w", err)
	}
	if !found || vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

// Replace persists the full collection under the vehicles key.
func (r *kvVehicleRepo) Replace(ctx context.Context, vehicles []domain.Vehicle) error {
	if err := r.store.Set(ctx, keyVehicles, vehicles); err != nil {
		return fmt.Errorf("repo.VehicleRepo.Replace: %w", err)
	}
	return nil
}
