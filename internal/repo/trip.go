package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/kv"
)

// TripRepo defines the persistence operations for the trip history.
// The collection is stored newest-first; the cap on its length is enforced by
// the service layer before Replace.
type TripRepo interface {
	// List returns the persisted history, newest first.
	// A corrupt stored payload is discarded and an empty history returned.
	List(ctx context.Context) ([]domain.Trip, error)

	// Replace overwrites the whole persisted history. A returned error means
	// the previous history is still in place.
	Replace(ctx context.Context, trips []domain.Trip) error
}

// kvTripRepo is the kv.Store implementation of TripRepo.
type kvTripRepo struct {
	store kv.Store
}

// NewTripRepo constructs a TripRepo backed by the provided store.
func NewTripRepo(store kv.Store) TripRepo {
	return &kvTripRepo{store: store}
}

// List loads the trip history, discarding a corrupt payload as absent.
func (r *kvTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	found, err := r.store.Get(ctx, keyHistory, &trips)
	if err != nil {
		if errors.Is(err, kv.ErrCorrupt) {
			slog.WarnContext(ctx, "discarding corrupt trip history", "error", err)
			return []domain.Trip{}, nil
		}
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	if !found || trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Replace persists the full history under the history key.
func (r *kvTripRepo) Replace(ctx context.Context, trips []domain.Trip) error {
	if err := r.store.Set(ctx, keyHistory, trips); err != nil {
		return fmt.Errorf("repo.TripRepo.Replace: %w", err)
	}
	return nil
}
