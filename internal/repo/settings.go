package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/kv"
)

// SettingsRepo defines the persistence operations for application settings.
type SettingsRepo interface {
	// Get returns the persisted settings. found is false when nothing has
	// been saved yet or the stored payload was corrupt.
	Get(ctx context.Context) (settings domain.Settings, found bool, err error)

	// Save overwrites the persisted settings.
	Save(ctx context.Context, settings domain.Settings) error
}

// kvSettingsRepo is the kv.Store implementation of SettingsRepo.
type kvSettingsRepo struct {
	store kv.Store
}

// NewSettingsRepo constructs a SettingsRepo backed by the provided store.
func NewSettingsRepo(store kv.Store) SettingsRepo {
	return &kvSettingsRepo{store: store}
}

func (r *kvSettingsRepo) Get(ctx context.Context) (domain.Settings, bool, error) {
	var s domain.Settings
	found, err := r.store.Get(ctx, keySettings, &s)
	if err != nil {
		if errors.Is(err, kv.ErrCorrupt) {
			slog.WarnContext(ctx, "discarding corrupt settings", "error", err)
			return domain.Settings{}, false, nil
		}
		return domain.Settings{}, false, fmt.Errorf("repo.SettingsRepo.Get: %w", err)
	}
	return s, found, nil
}

func (r *kvSettingsRepo) Save(ctx context.Context, settings domain.Settings) error {
	if err := r.store.Set(ctx, keySettings, settings); err != nil {
		return fmt.Errorf("repo.SettingsRepo.Save: %w", err)
	}
	return nil
}
