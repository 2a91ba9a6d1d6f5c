package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/event"
	"github.com/mvbarbosa/fuellog/internal/repo"
)

// ViewMode is the history presentation toggle.
type ViewMode string

const (
	ViewSummary ViewMode = "summary"
	ViewFull    ViewMode = "full"
)

// HistoryService reads and clears the recorded trips of one category, and
// holds the summary/full view toggle. The toggle is session state: it resets
// to summary whenever the active category changes.
type HistoryService struct {
	trips repo.TripRepo
	bus   *event.Bus

	mu       sync.Mutex
	category domain.Category
	view     ViewMode
}

// NewHistoryService constructs a HistoryService backed by the provided repo.
func NewHistoryService(trips repo.TripRepo, bus *event.Bus) *HistoryService {
	return &HistoryService{trips: trips, bus: bus, category: domain.CategoryCar, view: ViewSummary}
}

// List returns the recorded trips of category, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *HistoryService) List(ctx context.Context, category domain.Category) ([]domain.Trip, error) {
	all, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HistoryService.List: %w", err)
	}
	out := []domain.Trip{}
	for _, t := range all {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}

// View returns the current view mode for category, switching the active
// category first. Switching resets the toggle to summary.
func (s *HistoryService) View(category domain.Category) ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activate(category)
	return s.view
}

// ToggleView flips the view mode for category and returns the new mode.
// Switching to a different category resets to summary before the flip.
func (s *HistoryService) ToggleView(category domain.Category) ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activate(category)
	if s.view == ViewSummary {
		s.view = ViewFull
	} else {
		s.view = ViewSummary
	}
	return s.view
}

// activate makes category the active one; callers must hold mu.
func (s *HistoryService) activate(category domain.Category) {
	if s.category != category {
		s.category = category
		s.view = ViewSummary
	}
}

// Clear removes every trip of category from the persisted history, leaving
// other categories untouched. The destructive step requires the caller to
// have confirmed: without confirmed it fails with domain.ErrConfirmRequired
// and mutates nothing.
func (s *HistoryService) Clear(ctx context.Context, category domain.Category, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("service.HistoryService.Clear: %w", domain.ErrConfirmRequired)
	}

	all, err := s.trips.List(ctx)
	if err != nil {
		return fmt.Errorf("service.HistoryService.Clear: %w", err)
	}

	kept := make([]domain.Trip, 0, len(all))
	for _, t := range all {
		if t.Category != category {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(all) {
		return nil // nothing to clear
	}

	if err := s.trips.Replace(ctx, kept); err != nil {
		return fmt.Errorf("service.HistoryService.Clear: %w", err)
	}

	s.bus.Publish(event.HistoryChanged)
	return nil
}
