package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/event"
	"github.com/mvbarbosa/fuellog/internal/repo"
)

// Totals are the aggregate figures for one category.
type Totals struct {
	Trips         int     `json:"trips"`
	DistanceKm    float64 `json:"distance_km"`
	Cost          float64 `json:"cost"`
	AvgEfficiency float64 `json:"avg_efficiency"` // 0 when no fuel was consumed, never NaN/Inf
}

// DayCost is the summed cost of one calendar day, for charting.
type DayCost struct {
	Date time.Time `json:"date"`
	Cost float64   `json:"cost"`
}

// StatsService aggregates the trip history per category. Aggregates are
// cached; history-change events mark the cache dirty and schedule one
// debounced refresh, so a burst of changes coalesces into a single
// recomputation instead of one per event.
type StatsService struct {
	trips      repo.TripRepo
	windowDays int
	debounce   time.Duration

	mu    sync.Mutex
	cache map[domain.Category]Totals
	dirty bool
	timer *time.Timer

	now func() time.Time
}

// NewStatsService constructs a StatsService and subscribes it to history
// changes on the bus. windowDays bounds the daily-cost chart window.
func NewStatsService(trips repo.TripRepo, bus *event.Bus, windowDays int, debounce time.Duration) *StatsService {
	s := &StatsService{
		trips:      trips,
		windowDays: windowDays,
		debounce:   debounce,
		cache:      make(map[domain.Category]Totals),
		dirty:      true,
		now:        time.Now,
	}
	bus.Subscribe(event.HistoryChanged, s.invalidate)
	return s
}

// Totals returns the aggregates for category, recomputing only when the
// cache is dirty.
func (s *StatsService) Totals(ctx context.Context, category domain.Category) (Totals, error) {
	s.mu.Lock()
	if !s.dirty {
		t := s.cache[category]
		s.mu.Unlock()
		return t, nil
	}
	s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return Totals{}, fmt.Errorf("service.StatsService.Totals: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[category], nil
}

// DailyCosts buckets cost by calendar day (UTC) over a trailing window of
// days (capped at the configured maximum), sorted chronologically. Date
// strings never enter the ordering — days are compared as real dates.
func (s *StatsService) DailyCosts(ctx context.Context, category domain.Category, days int) ([]DayCost, error) {
	if days <= 0 || days > s.windowDays {
		days = s.windowDays
	}

	all, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.DailyCosts: %w", err)
	}

	cutoff := s.now().UTC().AddDate(0, 0, -days)
	byDay := make(map[time.Time]float64)
	for _, t := range all {
		if t.Category != category || t.CreatedAt.Before(cutoff) {
			continue
		}
		day := t.CreatedAt.UTC().Truncate(24 * time.Hour)
		byDay[day] += t.Cost
	}

	out := make([]DayCost, 0, len(byDay))
	for day, cost := range byDay {
		out = append(out, DayCost{Date: day, Cost: cost})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// invalidate marks the cache dirty and (re)schedules one debounced refresh.
// A pending timer is replaced, so rapid-fire events collapse into a single
// recomputation after the quiet period.
func (s *StatsService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		// Background warm-up; next Totals call serves the fresh cache.
		_ = s.refresh(context.Background())
	})
}

// refresh recomputes every category's totals from the repo and clears dirty.
func (s *StatsService) refresh(ctx context.Context) error {
	all, err := s.trips.List(ctx)
	if err != nil {
		return err
	}

	fresh := make(map[domain.Category]Totals, len(domain.Categories))
	type acc struct {
		distance, liters, cost float64
		n                      int
	}
	accs := make(map[domain.Category]*acc)
	for _, c := range domain.Categories {
		accs[c] = &acc{}
	}
	for _, t := range all {
		a, ok := accs[t.Category]
		if !ok {
			continue
		}
		a.distance += t.DistanceKm
		a.liters += t.Liters
		a.cost += t.Cost
		a.n++
	}
	for c, a := range accs {
		totals := Totals{Trips: a.n, DistanceKm: a.distance, Cost: a.cost}
		if a.liters > 0 {
			totals.AvgEfficiency = a.distance / a.liters
		}
		fresh[c] = totals
	}

	s.mu.Lock()
	s.cache = fresh
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// Close stops any pending debounce timer.
func (s *StatsService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
