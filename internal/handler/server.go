// Package handler implements the HTTP handlers for the fuel logbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (vehicle.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/service"
	"github.com/mvbarbosa/fuellog/internal/validate"
)

// VehicleServicer defines the business operations the vehicle handlers
// depend on. Defining interfaces here (in the consumer package) follows the
// Go convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type VehicleServicer interface {
	List(ctx context.Context, category domain.Category) ([]domain.Vehicle, error)
	Add(ctx context.Context, in validate.VehicleInput) (domain.Vehicle, error)
	Select(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	Selected(ctx context.Context, category domain.Category) (domain.Vehicle, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripServicer defines the business operations the trip handler depends on.
type TripServicer interface {
	ComputeAndRecord(ctx context.Context, in validate.TripInput, vehicleID *uuid.UUID) (domain.Trip, error)
}

// HistoryServicer defines the business operations the history handlers
// depend on.
type HistoryServicer interface {
	List(ctx context.Context, category domain.Category) ([]domain.Trip, error)
	View(category domain.Category) service.ViewMode
	ToggleView(category domain.Category) service.ViewMode
	Clear(ctx context.Context, category domain.Category, confirmed bool) error
}

// StatsServicer defines the aggregation operations the stats handler depends on.
type StatsServicer interface {
	Totals(ctx context.Context, category domain.Category) (service.Totals, error)
	DailyCosts(ctx context.Context, category domain.Category, days int) ([]service.DayCost, error)
}

// BackupServicer defines the export/import operations the backup handlers
// depend on.
type BackupServicer interface {
	Export(ctx context.Context) (domain.Backup, error)
	Import(ctx context.Context, raw []byte) (domain.ImportReport, error)
}

// Localizer renders user-facing messages and numbers in the active language.
type Localizer interface {
	T(key string, args map[string]string) string
	Language() string
	SetLanguage(ctx context.Context, code string) (string, error)
	FormatCurrency(v float64) string
	FormatQuantity(v float64) string
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	vehicles VehicleServicer
	trips    TripServicer
	history  HistoryServicer
	stats    StatsServicer
	backup   BackupServicer
	locale   Localizer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(vehicles VehicleServicer, trips TripServicer, history HistoryServicer,
	stats StatsServicer, backup BackupServicer, locale Localizer) *Server {
	return &Server{
		vehicles: vehicles,
		trips:    trips,
		history:  history,
		stats:    stats,
		backup:   backup,
		locale:   locale,
	}
}

// Routes mounts every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.ListVehicles)
		r.Post("/", s.CreateVehicle)
		r.Get("/selected", s.GetSelectedVehicle)
		r.Post("/{id}/select", s.SelectVehicle)
		r.Delete("/{id}", s.DeleteVehicle)
	})

	r.Post("/trips", s.CreateTrip)

	r.Route("/history", func(r chi.Router) {
		r.Get("/", s.ListHistory)
		r.Delete("/", s.ClearHistory)
		r.Get("/view", s.GetHistoryView)
		r.Put("/view", s.ToggleHistoryView)
	})

	r.Get("/stats", s.GetStats)

	r.Get("/settings/language", s.GetLanguage)
	r.Put("/settings/language", s.SetLanguage)

	r.Get("/export", s.GetExport)
	r.Post("/import", s.PostImport)

	return r
}
