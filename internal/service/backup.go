package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/event"
	"github.com/mvbarbosa/fuellog/internal/i18n"
	"github.com/mvbarbosa/fuellog/internal/repo"
)

const (
	backupApp     = "fuel-logbook"
	backupVersion = "1.0.0"
)

// BackupService assembles full-data exports and applies imports. Import is
// deliberately lenient: each section of the document is accepted or skipped
// independently, and the import counts as successful when at least one
// section was taken.
type BackupService struct {
	vehicles repo.VehicleRepo
	trips    repo.TripRepo
	settings repo.SettingsRepo
	bus      *event.Bus
	cap      int

	now func() time.Time
}

// NewBackupService constructs a BackupService backed by the provided repos.
// cap is the history limit applied to imported trip lists.
func NewBackupService(vehicles repo.VehicleRepo, trips repo.TripRepo, settings repo.SettingsRepo, bus *event.Bus, cap int) *BackupService {
	return &BackupService{
		vehicles: vehicles,
		trips:    trips,
		settings: settings,
		bus:      bus,
		cap:      cap,
		now:      time.Now,
	}
}

// Export returns the complete backup document.
func (s *BackupService) Export(ctx context.Context) (domain.Backup, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return domain.Backup{}, fmt.Errorf("service.BackupService.Export: %w", err)
	}
	history, err := s.trips.List(ctx)
	if err != nil {
		return domain.Backup{}, fmt.Errorf("service.BackupService.Export: %w", err)
	}
	settings, _, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Backup{}, fmt.Errorf("service.BackupService.Export: %w", err)
	}

	return domain.Backup{
		App:        backupApp,
		Version:    backupVersion,
		ExportDate: s.now().UTC(),
		Vehicles:   vehicles,
		History:    history,
		Settings:   settings,
	}, nil
}

// Import applies a backup document. The top level must be a JSON object;
// vehicles and history must each be arrays or their section is skipped with a
// warning; an unsupported language in settings is skipped, keeping the
// current one. Report.Accepted is true when at least one section was applied.
// Warnings carry i18n message keys — the handler renders them.
func (s *BackupService) Import(ctx context.Context, raw []byte) (domain.ImportReport, error) {
	var doc struct {
		Vehicles json.RawMessage `json:"vehicles"`
		History  json.RawMessage `json:"history"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.ImportReport{}, fmt.Errorf("service.BackupService.Import: %w: %v", domain.ErrValidation, err)
	}

	report := domain.ImportReport{Vehicles: -1, Trips: -1}

	if len(doc.Vehicles) > 0 {
		var vehicles []domain.Vehicle
		if !isJSONArray(doc.Vehicles) || json.Unmarshal(doc.Vehicles, &vehicles) != nil {
			report.Warnings = append(report.Warnings, "import.vehicles_invalid")
		} else {
			if err := s.vehicles.Replace(ctx, vehicles); err != nil {
				return report, fmt.Errorf("service.BackupService.Import: vehicles: %w", err)
			}
			report.Vehicles = len(vehicles)
			report.Accepted = true
		}
	}

	if len(doc.History) > 0 {
		var history []domain.Trip
		if !isJSONArray(doc.History) || json.Unmarshal(doc.History, &history) != nil {
			report.Warnings = append(report.Warnings, "import.history_invalid")
		} else {
			if len(history) > s.cap {
				history = history[:s.cap]
			}
			if err := s.trips.Replace(ctx, history); err != nil {
				return report, fmt.Errorf("service.BackupService.Import: history: %w", err)
			}
			report.Trips = len(history)
			report.Accepted = true
		}
	}

	if len(doc.Settings) > 0 {
		var settings domain.Settings
		code, supported := "", false
		if json.Unmarshal(doc.Settings, &settings) == nil {
			code, supported = i18n.Resolve(settings.Language)
		}
		if !supported {
			report.Warnings = append(report.Warnings, "import.language_unknown")
		} else {
			// Only the canonical supported tag is persisted; a later export
			// never round-trips an alias or an unsupported code.
			if err := s.settings.Save(ctx, domain.Settings{Language: code}); err != nil {
				return report, fmt.Errorf("service.BackupService.Import: settings: %w", err)
			}
			report.Language = code
			report.Accepted = true
		}
	}

	if report.Accepted {
		s.bus.Publish(event.VehiclesChanged)
		s.bus.Publish(event.HistoryChanged)
		if report.Language != "" {
			s.bus.Publish(event.LanguageChanged)
		}
	}
	return report, nil
}

// isJSONArray reports whether raw is a JSON array. null and every other
// non-array payload fail the check; sections must be arrays or are skipped.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
