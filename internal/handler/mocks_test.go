package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/handler"
	"github.com/mvbarbosa/fuellog/internal/kv"
	"github.com/mvbarbosa/fuellog/internal/service"
	"github.com/mvbarbosa/fuellog/internal/validate"
)

// ---- mock services ----------------------------------------------------------
// Hand-written test doubles with function fields; set only what the test uses.

type mockVehicleServicer struct {
	list     func(ctx context.Context, category domain.Category) ([]domain.Vehicle, error)
	add      func(ctx context.Context, in validate.VehicleInput) (domain.Vehicle, error)
	sel      func(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	selected func(ctx context.Context, category domain.Category) (domain.Vehicle, bool, error)
	del      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVehicleServicer) List(ctx context.Context, category domain.Category) ([]domain.Vehicle, error) {
	return m.list(ctx, category)
}
func (m *mockVehicleServicer) Add(ctx context.Context, in validate.VehicleInput) (domain.Vehicle, error) {
	return m.add(ctx, in)
}
func (m *mockVehicleServicer) Select(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return m.sel(ctx, id)
}
func (m *mockVehicleServicer) Selected(ctx context.Context, category domain.Category) (domain.Vehicle, bool, error) {
	return m.selected(ctx, category)
}
func (m *mockVehicleServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.del(ctx, id)
}

// compile-time check: mockVehicleServicer must satisfy handler.VehicleServicer.
var _ handler.VehicleServicer = (*mockVehicleServicer)(nil)

type mockTripServicer struct {
	computeAndRecord func(ctx context.Context, in validate.TripInput, vehicleID *uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) ComputeAndRecord(ctx context.Context, in validate.TripInput, vehicleID *uuid.UUID) (domain.Trip, error) {
	return m.computeAndRecord(ctx, in, vehicleID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockHistoryServicer struct {
	list       func(ctx context.Context, category domain.Category) ([]domain.Trip, error)
	view       func(category domain.Category) service.ViewMode
	toggleView func(category domain.Category) service.ViewMode
	clear      func(ctx context.Context, category domain.Category, confirmed bool) error
}

func (m *mockHistoryServicer) List(ctx context.Context, category domain.Category) ([]domain.Trip, error) {
	return m.list(ctx, category)
}
func (m *mockHistoryServicer) View(category domain.Category) service.ViewMode {
	return m.view(category)
}
func (m *mockHistoryServicer) ToggleView(category domain.Category) service.ViewMode {
	return m.toggleView(category)
}
func (m *mockHistoryServicer) Clear(ctx context.Context, category domain.Category, confirmed bool) error {
	return m.clear(ctx, category, confirmed)
}

var _ handler.HistoryServicer = (*mockHistoryServicer)(nil)

type mockStatsServicer struct {
	totals     func(ctx context.Context, category domain.Category) (service.Totals, error)
	dailyCosts func(ctx context.Context, category domain.Category, days int) ([]service.DayCost, error)
}

func (m *mockStatsServicer) Totals(ctx context.Context, category domain.Category) (service.Totals, error) {
	return m.totals(ctx, category)
}
func (m *mockStatsServicer) DailyCosts(ctx context.Context, category domain.Category, days int) ([]service.DayCost, error) {
	return m.dailyCosts(ctx, category, days)
}

var _ handler.StatsServicer = (*mockStatsServicer)(nil)

type mockBackupServicer struct {
	export func(ctx context.Context) (domain.Backup, error)
	imp    func(ctx context.Context, raw []byte) (domain.ImportReport, error)
}

func (m *mockBackupServicer) Export(ctx context.Context) (domain.Backup, error) {
	return m.export(ctx)
}
func (m *mockBackupServicer) Import(ctx context.Context, raw []byte) (domain.ImportReport, error) {
	return m.imp(ctx, raw)
}

var _ handler.BackupServicer = (*mockBackupServicer)(nil)

// stubLocalizer is a pass-through Localizer: T returns the key with the args
// appended deterministically, so assertions can check which key was rendered
// without coupling to real translation tables.
type stubLocalizer struct {
	lang        string
	setLanguage func(ctx context.Context, code string) (string, error)
}

func (l *stubLocalizer) T(key string, args map[string]string) string {
	if len(args) == 0 {
		return key
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+args[k])
	}
	return key + "[" + strings.Join(parts, " ") + "]"
}

func (l *stubLocalizer) Language() string {
	if l.lang == "" {
		return "pt-BR"
	}
	return l.lang
}

func (l *stubLocalizer) SetLanguage(ctx context.Context, code string) (string, error) {
	return l.setLanguage(ctx, code)
}

func (l *stubLocalizer) FormatCurrency(v float64) string {
	return "R$ " + strconv.FormatFloat(v, 'f', 2, 64)
}

func (l *stubLocalizer) FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

var _ handler.Localizer = (*stubLocalizer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverDeps bundles the mocks a test wires in; zero-value fields stay nil.
type serverDeps struct {
	vehicles handler.VehicleServicer
	trips    handler.TripServicer
	history  handler.HistoryServicer
	stats    handler.StatsServicer
	backup   handler.BackupServicer
	locale   handler.Localizer
}

// newTestHandler wires a Server with the given mocks and a stub localizer
// when none is provided.
func newTestHandler(deps serverDeps) http.Handler {
	if deps.locale == nil {
		deps.locale = &stubLocalizer{}
	}
	srv := handler.NewServer(deps.vehicles, deps.trips, deps.history, deps.stats, deps.backup, deps.locale)
	return srv.Routes()
}

// jsonBody encodes v for use as a request body.
func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return &buf
}

// decodeBody decodes the recorded response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func vehicleFixture() domain.Vehicle {
	return domain.Vehicle{
		ID:         uuid.New(),
		Name:       "Onix 1.0",
		Efficiency: 12.5,
		Category:   domain.CategoryCar,
		CreatedAt:  time.Now().UTC(),
	}
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:            uuid.New(),
		CreatedAt:     time.Now().UTC(),
		Category:      domain.CategoryCar,
		InitialKm:     15000,
		FinalKm:       15120.5,
		Efficiency:    12.5,
		PricePerLiter: 5.89,
		DistanceKm:    120.5,
		Liters:        9.64,
		Cost:          56.7796,
	}
}

// validationFailure is a ready-made *validate.Error for 422 paths.
func validationFailure(fields ...string) error {
	ferrs := make([]validate.FieldError, len(fields))
	for i, f := range fields {
		ferrs[i] = validate.FieldError{Field: f, MessageKey: "error." + f}
	}
	return &validate.Error{Fields: ferrs}
}

// kvUnavailable mimics a wrapped storage outage as the services surface it.
func kvUnavailable() error {
	return fmt.Errorf("service: %w", kv.ErrUnavailable)
}

func kvQuotaExceeded() error {
	return fmt.Errorf("service: %w", kv.ErrQuotaExceeded)
}

var errBoom = fmt.Errorf("boom")
