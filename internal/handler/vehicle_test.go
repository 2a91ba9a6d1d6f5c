package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/validate"
)

// ---- GET /vehicles ----------------------------------------------------------

func TestListVehicles_200(t *testing.T) {
	vehicles := []domain.Vehicle{vehicleFixture(), vehicleFixture()}
	svc := &mockVehicleServicer{
		list: func(_ context.Context, category domain.Category) ([]domain.Vehicle, error) {
			assert.Equal(t, domain.CategoryCar, category)
			return vehicles, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/vehicles?category=car", nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Vehicle
	decodeBody(t, rec, &got)
	assert.Len(t, got, 2)
}

func TestListVehicles_422_BadCategory(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/vehicles?category=boat", nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- POST /vehicles ---------------------------------------------------------

func TestCreateVehicle_201(t *testing.T) {
	created := vehicleFixture()
	svc := &mockVehicleServicer{
		add: func(_ context.Context, in validate.VehicleInput) (domain.Vehicle, error) {
			assert.Equal(t, "Onix 1.0", in.Name)
			assert.Equal(t, "12,5", in.Efficiency)
			return created, nil
		},
	}

	body := jsonBody(t, map[string]any{"name": "Onix 1.0", "efficiency": "12,5", "category": "car"})
	req := httptest.NewRequest(http.MethodPost, "/vehicles", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.Vehicle
	decodeBody(t, rec, &got)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateVehicle_422_AllViolationsListed(t *testing.T) {
	svc := &mockVehicleServicer{
		add: func(context.Context, validate.VehicleInput) (domain.Vehicle, error) {
			return domain.Vehicle{}, validationFailure("name", "efficiency", "category")
		},
	}

	body := jsonBody(t, map[string]any{"name": "x", "efficiency": "0", "category": "boat"})
	req := httptest.NewRequest(http.MethodPost, "/vehicles", body)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var got struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, "validation_error", got.Error.Code)
	require.Len(t, got.Error.Details, 3, "every violation must be reported, not just the first")
	assert.Equal(t, "name", got.Error.Details[0].Field)
}

func TestCreateVehicle_422_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/vehicles", jsonBody(t, "not an object"))
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateVehicle_409_Duplicate(t *testing.T) {
	svc := &mockVehicleServicer{
		add: func(context.Context, validate.VehicleInput) (domain.Vehicle, error) {
			return domain.Vehicle{}, fmt.Errorf("vehicle exists: %w", domain.ErrDuplicate)
		},
	}

	body := jsonBody(t, map[string]any{"name": "Onix 1.0", "efficiency": "12.5", "category": "car"})
	req := httptest.NewRequest(http.MethodPost, "/vehicles", body)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	var got struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, "duplicate", got.Error.Code)
	assert.Contains(t, got.Error.Message, "Onix 1.0", "message names the offending vehicle")
}

// ---- POST /vehicles/{id}/select ---------------------------------------------

func TestSelectVehicle_200(t *testing.T) {
	vehicle := vehicleFixture()
	svc := &mockVehicleServicer{
		sel: func(_ context.Context, id uuid.UUID) (domain.Vehicle, error) {
			assert.Equal(t, vehicle.ID, id)
			return vehicle, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/vehicles/"+vehicle.ID.String()+"/select", nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSelectVehicle_404_UnknownID(t *testing.T) {
	svc := &mockVehicleServicer{
		sel: func(context.Context, uuid.UUID) (domain.Vehicle, error) {
			return domain.Vehicle{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/vehicles/"+uuid.NewString()+"/select", nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelectVehicle_404_MalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/vehicles/not-a-uuid/select", nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- GET /vehicles/selected -------------------------------------------------

func TestGetSelectedVehicle_200(t *testing.T) {
	vehicle := vehicleFixture()
	svc := &mockVehicleServicer{
		selected: func(_ context.Context, category domain.Category) (domain.Vehicle, bool, error) {
			assert.Equal(t, domain.CategoryMotorcycle, category)
			return vehicle, true, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/vehicles/selected?category=motorcycle", nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSelectedVehicle_204_NoneSelected(t *testing.T) {
	svc := &mockVehicleServicer{
		selected: func(context.Context, domain.Category) (domain.Vehicle, bool, error) {
			return domain.Vehicle{}, false, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/vehicles/selected?category=car", nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// ---- DELETE /vehicles/{id} --------------------------------------------------

func TestDeleteVehicle_204(t *testing.T) {
	id := uuid.New()
	svc := &mockVehicleServicer{
		del: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/vehicles/"+id.String(), nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteVehicle_404(t *testing.T) {
	svc := &mockVehicleServicer{
		del: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	}

	req := httptest.NewRequest(http.MethodDelete, "/vehicles/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newTestHandler(serverDeps{vehicles: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
