package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"careclock-backend/internal/middleware"
	"careclock-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationStore struct {
	locations map[string]*models.Location
}

func newFakeLocationStore() *fakeLocationStore {
	return &fakeLocationStore{locations: make(map[string]*models.Location)}
}

func (s *fakeLocationStore) GetByID(id string) (*models.Location, error) {
	return s.locations[id], nil
}

func (s *fakeLocationStore) List() ([]models.LocationWithCreator, error) {
	out := make([]models.LocationWithCreator, 0, len(s.locations))
	for _, l := range s.locations {
		out = append(out, models.LocationWithCreator{Location: *l})
	}
	return out, nil
}

func (s *fakeLocationStore) Create(location *models.Location) error {
	copied := *location
	s.locations[location.ID] = &copied
	return nil
}

func (s *fakeLocationStore) Update(location *models.Location) error {
	copied := *location
	s.locations[location.ID] = &copied
	return nil
}

func (s *fakeLocationStore) Delete(id string) error {
	delete(s.locations, id)
	return nil
}

func authedRequest(method, target string, body interface{}, claims middleware.UserClaims) *http.Request {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestCreateLocationValidation(t *testing.T) {
	manager := middleware.UserClaims{UserID: "mgr-1", Email: "mgr@example.com", Role: models.RoleManager}
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }

	cases := []struct {
		name    string
		req     LocationRequest
		message string
	}{
		{
			name:    "missing name",
			req:     LocationRequest{Latitude: f(40), Longitude: f(-73), Radius: f(3), StartTime: s("08:00"), EndTime: s("20:00")},
			message: "All fields are required",
		},
		{
			name:    "latitude out of range",
			req:     LocationRequest{Name: s("Clinic"), Latitude: f(91), Longitude: f(-73), Radius: f(3), StartTime: s("08:00"), EndTime: s("20:00")},
			message: "Latitude must be between -90 and 90",
		},
		{
			name:    "longitude out of range",
			req:     LocationRequest{Name: s("Clinic"), Latitude: f(40), Longitude: f(-181), Radius: f(3), StartTime: s("08:00"), EndTime: s("20:00")},
			message: "Longitude must be between -180 and 180",
		},
		{
			name:    "zero radius",
			req:     LocationRequest{Name: s("Clinic"), Latitude: f(40), Longitude: f(-73), Radius: f(0), StartTime: s("08:00"), EndTime: s("20:00")},
			message: "Radius must be greater than 0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeLocationStore()
			rec := httptest.NewRecorder()
			CreateLocation(store)(rec, authedRequest(http.MethodPost, "/api/locations", tc.req, manager))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["error"])
			assert.Empty(t, store.locations)
		})
	}
}

func TestCreateLocationZeroCoordinatesValid(t *testing.T) {
	// Zero is a real coordinate, not a missing field.
	manager := middleware.UserClaims{UserID: "mgr-1", Email: "mgr@example.com", Role: models.RoleManager}
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }

	store := newFakeLocationStore()
	rec := httptest.NewRecorder()
	req := LocationRequest{Name: s("Null Island Clinic"), Latitude: f(0), Longitude: f(0), Radius: f(1), StartTime: s("08:00"), EndTime: s("20:00")}
	CreateLocation(store)(rec, authedRequest(http.MethodPost, "/api/locations", req, manager))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Location created successfully", body["message"])
	assert.Len(t, store.locations, 1)
	for _, loc := range store.locations {
		assert.Equal(t, "mgr-1", loc.CreatedBy)
		assert.Equal(t, 0.0, loc.Latitude)
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestDeleteLocationPermissions(t *testing.T) {
	store := newFakeLocationStore()
	store.locations["loc-1"] = &models.Location{ID: "loc-1", Name: "Clinic", CreatedBy: "creator-1"}

	// A careworker who did not create the zone is refused.
	other := middleware.UserClaims{UserID: "worker-2", Email: "w2@example.com", Role: models.RoleCareworker}
	rec := httptest.NewRecorder()
	req := withURLParam(authedRequest(http.MethodDelete, "/api/locations/loc-1", nil, other), "locationID", "loc-1")
	DeleteLocation(store)(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, store.locations, "loc-1")

	// A manager may delete any zone.
	manager := middleware.UserClaims{UserID: "mgr-1", Email: "mgr@example.com", Role: models.RoleManager}
	rec = httptest.NewRecorder()
	req = withURLParam(authedRequest(http.MethodDelete, "/api/locations/loc-1", nil, manager), "locationID", "loc-1")
	DeleteLocation(store)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Location deleted successfully", body["message"])
	assert.NotContains(t, store.locations, "loc-1")
}

func TestDeleteLocationMissing(t *testing.T) {
	store := newFakeLocationStore()
	manager := middleware.UserClaims{UserID: "mgr-1", Email: "mgr@example.com", Role: models.RoleManager}

	rec := httptest.NewRecorder()
	req := withURLParam(authedRequest(http.MethodDelete, "/api/locations/nope", nil, manager), "locationID", "nope")
	DeleteLocation(store)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Location not found", body["error"])
}
