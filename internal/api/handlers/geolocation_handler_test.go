package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencycle/greencycle/backend/internal/adapters/providers/geolocation"
	"github.com/greencycle/greencycle/backend/internal/api/handlers"
	"github.com/greencycle/greencycle/backend/internal/domain/providers"
)

type failingGeoProvider struct{}

func (f *failingGeoProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.Address, error) {
	return nil, errors.New("upstream down")
}

func (f *failingGeoProvider) SearchPlaces(ctx context.Context, query string, limit int) ([]providers.Place, error) {
	return nil, errors.New("upstream down")
}

func TestGeolocationHandler_ReverseGeocode(t *testing.T) {
	t.Run("resolves coordinates", func(t *testing.T) {
		handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

		req := httptest.NewRequest("GET", "/api/reverse-geocode?lat=12.9716&lon=77.5946", nil)
		w := httptest.NewRecorder()

		handler.ReverseGeocode(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var address providers.Address
		require.NoError(t, json.NewDecoder(w.Body).Decode(&address))
		assert.NotEmpty(t, address.DisplayName)
		assert.InDelta(t, 12.9716, address.Latitude, 0.0001)
	})

	t.Run("rejects malformed coordinates", func(t *testing.T) {
		handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

		req := httptest.NewRequest("GET", "/api/reverse-geocode?lat=abc&lon=77.5946", nil)
		w := httptest.NewRecorder()

		handler.ReverseGeocode(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps provider failure to 502", func(t *testing.T) {
		handler := handlers.NewGeolocationHandler(&failingGeoProvider{})

		req := httptest.NewRequest("GET", "/api/reverse-geocode?lat=12.9716&lon=77.5946", nil)
		w := httptest.NewRecorder()

		handler.ReverseGeocode(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestGeolocationHandler_Geocode(t *testing.T) {
	t.Run("returns suggestions", func(t *testing.T) {
		handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

		req := httptest.NewRequest("GET", "/api/geocode?q=koramangala", nil)
		w := httptest.NewRecorder()

		handler.Geocode(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Places []providers.Place `json:"places"`
			Count  int               `json:"count"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 1, response.Count)
		assert.Contains(t, response.Places[0].DisplayName, "koramangala")
	})

	t.Run("requires a query", func(t *testing.T) {
		handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

		req := httptest.NewRequest("GET", "/api/geocode", nil)
		w := httptest.NewRecorder()

		handler.Geocode(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
