package geolocation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencycle/greencycle/backend/internal/adapters/providers/geolocation"
)

type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.data[key], nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Increment(ctx context.Context, key string, expirationSeconds int) (int64, error) {
	return 1, nil
}

func TestNominatimProvider_ReverseGeocode(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "12.9716", r.URL.Query().Get("lat"))
		assert.Contains(t, r.Header.Get("User-Agent"), "greencycle-backend")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"display_name": "MG Road, Bangalore, Karnataka, India",
			"address": {"road": "MG Road", "city": "Bangalore", "state": "Karnataka", "country": "India"}
		}`))
	}))
	defer server.Close()

	cache := newMemoryCache()
	provider := geolocation.NewNominatimProviderWithOptions("in", "ops@greencycle.example", cache, server.URL, server.Client())

	address, err := provider.ReverseGeocode(context.Background(), 12.9716, 77.5946)

	require.NoError(t, err)
	assert.Equal(t, "MG Road, Bangalore, Karnataka, India", address.DisplayName)
	assert.Equal(t, "Bangalore", address.City)
	assert.Equal(t, "India", address.Country)
	assert.Equal(t, 1, requests)

	// Second lookup for the same coordinates is served from cache
	cached, err := provider.ReverseGeocode(context.Background(), 12.9716, 77.5946)
	require.NoError(t, err)
	assert.Equal(t, address.DisplayName, cached.DisplayName)
	assert.Equal(t, 1, requests)
}

func TestNominatimProvider_ReverseGeocode_FallsBackToTown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"display_name": "High Street, Oakham, England, United Kingdom",
			"address": {"road": "High Street", "town": "Oakham", "country": "United Kingdom"}
		}`))
	}))
	defer server.Close()

	provider := geolocation.NewNominatimProviderWithOptions("gb", "", nil, server.URL, server.Client())

	address, err := provider.ReverseGeocode(context.Background(), 52.6705, -0.7333)

	require.NoError(t, err)
	assert.Equal(t, "Oakham", address.City)
}

func TestNominatimProvider_ReverseGeocode_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer server.Close()

	provider := geolocation.NewNominatimProviderWithOptions("", "", nil, server.URL, server.Client())

	_, err := provider.ReverseGeocode(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestNominatimProvider_SearchPlaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "koramangala", r.URL.Query().Get("q"))
		assert.Equal(t, "in,us", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Write([]byte(`[
			{"display_name": "Koramangala, Bangalore, India", "lat": "12.9352", "lon": "77.6245"},
			{"display_name": "Koramangala Industrial Layout, Bangalore, India", "lat": "12.9421", "lon": "77.6310"}
		]`))
	}))
	defer server.Close()

	provider := geolocation.NewNominatimProviderWithOptions("in,us", "", nil, server.URL, server.Client())

	places, err := provider.SearchPlaces(context.Background(), "koramangala", 0)

	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Koramangala, Bangalore, India", places[0].DisplayName)
	assert.InDelta(t, 12.9352, places[0].Latitude, 0.0001)
	assert.InDelta(t, 77.6245, places[0].Longitude, 0.0001)
}

func TestNominatimProvider_SearchPlaces_RequiresQuery(t *testing.T) {
	provider := geolocation.NewNominatimProviderWithOptions("", "", nil, "http://127.0.0.1:1", nil)

	_, err := provider.SearchPlaces(context.Background(), "   ", 5)
	assert.Error(t, err)
}

func TestNominatimProvider_SearchPlaces_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := geolocation.NewNominatimProviderWithOptions("", "", nil, server.URL, server.Client())

	_, err := provider.SearchPlaces(context.Background(), "anywhere", 5)
	assert.Error(t, err)
}
