package geolocation

import (
	"context"
	"fmt"

	"github.com/greencycle/greencycle/backend/internal/domain/providers"
)

// MockGeolocationProvider is a deterministic provider for local
// development and tests
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// ReverseGeocode returns a synthetic address built from the coordinates
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.Address, error) {
	return &providers.Address{
		DisplayName: fmt.Sprintf("Mock Street, Mock City (%.4f, %.4f)", lat, lon),
		Road:        "Mock Street",
		City:        "Mock City",
		State:       "Mock State",
		Country:     "Mockland",
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}

// SearchPlaces returns a single suggestion echoing the query
func (m *MockGeolocationProvider) SearchPlaces(ctx context.Context, query string, limit int) ([]providers.Place, error) {
	return []providers.Place{
		{
			DisplayName: query + ", Mock City, Mockland",
			Latitude:    12.9716,
			Longitude:   77.5946,
		},
	}, nil
}
