package providers

import (
	"context"
)

// Address is a resolved street address
type Address struct {
	DisplayName string  `json:"display_name"`
	Road        string  `json:"road,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Country     string  `json:"country,omitempty"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
}

// Place is a free-text search suggestion
type Place struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
}

// GeolocationProvider resolves coordinates and place queries.
// Implementations degrade gracefully: clients fall back to raw
// coordinates or an empty suggestion list on failure.
type GeolocationProvider interface {
	// ReverseGeocode converts coordinates to an address
	ReverseGeocode(ctx context.Context, lat, lon float64) (*Address, error)

	// SearchPlaces runs a free-text place search restricted to the
	// configured country allow-list
	SearchPlaces(ctx context.Context, query string, limit int) ([]Place, error)
}
