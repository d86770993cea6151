package handlers

import (
	"net/http"
	"strconv"

	"github.com/greencycle/greencycle/backend/internal/domain/providers"
)

// GeolocationHandler handles geolocation HTTP requests
type GeolocationHandler struct {
	provider providers.GeolocationProvider
}

// NewGeolocationHandler creates a new geolocation handler
func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{provider: provider}
}

// ReverseGeocode handles GET /api/reverse-geocode
func (h *GeolocationHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid latitude parameter")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid longitude parameter")
		return
	}

	address, err := h.provider.ReverseGeocode(r.Context(), lat, lon)
	if err != nil {
		// Clients fall back to raw coordinates
		respondWithError(w, http.StatusBadGateway, "reverse geocoding unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, address)
}

// Geocode handles GET /api/geocode
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	places, err := h.provider.SearchPlaces(r.Context(), q, limit)
	if err != nil {
		// Clients show an empty suggestion list
		respondWithError(w, http.StatusBadGateway, "place search unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"places": places,
		"count":  len(places),
	})
}
