package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/greencycle/greencycle/backend/internal/domain/providers"
)

const (
	nominatimBaseURL       = "https://nominatim.openstreetmap.org"
	defaultCountryCodes    = "in,us,gb,ca,au"
	defaultReverseCacheTTL = 60 * 60 * 24 * 30
	defaultSearchCacheTTL  = 60 * 60 * 24
	defaultHTTPTimeout     = 8 * time.Second
)

// NominatimProvider implements the GeolocationProvider using the public
// Nominatim API. Requests carry a contact address in the User-Agent per
// the usage policy, and a circuit breaker keeps a flapping upstream from
// stalling every lookup.
type NominatimProvider struct {
	baseURL      string
	countryCodes string
	contact      string
	httpClient   *http.Client
	cache        providers.CacheProvider
	breaker      *gobreaker.CircuitBreaker
}

// NewNominatimProvider creates a new Nominatim geolocation provider.
func NewNominatimProvider(countryCodes, contact string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewNominatimProviderWithOptions(countryCodes, contact, cache, nominatimBaseURL, nil)
}

// NewNominatimProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewNominatimProviderWithOptions(countryCodes, contact string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = nominatimBaseURL
	}
	if strings.TrimSpace(countryCodes) == "" {
		countryCodes = defaultCountryCodes
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &NominatimProvider{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		countryCodes: countryCodes,
		contact:      contact,
		httpClient:   httpClient,
		cache:        cache,
		breaker:      breaker,
	}
}

// ReverseGeocode converts coordinates to an address.
func (p *NominatimProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.Address, error) {
	cacheKey := "geo:reverse:" + hashKey(fmt.Sprintf("%.5f,%.5f", lat, lon))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var address providers.Address
			if err := json.Unmarshal(cached, &address); err == nil && address.DisplayName != "" {
				return &address, nil
			}
		}
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	var payload nominatimReverseResponse
	if err := p.doRequest(ctx, "/reverse", params, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("reverse geocode failed: %s", payload.Error)
	}
	if payload.DisplayName == "" {
		return nil, fmt.Errorf("no results for coordinates")
	}

	address := providers.Address{
		DisplayName: payload.DisplayName,
		Road:        payload.Address.Road,
		City:        firstNonEmpty(payload.Address.City, payload.Address.Town, payload.Address.Village),
		State:       payload.Address.State,
		Country:     payload.Address.Country,
		Latitude:    lat,
		Longitude:   lon,
	}

	if p.cache != nil {
		if data, err := json.Marshal(address); err == nil {
			_ = p.cache.Set(ctx, cacheKey, data, defaultReverseCacheTTL)
		}
	}

	return &address, nil
}

// SearchPlaces runs a free-text place search restricted to the configured
// country allow-list.
func (p *NominatimProvider) SearchPlaces(ctx context.Context, query string, limit int) ([]providers.Place, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 {
		limit = 5
	}

	cacheKey := "geo:search:" + hashKey(strings.ToLower(trimmed)+":"+strconv.Itoa(limit))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var places []providers.Place
			if err := json.Unmarshal(cached, &places); err == nil {
				return places, nil
			}
		}
	}

	params := url.Values{}
	params.Set("q", trimmed)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("countrycodes", p.countryCodes)

	var payload []nominatimSearchResult
	if err := p.doRequest(ctx, "/search", params, &payload); err != nil {
		return nil, err
	}

	places := make([]providers.Place, 0, len(payload))
	for _, result := range payload {
		lat, _ := strconv.ParseFloat(result.Lat, 64)
		lon, _ := strconv.ParseFloat(result.Lon, 64)
		places = append(places, providers.Place{
			DisplayName: result.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
		})
	}

	if p.cache != nil {
		if data, err := json.Marshal(places); err == nil {
			_ = p.cache.Set(ctx, cacheKey, data, defaultSearchCacheTTL)
		}
	}

	return places, nil
}

func (p *NominatimProvider) doRequest(ctx context.Context, path string, params url.Values, out interface{}) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		reqURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build geolocation request: %w", err)
		}
		req.Header.Set("User-Agent", p.userAgent())

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("geolocation request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("geolocation request returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
		}
		return nil, nil
	})
	return err
}

func (p *NominatimProvider) userAgent() string {
	if p.contact != "" {
		return "greencycle-backend/1.0 (" + p.contact + ")"
	}
	return "greencycle-backend/1.0"
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type nominatimReverseResponse struct {
	DisplayName string           `json:"display_name"`
	Error       string           `json:"error,omitempty"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	Road    string `json:"road"`
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type nominatimSearchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
