package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/logger"
	"github.com/MOSHEDORA/FinDora/internal/models"
)

const (
	defaultOtmBaseURL       = "https://api.opentripmap.com/0.1/en/places/radius"
	defaultNominatimBaseURL = "https://nominatim.openstreetmap.org/search"
)

// OpenTripMapProvider is the "sparse" provider: records carry only name,
// coordinates and category kinds. Free-text search is served by the OSM
// Nominatim geocoder.
type OpenTripMapProvider struct {
	apiKey       string
	baseURL      string
	nominatimURL string
	httpClient   *http.Client
}

// NewOpenTripMapProvider fails when no API key is configured.
func NewOpenTripMapProvider(apiKey string) (*OpenTripMapProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenTripMap API key is required (set OPENTRIPMAP_API_KEY)")
	}
	return &OpenTripMapProvider{
		apiKey:       apiKey,
		baseURL:      defaultOtmBaseURL,
		nominatimURL: defaultNominatimBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// otmFeature is one GeoJSON feature from the radius endpoint.
type otmFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
	Properties struct {
		XID     string `json:"xid"`
		Name    string `json:"name"`
		Address string `json:"address"`
		Kinds   string `json:"kinds"`
	} `json:"properties"`
}

type otmRadiusResponse struct {
	Features []otmFeature `json:"features"`
}

func (p *OpenTripMapProvider) Name() string {
	return config.ProviderOpenTripMap
}

func (p *OpenTripMapProvider) SearchNearby(ctx context.Context, lat, lng float64, radius int, category string) ([]models.Place, error) {
	log := logger.GetLogger("places.opentripmap")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Add("radius", strconv.Itoa(radius))
	q.Add("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Add("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Add("apikey", p.apiKey)
	if strings.TrimSpace(category) != "" {
		q.Add("kinds", OtmKinds(category))
	}
	req.URL.RawQuery = q.Encode()

	log.Infof("OpenTripMap radius search lat=%.6f lng=%.6f radius=%d kinds=%s",
		lat, lng, radius, q.Get("kinds"))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opentripmap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opentripmap error: %s", resp.Status)
	}

	var result otmRadiusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode opentripmap response: %w", err)
	}

	out := make([]models.Place, 0, len(result.Features))
	for _, f := range result.Features {
		// Records without identity fields are rejected before
		// normalization rather than coerced.
		if f.Properties.XID == "" || f.Properties.Name == "" {
			continue
		}
		out = append(out, p.convertFeature(f))
	}
	return out, nil
}

// convertFeature normalizes one OpenTripMap feature into the canonical
// Place shape. Fields the provider does not supply stay absent.
func (p *OpenTripMapProvider) convertFeature(f otmFeature) models.Place {
	place := models.Place{
		ID:       f.Properties.XID,
		Name:     f.Properties.Name,
		Category: f.Properties.Kinds,
	}
	if f.Properties.Address != "" {
		addr := f.Properties.Address
		place.Address = &addr
	}
	if len(f.Geometry.Coordinates) == 2 {
		lat := strconv.FormatFloat(f.Geometry.Coordinates[1], 'f', -1, 64)
		lng := strconv.FormatFloat(f.Geometry.Coordinates[0], 'f', -1, 64)
		place.Latitude = &lat
		place.Longitude = &lng
	}
	if f.Properties.Kinds != "" {
		place.Types = strings.Split(f.Properties.Kinds, ",")
	} else {
		place.Types = []string{}
	}
	return place
}

// nominatimResult is one geocoding hit. Coordinates are already decimal
// strings and are passed through at native precision.
type nominatimResult struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	Type        string      `json:"type"`
}

func (p *OpenTripMapProvider) SearchByText(ctx context.Context, query string, lat, lng *float64) ([]models.Place, error) {
	log := logger.GetLogger("places.opentripmap")

	reqURL := p.nominatimURL + "?format=json&q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log.Infof("Nominatim search query=%q", query)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim error: %s", resp.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	out := make([]models.Place, 0, len(results))
	for _, r := range results {
		if r.PlaceID.String() == "" || r.DisplayName == "" {
			continue
		}
		out = append(out, p.convertNominatim(r))
	}
	return out, nil
}

func (p *OpenTripMapProvider) convertNominatim(r nominatimResult) models.Place {
	addr := r.DisplayName
	place := models.Place{
		ID:       r.PlaceID.String(),
		Name:     r.DisplayName,
		Address:  &addr,
		Category: r.Type,
		Types:    []string{},
	}
	if r.Lat != "" && r.Lon != "" {
		lat, lon := r.Lat, r.Lon
		place.Latitude = &lat
		place.Longitude = &lon
	}
	if r.Type != "" {
		place.Types = []string{r.Type}
	}
	return place
}
