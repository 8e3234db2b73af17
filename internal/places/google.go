package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/logger"
	"github.com/MOSHEDORA/FinDora/internal/models"
)

const (
	defaultGoogleNearbyURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	defaultGoogleTextURL   = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	googlePhotoURL         = "https://maps.googleapis.com/maps/api/place/photo"
	googlePhotoMaxWidth    = 400
)

// GoogleProvider is the "rich" provider: records can carry rating, price
// level, photo, open-now state and business status in addition to the
// sparse fields.
type GoogleProvider struct {
	apiKey     string
	nearbyURL  string
	textURL    string
	httpClient *http.Client
}

// NewGoogleProvider fails when no API key is configured.
func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("Google Places API key is required (set GOOGLE_PLACES_API_KEY)")
	}
	return &GoogleProvider{
		apiKey:    apiKey,
		nearbyURL: defaultGoogleNearbyURL,
		textURL:   defaultGoogleTextURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// googlePlaceResult is one result from the Places nearby/text search APIs.
type googlePlaceResult struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Address  string `json:"formatted_address"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating       *float64 `json:"rating"`
	PriceLevel   *int     `json:"price_level"`
	OpeningHours *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours"`
	BusinessStatus string   `json:"business_status"`
	Types          []string `json:"types"`
	Photos         []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

type googlePlacesResponse struct {
	Results []googlePlaceResult `json:"results"`
	Status  string              `json:"status"`
}

func (p *GoogleProvider) Name() string {
	return config.ProviderGoogle
}

func (p *GoogleProvider) SearchNearby(ctx context.Context, lat, lng float64, radius int, category string) ([]models.Place, error) {
	log := logger.GetLogger("places.google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.nearbyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Add("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Add("radius", strconv.Itoa(radius))
	q.Add("key", p.apiKey)
	if strings.TrimSpace(category) != "" {
		q.Add("type", GoogleType(category))
	}
	req.URL.RawQuery = q.Encode()

	log.Infof("Google Places nearby search lat=%.6f lng=%.6f radius=%d type=%s",
		lat, lng, radius, q.Get("type"))

	return p.doSearch(req)
}

func (p *GoogleProvider) SearchByText(ctx context.Context, query string, lat, lng *float64) ([]models.Place, error) {
	log := logger.GetLogger("places.google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.textURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Add("query", query)
	q.Add("key", p.apiKey)
	if lat != nil && lng != nil {
		q.Add("location", fmt.Sprintf("%f,%f", *lat, *lng))
	}
	req.URL.RawQuery = q.Encode()

	log.Infof("Google Places text search query=%q", query)

	return p.doSearch(req)
}

func (p *GoogleProvider) doSearch(req *http.Request) ([]models.Place, error) {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google places error: %s", resp.Status)
	}

	var result googlePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode google places response: %w", err)
	}

	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("google places error: %s", result.Status)
	}

	out := make([]models.Place, 0, len(result.Results))
	for _, r := range result.Results {
		if r.PlaceID == "" || r.Name == "" {
			continue
		}
		out = append(out, p.convertResult(r))
	}
	return out, nil
}

// convertResult normalizes one Google result into the canonical Place
// shape. Absent provider fields stay absent, never defaulted.
func (p *GoogleProvider) convertResult(r googlePlaceResult) models.Place {
	place := models.Place{
		ID:       r.PlaceID,
		Name:     r.Name,
		Category: CategoryFromTypes(r.Types),
		Types:    r.Types,
	}
	if place.Types == nil {
		place.Types = []string{}
	}

	if addr := firstNonEmpty(r.Vicinity, r.Address); addr != "" {
		place.Address = &addr
	}

	lat := strconv.FormatFloat(r.Geometry.Location.Lat, 'f', -1, 64)
	lng := strconv.FormatFloat(r.Geometry.Location.Lng, 'f', -1, 64)
	place.Latitude = &lat
	place.Longitude = &lng

	if r.Rating != nil {
		rating := strconv.FormatFloat(*r.Rating, 'f', -1, 64)
		place.Rating = &rating
	}
	if r.PriceLevel != nil {
		pl := *r.PriceLevel
		place.PriceLevel = &pl
	}
	if r.OpeningHours != nil {
		open := r.OpeningHours.OpenNow
		place.IsOpen = &open
	}
	if r.BusinessStatus != "" {
		status := r.BusinessStatus
		place.BusinessStatus = &status
	}
	if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
		photo := fmt.Sprintf("%s?maxwidth=%d&photo_reference=%s&key=%s",
			googlePhotoURL, googlePhotoMaxWidth, r.Photos[0].PhotoReference, p.apiKey)
		place.PhotoURL = &photo
	}

	return place
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
