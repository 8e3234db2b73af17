package places

import (
	"context"
	"fmt"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/models"
)

// Provider is implemented by each upstream place data source. The rest of
// the pipeline depends only on this interface and the canonical Place
// shape, so providers are interchangeable by configuration.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// SearchNearby returns places within radius meters of (lat, lng),
	// optionally restricted to a user-facing category.
	SearchNearby(ctx context.Context, lat, lng float64, radius int, category string) ([]models.Place, error)

	// SearchByText resolves a free-text query to places. lat/lng are an
	// optional bias point; nil means a global search.
	SearchByText(ctx context.Context, query string, lat, lng *float64) ([]models.Place, error)
}

// NewProvider builds the configured provider. A missing API key for the
// active provider is a construction error: the feature is unavailable, not
// silently degraded.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.ActiveProvider() {
	case config.ProviderGoogle:
		return NewGoogleProvider(cfg.GooglePlacesAPIKey)
	case config.ProviderOpenTripMap:
		return NewOpenTripMapProvider(cfg.OpenTripMapAPIKey)
	default:
		return nil, fmt.Errorf("unknown places provider: %s", cfg.ActiveProvider())
	}
}
