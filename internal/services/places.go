package services

import (
	"context"

	"github.com/MOSHEDORA/FinDora/internal/enricher"
	"github.com/MOSHEDORA/FinDora/internal/logger"
	"github.com/MOSHEDORA/FinDora/internal/middleware"
	"github.com/MOSHEDORA/FinDora/internal/models"
	"github.com/MOSHEDORA/FinDora/internal/places"
)

// PlacesService runs the nearby-places pipeline: cache lookup by composite
// key, provider fetch + normalization on miss, AI categorization, then
// cache store. Enrichment failures never fail a request; provider failures
// always do.
type PlacesService struct {
	provider places.Provider
	enricher *enricher.Enricher
	cache    *PlaceCache
}

func NewPlacesService(provider places.Provider, e *enricher.Enricher, cache *PlaceCache) *PlacesService {
	return &PlacesService{
		provider: provider,
		enricher: e,
		cache:    cache,
	}
}

// Nearby returns enriched places within radius meters of (lat, lng).
func (s *PlacesService) Nearby(ctx context.Context, lat, lng float64, radius int, category string) ([]models.Place, error) {
	log := logger.GetLogger("services.places")

	key := NearbyCacheKey(lat, lng, radius, category)
	if cached, ok := s.cache.Get(key); ok {
		middleware.RecordCacheHit()
		log.Infof("Cache hit for %s (%d places)", key, len(cached))
		return cached, nil
	}

	middleware.RecordUpstreamCall(s.provider.Name())
	found, err := s.provider.SearchNearby(ctx, lat, lng, radius, category)
	if err != nil {
		return nil, err
	}

	enriched := s.enricher.CategorizePlaces(ctx, found)
	s.cache.Set(key, enriched)

	log.Infof("Fetched %d places for %s", len(enriched), key)
	return enriched, nil
}

// TextSearch resolves a free-text query to enriched places. lat/lng are an
// optional bias point.
func (s *PlacesService) TextSearch(ctx context.Context, query string, lat, lng *float64) ([]models.Place, error) {
	log := logger.GetLogger("services.places")

	key := TextSearchCacheKey(query, lat, lng)
	if cached, ok := s.cache.Get(key); ok {
		middleware.RecordCacheHit()
		log.Infof("Cache hit for %s (%d places)", key, len(cached))
		return cached, nil
	}

	middleware.RecordUpstreamCall(s.provider.Name())
	found, err := s.provider.SearchByText(ctx, query, lat, lng)
	if err != nil {
		return nil, err
	}

	enriched := s.enricher.CategorizePlaces(ctx, found)
	s.cache.Set(key, enriched)

	log.Infof("Fetched %d places for %s", len(enriched), key)
	return enriched, nil
}
