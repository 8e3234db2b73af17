package services

import (
	"fmt"
	"sync"

	"github.com/MOSHEDORA/FinDora/internal/models"
)

// PlaceCache memoizes enriched place lists by composite query key for the
// lifetime of the process. Writes are whole-entry replacements; a lost
// update between two identical requests only makes one fetch redundant.
// There is no TTL or eviction.
type PlaceCache struct {
	mu      sync.RWMutex
	entries map[string][]models.Place
}

func NewPlaceCache() *PlaceCache {
	return &PlaceCache{
		entries: make(map[string][]models.Place),
	}
}

// Get returns the cached list for key, or false when absent. The returned
// slice is a copy; callers may reorder it freely.
func (c *PlaceCache) Get(key string) ([]models.Place, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	out := make([]models.Place, len(entry))
	copy(out, entry)
	return out, true
}

// Set stores places under key, replacing any existing entry.
func (c *PlaceCache) Set(key string, places []models.Place) {
	entry := make([]models.Place, len(places))
	copy(entry, places)

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *PlaceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// NearbyCacheKey builds the composite key for a nearby search. An omitted
// category maps to "all", which is deliberately distinct from any concrete
// category value. Coordinates are fixed to 6 decimal places so logically
// identical requests share a key.
func NearbyCacheKey(lat, lng float64, radius int, category string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("nearby_%.6f_%.6f_%d_%s", lat, lng, radius, category)
}

// TextSearchCacheKey builds the composite key for a free-text search.
// Missing coordinates map to "global".
func TextSearchCacheKey(query string, lat, lng *float64) string {
	latPart, lngPart := "global", "global"
	if lat != nil {
		latPart = fmt.Sprintf("%.6f", *lat)
	}
	if lng != nil {
		lngPart = fmt.Sprintf("%.6f", *lng)
	}
	return fmt.Sprintf("search_%s_%s_%s", query, latPart, lngPart)
}
