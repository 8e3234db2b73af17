package ranker

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/MOSHEDORA/FinDora/internal/geo"
	"github.com/MOSHEDORA/FinDora/internal/models"
)

// Sort keys. Popularity and reviews are accepted but currently no-ops:
// neither provider exposes a usable signal for them yet.
const (
	SortByDistance   = "distance"
	SortByRating     = "rating"
	SortByPopularity = "popularity"
	SortByReviews    = "reviews"
)

// Filters are AND-combined and applied before sorting.
type Filters struct {
	// Category is matched case-insensitively as a substring against the
	// enriched category when present, else the provider category.
	Category string
	// MinRating excludes places whose rating is absent or unparseable.
	MinRating float64
	// PriceLevels excludes places whose price level is absent.
	PriceLevels []int
}

// Location is the reference point for distance sorting.
type Location struct {
	Lat float64
	Lng float64
}

// Rank filters then sorts a place list. Sorting is stable: ties keep their
// original relative order. A nil reference location disables distance
// sorting.
func Rank(places []models.Place, filters Filters, sortBy string, ref *Location) []models.Place {
	out := make([]models.Place, 0, len(places))
	for _, p := range places {
		if matches(&p, &filters) {
			out = append(out, p)
		}
	}

	switch sortBy {
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			return ratingValue(&out[i]) > ratingValue(&out[j])
		})
	case SortByDistance:
		if ref != nil {
			sort.SliceStable(out, func(i, j int) bool {
				return distanceValue(ref, &out[i]) < distanceValue(ref, &out[j])
			})
		}
	}

	return out
}

func matches(p *models.Place, f *Filters) bool {
	if f.Category != "" && f.Category != "All Categories" {
		if !strings.Contains(strings.ToLower(p.DisplayCategory()), strings.ToLower(f.Category)) {
			return false
		}
	}

	if f.MinRating > 0 {
		if p.Rating == nil {
			return false
		}
		rating, err := strconv.ParseFloat(*p.Rating, 64)
		if err != nil || rating < f.MinRating {
			return false
		}
	}

	if len(f.PriceLevels) > 0 {
		if p.PriceLevel == nil {
			return false
		}
		found := false
		for _, level := range f.PriceLevels {
			if *p.PriceLevel == level {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// ratingValue treats absent or unparseable ratings as 0.
func ratingValue(p *models.Place) float64 {
	if p.Rating == nil {
		return 0
	}
	rating, err := strconv.ParseFloat(*p.Rating, 64)
	if err != nil {
		return 0
	}
	return rating
}

// distanceValue treats places without coordinates as infinitely far, so
// they sort last.
func distanceValue(ref *Location, p *models.Place) float64 {
	if !p.HasCoordinates() {
		return math.Inf(1)
	}
	lat, err1 := strconv.ParseFloat(*p.Latitude, 64)
	lng, err2 := strconv.ParseFloat(*p.Longitude, 64)
	if err1 != nil || err2 != nil {
		return math.Inf(1)
	}
	return geo.Haversine(ref.Lat, ref.Lng, lat, lng)
}
