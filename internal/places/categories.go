package places

import "strings"

// Category mapping is provider-specific: swapping providers swaps the
// table, never the caller. Lookups are case-insensitive and an unmapped
// category falls back to a broad default term, never an error.

// otmKinds maps user-facing categories to OpenTripMap "kinds".
var otmKinds = map[string]string{
	"restaurant":       "foods",
	"cafe":             "foods",
	"bar":              "foods",
	"shopping":         "shops",
	"entertainment":    "entertainment,amusements,cultural,theatres",
	"health & fitness": "sport",
	"services":         "commercial",
	"lodging":          "accomodations",
	"other":            "interesting_places",
}

const otmFallbackKinds = "interesting_places"

// OtmKinds returns the OpenTripMap kinds term for a user-facing category.
func OtmKinds(category string) string {
	if kinds, ok := otmKinds[strings.ToLower(category)]; ok {
		return kinds
	}
	return otmFallbackKinds
}

// googleTypes maps user-facing categories to Google Places type terms.
var googleTypes = map[string]string{
	"restaurant":       "restaurant",
	"cafe":             "cafe",
	"bar":              "bar",
	"shopping":         "shopping_mall",
	"entertainment":    "movie_theater",
	"health & fitness": "gym",
	"services":         "point_of_interest",
	"lodging":          "lodging",
	"other":            "point_of_interest",
}

const googleFallbackType = "point_of_interest"

// GoogleType returns the Google Places type term for a user-facing category.
func GoogleType(category string) string {
	if t, ok := googleTypes[strings.ToLower(category)]; ok {
		return t
	}
	return googleFallbackType
}

// categoryKeywords is the priority-ordered table used to derive a canonical
// category from a place's raw type tags: the first keyword contained in any
// tag wins.
var categoryKeywords = []struct {
	keyword string
	label   string
}{
	{"restaurant", "Restaurant"},
	{"cafe", "Cafe"},
	{"bakery", "Cafe"},
	{"bar", "Bar"},
	{"night_club", "Bar"},
	{"lodging", "Lodging"},
	{"shopping", "Shopping"},
	{"store", "Shopping"},
	{"gym", "Health & Fitness"},
	{"spa", "Health & Fitness"},
	{"hospital", "Health & Fitness"},
	{"pharmacy", "Health & Fitness"},
	{"movie", "Entertainment"},
	{"museum", "Entertainment"},
	{"amusement", "Entertainment"},
	{"park", "Entertainment"},
	{"bank", "Services"},
	{"laundry", "Services"},
	{"car_repair", "Services"},
}

// CategoryFromTypes derives a user-facing category from provider type tags.
// No match means "Other".
func CategoryFromTypes(types []string) string {
	for _, ck := range categoryKeywords {
		for _, t := range types {
			if strings.Contains(strings.ToLower(t), ck.keyword) {
				return ck.label
			}
		}
	}
	return "Other"
}
