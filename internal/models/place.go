package models

// Place is the canonical, provider-agnostic place record. Every pipeline
// stage (cache, enricher, ranker) operates on this shape; provider-native
// payloads never leave the adapter that parsed them.
//
// Optional fields are pointers: a nil pointer means the provider did not
// supply the value, which is distinct from a zero value (a 0 rating would
// be misleading). Latitude/Longitude are decimal strings at the provider's
// native precision and are always set together or not at all.
type Place struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        *string  `json:"address"`
	Latitude       *string  `json:"latitude"`
	Longitude      *string  `json:"longitude"`
	Category       string   `json:"category"`
	Rating         *string  `json:"rating"`
	PriceLevel     *int     `json:"priceLevel"`
	PhotoURL       *string  `json:"photoUrl"`
	IsOpen         *bool    `json:"isOpen"`
	BusinessStatus *string  `json:"businessStatus"`
	Types          []string `json:"types"`

	// AICategory/AITags are populated only by the enricher. Nil means
	// "not yet enriched"; an enrichment failure leaves AICategory nil
	// and sets AITags to an empty slice.
	AICategory *string  `json:"aiCategory"`
	AITags     []string `json:"aiTags"`
}

// DisplayCategory returns the enriched category when present, falling back
// to the provider-native category.
func (p *Place) DisplayCategory() string {
	if p.AICategory != nil && *p.AICategory != "" {
		return *p.AICategory
	}
	return p.Category
}

// HasCoordinates reports whether both latitude and longitude are set.
func (p *Place) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
