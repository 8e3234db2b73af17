package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const otmRadiusPayload = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-74.0059, 40.7127]},
      "properties": {"xid": "N123", "name": "Joe's Pizza", "kinds": "foods,restaurants"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-74.0010, 40.7200]},
      "properties": {"xid": "", "name": "Nameless ruin", "kinds": "historic"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-74.0100, 40.7100]},
      "properties": {"xid": "N456", "name": "Grand Hotel", "address": "1 Main St", "kinds": "accomodations"}
    }
  ]
}`

func newOtmTestProvider(t *testing.T, handler http.HandlerFunc) (*OpenTripMapProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenTripMapProvider("test-key")
	if err != nil {
		t.Fatalf("NewOpenTripMapProvider failed: %v", err)
	}
	p.baseURL = srv.URL
	p.nominatimURL = srv.URL
	return p, srv
}

// TestOtmSearchNearbyNormalization sparse records map to canonical places;
// records without identity fields are dropped.
func TestOtmSearchNearbyNormalization(t *testing.T) {
	var gotKinds, gotRadius string
	p, _ := newOtmTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotKinds = r.URL.Query().Get("kinds")
		gotRadius = r.URL.Query().Get("radius")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(otmRadiusPayload))
	})

	result, err := p.SearchNearby(context.Background(), 40.7128, -74.0060, 2000, "Restaurant")
	if err != nil {
		t.Fatalf("SearchNearby failed: %v", err)
	}

	if gotKinds != "foods" {
		t.Errorf("Expected kinds=foods in upstream query, got %q", gotKinds)
	}
	if gotRadius != "2000" {
		t.Errorf("Expected radius=2000 in upstream query, got %q", gotRadius)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 places (1 rejected), got %d", len(result))
	}

	first := result[0]
	if first.ID != "N123" || first.Name != "Joe's Pizza" {
		t.Errorf("Unexpected identity: %s / %s", first.ID, first.Name)
	}
	if first.Category != "foods,restaurants" {
		t.Errorf("Expected raw kinds passthrough, got %q", first.Category)
	}
	if len(first.Types) != 2 || first.Types[0] != "foods" {
		t.Errorf("Expected types split from kinds, got %v", first.Types)
	}
	if first.Latitude == nil || *first.Latitude != "40.7127" {
		t.Errorf("Expected latitude '40.7127', got %v", first.Latitude)
	}
	if first.Longitude == nil || *first.Longitude != "-74.0059" {
		t.Errorf("Expected longitude '-74.0059', got %v", first.Longitude)
	}
	if first.Address != nil {
		t.Errorf("Expected absent address to stay nil, got %q", *first.Address)
	}
	if first.Rating != nil || first.PriceLevel != nil || first.IsOpen != nil {
		t.Error("Sparse provider must not default rating/priceLevel/isOpen")
	}

	second := result[1]
	if second.Address == nil || *second.Address != "1 Main St" {
		t.Errorf("Expected address '1 Main St', got %v", second.Address)
	}
}

// TestOtmSearchNearbyUpstreamError non-2xx surfaces as an error, no retry
func TestOtmSearchNearbyUpstreamError(t *testing.T) {
	calls := 0
	p, _ := newOtmTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	if _, err := p.SearchNearby(context.Background(), 40.7, -74.0, 1000, ""); err == nil {
		t.Fatal("Expected error on upstream failure")
	}
	if calls != 1 {
		t.Errorf("Expected exactly 1 upstream call (no retries), got %d", calls)
	}
}

// TestOtmSearchByText Nominatim results pass coordinates through as text
func TestOtmSearchByText(t *testing.T) {
	p, _ := newOtmTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"place_id": 987654, "display_name": "Central Park, New York", "lat": "40.78250725", "lon": "-73.96534300", "type": "park"}
		]`))
	})

	result, err := p.SearchByText(context.Background(), "central park", nil, nil)
	if err != nil {
		t.Fatalf("SearchByText failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("Expected 1 place, got %d", len(result))
	}

	place := result[0]
	if place.ID != "987654" {
		t.Errorf("Expected ID '987654', got %q", place.ID)
	}
	// Native precision must survive, no float round-trip.
	if place.Latitude == nil || *place.Latitude != "40.78250725" {
		t.Errorf("Expected latitude '40.78250725', got %v", place.Latitude)
	}
	if place.Category != "park" {
		t.Errorf("Expected category 'park', got %q", place.Category)
	}
	if len(place.Types) != 1 || place.Types[0] != "park" {
		t.Errorf("Expected types [park], got %v", place.Types)
	}
}

// TestNewOpenTripMapProviderRequiresKey construction fails without a key
func TestNewOpenTripMapProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenTripMapProvider(""); err == nil {
		t.Error("Expected constructor error without API key")
	}
}
