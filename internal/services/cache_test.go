package services

import (
	"testing"

	"github.com/MOSHEDORA/FinDora/internal/models"
)

func TestPlaceCacheRoundTrip(t *testing.T) {
	cache := NewPlaceCache()

	key := NearbyCacheKey(37.5665, 126.9780, 2000, "restaurant")
	stored := []models.Place{
		{ID: "a", Name: "Alpha", Category: "Restaurant"},
		{ID: "b", Name: "Beta", Category: "Cafe"},
	}
	cache.Set(key, stored)

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected cached places: %+v", got)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", cache.Len())
	}
}

func TestPlaceCacheMiss(t *testing.T) {
	cache := NewPlaceCache()

	if _, ok := cache.Get("nearby_0.000000_0.000000_2000_all"); ok {
		t.Fatal("expected cache miss for absent key")
	}
}

func TestPlaceCacheGetReturnsCopy(t *testing.T) {
	cache := NewPlaceCache()
	cache.Set("k", []models.Place{{ID: "a"}, {ID: "b"}})

	got, _ := cache.Get("k")
	got[0], got[1] = got[1], got[0]

	again, _ := cache.Get("k")
	if again[0].ID != "a" {
		t.Fatal("reordering a returned slice must not affect the cached entry")
	}
}

func TestNearbyCacheKey(t *testing.T) {
	base := NearbyCacheKey(37.5665, 126.9780, 2000, "restaurant")
	if base != "nearby_37.566500_126.978000_2000_restaurant" {
		t.Fatalf("unexpected key: %s", base)
	}

	// Radius, category and "no category" must all produce distinct keys.
	if NearbyCacheKey(37.5665, 126.9780, 5000, "restaurant") == base {
		t.Fatal("radius must be part of the key")
	}
	if NearbyCacheKey(37.5665, 126.9780, 2000, "cafe") == base {
		t.Fatal("category must be part of the key")
	}
	all := NearbyCacheKey(37.5665, 126.9780, 2000, "")
	if all != "nearby_37.566500_126.978000_2000_all" {
		t.Fatalf("omitted category should map to all, got %s", all)
	}
}

func TestTextSearchCacheKey(t *testing.T) {
	lat, lng := 37.5665, 126.9780

	biased := TextSearchCacheKey("coffee", &lat, &lng)
	if biased != "search_coffee_37.566500_126.978000" {
		t.Fatalf("unexpected key: %s", biased)
	}

	global := TextSearchCacheKey("coffee", nil, nil)
	if global != "search_coffee_global_global" {
		t.Fatalf("missing coordinates should map to global, got %s", global)
	}
	if biased == global {
		t.Fatal("biased and global searches must not share a key")
	}
}
