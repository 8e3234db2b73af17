package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/database"
	"github.com/MOSHEDORA/FinDora/internal/enricher"
	"github.com/MOSHEDORA/FinDora/internal/models"
	"github.com/MOSHEDORA/FinDora/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeProvider struct {
	calls  int
	places []models.Place
	err    error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) SearchNearby(_ context.Context, _, _ float64, _ int, _ string) ([]models.Place, error) {
	p.calls++
	return p.places, p.err
}

func (p *fakeProvider) SearchByText(_ context.Context, _ string, _, _ *float64) ([]models.Place, error) {
	p.calls++
	return p.places, p.err
}

func strptr(s string) *string { return &s }

func newTestApp(t *testing.T, provider *fakeProvider) *fiber.App {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db := &database.DB{DB: gdb}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecretKey:      "test-secret",
		JWTExpireHours:    1,
		EnrichTimeoutSecs: 1,
	}

	placesService := services.NewPlacesService(provider, enricher.New(cfg), services.NewPlaceCache())

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	api := app.Group("/api")
	SetupAuthRoutes(api.Group("/auth"), db, cfg)
	SetupPlacesRoutes(api.Group("/places"), placesService, cfg)
	SetupHistoryRoutes(api.Group("/search-history"), db, cfg)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, _ := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email": "test@example.com", "password": "pw", "name": "Tester",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": "test@example.com", "password": "pw",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login response missing token")
	}
	return token
}

func TestRegisterExcludesPassword(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email": "a@example.com", "password": "secret", "name": "A",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	user, _ := body["user"].(map[string]any)
	if user == nil {
		t.Fatal("response missing user")
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("password must not appear in the response")
	}
	if user["email"] != "a@example.com" {
		t.Fatalf("unexpected email: %v", user["email"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})
	registerAndLogin(t, app)

	resp, _ := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": "test@example.com", "password": "nope",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestGetMe(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})
	token := registerAndLogin(t, app)

	resp, body := doJSON(t, app, "GET", "/api/auth/me", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	user, _ := body["user"].(map[string]any)
	if user == nil || user["email"] != "test@example.com" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestNearbyRequiresAuth(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})

	resp, _ := doJSON(t, app, "GET", "/api/places/nearby?lat=1&lng=2", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "GET", "/api/places/nearby?lat=1&lng=2", "garbage-token", nil)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 with invalid token, got %d", resp.StatusCode)
	}
}

func TestNearbyValidation(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})
	token := registerAndLogin(t, app)

	resp, body := doJSON(t, app, "GET", "/api/places/nearby?lat=37.5", token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without lng, got %d", resp.StatusCode)
	}
	if body["error"] != "Latitude and longitude are required" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestNearbyReturnsPlacesAndCaches(t *testing.T) {
	provider := &fakeProvider{places: []models.Place{
		{ID: "p1", Name: "Cafe One", Category: "Cafe"},
		{ID: "p2", Name: "Cafe Two", Category: "Cafe"},
	}}
	app := newTestApp(t, provider)
	token := registerAndLogin(t, app)

	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, app, "GET", "/api/places/nearby?lat=37.5665&lng=126.9780", token, nil)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		list, _ := body["places"].([]any)
		if len(list) != 2 {
			t.Fatalf("expected 2 places, got %v", body)
		}
	}
	if provider.calls != 1 {
		t.Fatalf("second request should hit the cache, got %d upstream calls", provider.calls)
	}
}

func TestNearbyRankingParams(t *testing.T) {
	provider := &fakeProvider{places: []models.Place{
		{ID: "low", Name: "Low", Category: "Restaurant", Rating: strptr("2.0")},
		{ID: "high", Name: "High", Category: "Restaurant", Rating: strptr("4.5")},
		{ID: "norating", Name: "NoRating", Category: "Restaurant"},
	}}
	app := newTestApp(t, provider)
	token := registerAndLogin(t, app)

	resp, body := doJSON(t, app, "GET", "/api/places/nearby?lat=1&lng=2&min_rating=3&sort=rating", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	list, _ := body["places"].([]any)
	if len(list) != 1 {
		t.Fatalf("min_rating should leave 1 place, got %d", len(list))
	}
	first, _ := list[0].(map[string]any)
	if first["id"] != "high" {
		t.Fatalf("expected the high-rated place, got %v", first["id"])
	}
}

func TestUpstreamFailureIsInternalError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("Google Places API error: REQUEST_DENIED")}
	app := newTestApp(t, provider)
	token := registerAndLogin(t, app)

	resp, body := doJSON(t, app, "GET", "/api/places/nearby?lat=37.5665&lng=126.9780", token, nil)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 on upstream failure, got %d", resp.StatusCode)
	}
	if body["error"] != "Failed to fetch places" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	details, _ := body["details"].(string)
	if !strings.Contains(details, "REQUEST_DENIED") {
		t.Fatalf("details should carry the provider status text, got %q", details)
	}

	resp, body = doJSON(t, app, "GET", "/api/places/search?query=coffee", token, nil)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 on upstream failure, got %d", resp.StatusCode)
	}
	if details, _ := body["details"].(string); !strings.Contains(details, "REQUEST_DENIED") {
		t.Fatalf("details should carry the provider status text, got %q", details)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})
	token := registerAndLogin(t, app)

	resp, body := doJSON(t, app, "GET", "/api/places/search", token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body["error"] != "Search query is required" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})
	token := registerAndLogin(t, app)

	resp, body := doJSON(t, app, "POST", "/api/search-history", token, fiber.Map{
		"query":    "coffee",
		"location": "37.5665,126.9780",
		"radius":   "2000",
		"filters":  fiber.Map{"type": "cafe"},
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("add: expected 200, got %d", resp.StatusCode)
	}
	record, _ := body["history"].(map[string]any)
	if record == nil || record["query"] != "coffee" {
		t.Fatalf("unexpected add response: %v", body)
	}
	id, _ := record["id"].(string)

	resp, body = doJSON(t, app, "GET", "/api/search-history", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	list, _ := body["history"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %v", body)
	}

	resp, body = doJSON(t, app, "DELETE", fmt.Sprintf("/api/search-history/%s", id), token, nil)
	if resp.StatusCode != fiber.StatusOK || body["success"] != true {
		t.Fatalf("delete failed: %d %v", resp.StatusCode, body)
	}

	_, body = doJSON(t, app, "GET", "/api/search-history", token, nil)
	list, _ = body["history"].([]any)
	if len(list) != 0 {
		t.Fatalf("expected empty history after delete, got %v", body)
	}
}
