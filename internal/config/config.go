package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Provider names accepted in PLACES_PROVIDER.
const (
	ProviderGoogle      = "google"
	ProviderOpenTripMap = "opentripmap"
)

type Config struct {
	// Server
	ServerPort string
	ServerEnv  string

	// Storage - DATABASE_URL selects postgres, otherwise a sqlite file
	// under DataDir is used
	DatabaseURL string
	DataDir     string

	// JWT
	JWTSecretKey   string
	JWTExpireHours int

	// Places providers
	PlacesProvider     string
	GooglePlacesAPIKey string
	OpenTripMapAPIKey  string

	// Enrichment (OpenRouter); empty key disables enrichment
	OpenRouterAPIKey  string
	OpenRouterModel   string
	EnrichTimeoutSecs int

	// Telemetry (OTLP); empty endpoint disables tracing/metrics export
	OTLPEndpoint string
}

func Load() *Config {
	return &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),

		// Storage
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DataDir:     getEnv("DATA_DIR", "./data"),

		// JWT - SESSION_SECRET fallback kept for older deployments
		JWTSecretKey:   getEnvWithFallback("JWT_SECRET", "SESSION_SECRET", "default-secret"),
		JWTExpireHours: getEnvAsInt("JWT_EXPIRE_HOURS", 168), // 7 days

		// Providers
		PlacesProvider:     getEnv("PLACES_PROVIDER", ""),
		GooglePlacesAPIKey: getEnv("GOOGLE_PLACES_API_KEY", ""),
		OpenTripMapAPIKey:  getEnv("OPENTRIPMAP_API_KEY", ""),

		// Enrichment
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "anthropic/claude-3-haiku"),
		EnrichTimeoutSecs: getEnvAsInt("ENRICH_TIMEOUT_SECONDS", 15),

		// Telemetry
		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
	}
}

// ActiveProvider returns the configured places provider, inferring it from
// available API keys when PLACES_PROVIDER is unset.
func (c *Config) ActiveProvider() string {
	if c.PlacesProvider != "" {
		return c.PlacesProvider
	}
	if c.GooglePlacesAPIKey != "" {
		return ProviderGoogle
	}
	return ProviderOpenTripMap
}

// SQLitePath returns the flat-file database path under DataDir.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "findora.db")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvWithFallback tries primary key first, then fallback key
func getEnvWithFallback(primary, fallback, defaultValue string) string {
	if value, exists := os.LookupEnv(primary); exists && value != "" {
		return value
	}
	if value, exists := os.LookupEnv(fallback); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
