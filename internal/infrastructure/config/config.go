// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for one ingestion run
type Config struct {
	// App
	LogLevel    string
	MetricsPort string // empty disables the /metrics listener

	// Run
	Airports []string // ICAO codes for the schedule provider fetch loop
	// MovementAirports filters the movement fetch per airport; empty keeps
	// the single unfiltered whole-day request.
	MovementAirports []string

	// OpenSky (token provider)
	OpenSkyAuthURL         string
	OpenSkyBaseURL         string
	OpenSkyEndpoint        string
	OpenSkyCredentialsFile string
	OpenSkyTimeout         time.Duration
	TokenRetryBudget       int
	DefaultBackoff         time.Duration
	// MaxBackoffAttempts caps 429 retries; zero keeps the original
	// retry-until-the-provider-relents behavior.
	MaxBackoffAttempts int

	// AeroDataBox (key provider)
	AeroDataBoxBaseURL  string
	AeroDataBoxEndpoint string
	AeroDataBoxKeyFile  string
	AeroDataBoxTimeout  time.Duration

	// Warehouse
	PostgresDSN string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MetricsPort: getEnv("METRICS_PORT", ""),

		Airports:         splitList(getEnv("AIRPORTS", "EDDF,KJFK")),
		MovementAirports: splitList(getEnv("OPENSKY_AIRPORTS", "")),

		OpenSkyAuthURL:         getEnv("OPENSKY_AUTH_URL", "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token"),
		OpenSkyBaseURL:         getEnv("OPENSKY_BASE_URL", "https://opensky-network.org/api"),
		OpenSkyEndpoint:        getEnv("OPENSKY_ENDPOINT", "/flights/all"),
		OpenSkyCredentialsFile: getEnv("OPENSKY_CREDENTIALS_FILE", "credentials/opensky_credentials.json"),
		OpenSkyTimeout:         time.Duration(getEnvAsInt("OPENSKY_TIMEOUT", 120)) * time.Second,
		TokenRetryBudget:       getEnvAsInt("OPENSKY_TOKEN_RETRIES", 2),
		DefaultBackoff:         time.Duration(getEnvAsInt("OPENSKY_DEFAULT_BACKOFF", 300)) * time.Second,
		MaxBackoffAttempts:     getEnvAsInt("OPENSKY_MAX_BACKOFF_ATTEMPTS", 0),

		AeroDataBoxBaseURL:  getEnv("AERODATABOX_BASE_URL", "https://prod.api.market/api/v1/aedbx/aerodatabox"),
		AeroDataBoxEndpoint: getEnv("AERODATABOX_ENDPOINT", "flights/airports"),
		AeroDataBoxKeyFile:  getEnv("AERODATABOX_KEY_FILE", "credentials/aerodatabox_api_key.json"),
		AeroDataBoxTimeout:  time.Duration(getEnvAsInt("AERODATABOX_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=aviation port=5432 sslmode=disable"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
