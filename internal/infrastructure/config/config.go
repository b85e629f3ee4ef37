package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend is the physical store variant, decided once at startup.
type Backend int

const (
	BackendLocal Backend = iota
	BackendCloud
)

func (b Backend) String() string {
	if b == BackendCloud {
		return "cloud"
	}
	return "local"
}

// StoreConfig is the resolved persistence target: either a cloud Postgres
// DSN or a local embedded database file.
type StoreConfig struct {
	Backend Backend
	DSN     string // cloud only
	Path    string // local only
}

// ConfigurationError reports bad or inconsistent store configuration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Store
	CloudDatabaseURL  string
	CloudDatabaseKey  string
	LocalDatabasePath string
	QueryLimit        int

	// Behaviour
	SeedDemoData bool
	LogLevel     string

	// External collaborators (pass-through credentials, unused by the core)
	WeatherAPIKey        string
	FlightTrackingAPIKey string
	LLMAPIKey            string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		CloudDatabaseURL:  getEnv("CLOUD_DATABASE_URL", ""),
		CloudDatabaseKey:  getEnv("CLOUD_DATABASE_KEY", ""),
		LocalDatabasePath: getEnv("LOCAL_DATABASE_PATH", "aeroops.db"),
		QueryLimit:        getEnvAsInt("QUERY_LIMIT", 1000),

		SeedDemoData: getEnvAsBool("SEED_DEMO_DATA", true),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		WeatherAPIKey:        getEnv("WEATHER_API_KEY", ""),
		FlightTrackingAPIKey: getEnv("FLIGHT_TRACKING_API_KEY", ""),
		LLMAPIKey:            getEnv("LLM_API_KEY", ""),
	}

	return config, nil
}

// ResolveStore picks the backend variant from the loaded configuration.
// Both cloud settings select the cloud backend; neither falls back to the
// local embedded file; one without the other is a configuration error.
func (c *Config) ResolveStore() (StoreConfig, error) {
	hasURL := c.CloudDatabaseURL != ""
	hasKey := c.CloudDatabaseKey != ""

	switch {
	case hasURL && hasKey:
		dsn, err := buildCloudDSN(c.CloudDatabaseURL, c.CloudDatabaseKey)
		if err != nil {
			return StoreConfig{}, err
		}
		return StoreConfig{Backend: BackendCloud, DSN: dsn}, nil
	case hasURL:
		return StoreConfig{}, &ConfigurationError{Reason: "CLOUD_DATABASE_URL set without CLOUD_DATABASE_KEY"}
	case hasKey:
		return StoreConfig{}, &ConfigurationError{Reason: "CLOUD_DATABASE_KEY set without CLOUD_DATABASE_URL"}
	}
	return StoreConfig{Backend: BackendLocal, Path: c.LocalDatabasePath}, nil
}

// buildCloudDSN injects the service key as the connection password. The URL
// keeps any user it already names, defaulting to postgres.
func buildCloudDSN(rawURL, key string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", &ConfigurationError{Reason: fmt.Sprintf("invalid CLOUD_DATABASE_URL %q", rawURL)}
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, key)
	return u.String(), nil
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
