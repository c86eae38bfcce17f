package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/TinyKitten/trainlcd-cli/internal/display"
)

// DefaultAPIURL is the station-data service used when TRAINLCD_API_URL is unset
const DefaultAPIURL = "https://api.trainlcd.app/v1"

// Config holds all configuration for the CLI
type Config struct {
	// Station data
	APIURL   string
	DataFile string

	// Display timers
	HeaderInterval   time.Duration
	BottomInterval   time.Duration
	LocationInterval time.Duration

	// Detector
	AccuracyCeiling float64
	AverageWindow   int

	// Header language cycle
	Languages []display.Lang

	// Cache
	CacheTTL time.Duration
	CacheDir string

	// Debug logging to a file
	Debug   bool
	LogFile string
}

// Load reads .env and .env.local from the working directory when present,
// then builds the configuration from environment variables with defaults
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local") // local values win

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only
func FromEnv() (*Config, error) {
	cfg := &Config{
		// Station data
		APIURL:   getEnv("TRAINLCD_API_URL", DefaultAPIURL),
		DataFile: getEnv("TRAINLCD_DATA", ""),

		// Display timers
		HeaderInterval:   time.Duration(getEnvInt("TRAINLCD_HEADER_INTERVAL", 3000)) * time.Millisecond,
		BottomInterval:   time.Duration(getEnvInt("TRAINLCD_BOTTOM_INTERVAL", 5000)) * time.Millisecond,
		LocationInterval: time.Duration(getEnvInt("TRAINLCD_LOCATION_INTERVAL", 1000)) * time.Millisecond,

		// Detector
		AccuracyCeiling: getEnvFloat("TRAINLCD_ACCURACY_CEILING", 100),
		AverageWindow:   getEnvInt("TRAINLCD_AVERAGE_WINDOW", 5),

		// Cache
		CacheTTL: time.Duration(getEnvInt("TRAINLCD_CACHE_TTL", 3600)) * time.Second,
		CacheDir: getEnv("TRAINLCD_CACHE_DIR", ""),

		Debug:   getEnvBool("TRAINLCD_DEBUG", false),
		LogFile: getEnv("TRAINLCD_LOG_FILE", "trainlcd-debug.log"),
	}

	langs, err := display.ParseLangs(getEnv("TRAINLCD_LANGUAGES", "ja,kana,en,zh,ko"))
	if err != nil {
		return nil, fmt.Errorf("TRAINLCD_LANGUAGES: %w", err)
	}
	cfg.Languages = langs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the engine misbehave
func (c *Config) Validate() error {
	if c.HeaderInterval <= 0 {
		return fmt.Errorf("header interval must be positive, got %v", c.HeaderInterval)
	}
	if c.BottomInterval <= 0 {
		return fmt.Errorf("bottom interval must be positive, got %v", c.BottomInterval)
	}
	if c.LocationInterval <= 0 {
		return fmt.Errorf("location interval must be positive, got %v", c.LocationInterval)
	}
	if c.AccuracyCeiling <= 0 {
		return fmt.Errorf("accuracy ceiling must be positive, got %v", c.AccuracyCeiling)
	}
	if c.AverageWindow <= 0 {
		return fmt.Errorf("average window must be positive, got %d", c.AverageWindow)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
