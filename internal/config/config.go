// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port          string
	LogLevel      string
	SeedFilePath  string
	CacheSize     int
	CORSOrigins   []string
	SweepSchedule string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cacheSize, err := strconv.Atoi(getEnv("FORECAST_CACHE_SIZE", "50"))
	if err != nil || cacheSize <= 0 {
		return nil, fmt.Errorf("FORECAST_CACHE_SIZE must be a positive integer")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8090"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SeedFilePath:  getEnv("SEED_FILE_PATH", ""),
		CacheSize:     cacheSize,
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SweepSchedule: getEnv("CACHE_SWEEP_SCHEDULE", "0 * * * *"),
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
