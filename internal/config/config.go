package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the bot.
type Config struct {
	PollInterval  time.Duration
	MaxDates      int
	TargetStoreID string
	Storeops      StoreopsConfig
	Metrics       MetricsConfig
}

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// Load reads configuration from a .env file (when present) and environment
// variables, with sensible defaults. Missing credentials are not an error
// here; the commands that need them fail per-request.
func Load() Config {
	// Same behavior as the original tooling: a .env beside the binary is
	// merged in, real environment variables win.
	_ = godotenv.Load()

	return Config{
		PollInterval:  durationEnvOrDefault(envPollInterval, defaultPollInterval),
		MaxDates:      intEnvOrDefault(envMaxDates, defaultMaxDates),
		TargetStoreID: envOrDefault(envTargetStore, ""),
		Storeops:      loadStoreops(),
		Metrics:       loadMetrics(),
	}
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, false),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, "slotops-service"),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}
