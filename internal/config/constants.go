package config

import "time"

const (
	envPollInterval = "POLL_INTERVAL"
	envMaxDates     = "MAX_DATES"
	envTargetStore  = "TARGET_STORE_ID"
	envMetricsOn    = "METRICS_ENABLED"
	envMetricsPort  = "METRICS_PORT"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	// Conservative default so an idle scan does not hammer the API; the
	// floor enforced at start time is much lower.
	defaultPollInterval = 5 * time.Second
	defaultMaxDates     = 10
	defaultMetricsPort  = "9090"
)
