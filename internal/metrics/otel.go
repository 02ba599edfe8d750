package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and
// optional OTLP exporter. It returns a Recorder, the Prometheus HTTP
// handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "slotops-service"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx              context.Context
	meter            metric.Meter
	fetchAttempts    metric.Int64Counter
	fetchErrors      metric.Int64Counter
	fetchLatencyMs   metric.Float64Histogram
	bookingAttempts  metric.Int64Counter
	bookingSuccesses metric.Int64Counter
	bookingLatencyMs metric.Float64Histogram
	roundCycles      metric.Int64Counter
	roundCandidates  metric.Int64Counter
	roundFetchFailed metric.Int64Counter
	roundLatencyMs   metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("slotops-service")
	ctx := context.Background()

	fetchAttempts, err := meter.Int64Counter("fetch_attempts_total")
	if err != nil {
		return nil, err
	}
	fetchErrors, err := meter.Int64Counter("fetch_errors_total")
	if err != nil {
		return nil, err
	}
	fetchLatency, err := meter.Float64Histogram("fetch_duration_ms")
	if err != nil {
		return nil, err
	}
	bookingAttempts, err := meter.Int64Counter("booking_attempts_total")
	if err != nil {
		return nil, err
	}
	bookingSuccesses, err := meter.Int64Counter("booking_successes_total")
	if err != nil {
		return nil, err
	}
	bookingLatency, err := meter.Float64Histogram("booking_duration_ms")
	if err != nil {
		return nil, err
	}
	roundCycles, err := meter.Int64Counter("scan_rounds_total")
	if err != nil {
		return nil, err
	}
	roundCandidates, err := meter.Int64Counter("scan_candidates_total")
	if err != nil {
		return nil, err
	}
	roundFetchFailed, err := meter.Int64Counter("scan_fetch_failures_total")
	if err != nil {
		return nil, err
	}
	roundLatency, err := meter.Float64Histogram("scan_round_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:              ctx,
		meter:            meter,
		fetchAttempts:    fetchAttempts,
		fetchErrors:      fetchErrors,
		fetchLatencyMs:   fetchLatency,
		bookingAttempts:  bookingAttempts,
		bookingSuccesses: bookingSuccesses,
		bookingLatencyMs: bookingLatency,
		roundCycles:      roundCycles,
		roundCandidates:  roundCandidates,
		roundFetchFailed: roundFetchFailed,
		roundLatencyMs:   roundLatency,
	}, nil
}

func (o *otelInstruments) recordFetchAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.fetchAttempts, 1, attrs...)
	o.recordHistogram(o.fetchLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.fetchErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordBookingAttempt(provider string, duration time.Duration, success bool) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrProvider, provider),
		attribute.Bool(AttrSuccess, success),
	}
	o.recordCounter(o.bookingAttempts, 1, attrs...)
	o.recordHistogram(o.bookingLatencyMs, float64(duration.Milliseconds()), attrs...)
	if success {
		o.recordCounter(o.bookingSuccesses, 1, attrs...)
	}
}

func (o *otelInstruments) recordRound(duration time.Duration, candidates, fetchFailures int) {
	if o == nil {
		return
	}
	o.recordCounter(o.roundCycles, 1)
	o.recordHistogram(o.roundLatencyMs, float64(duration.Milliseconds()))
	if candidates > 0 {
		o.recordCounter(o.roundCandidates, int64(candidates))
	}
	if fetchFailures > 0 {
		o.recordCounter(o.roundFetchFailed, int64(fetchFailures))
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
