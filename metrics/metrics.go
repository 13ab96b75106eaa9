package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName              = "github.com/semka95/authors/metrics"
	instrumentationVersion = "0.1.0"
)

// Lookup outcomes recorded under the outcome attribute
const (
	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
)

// config is used to configure the lookup recorder.
type config struct {
	MeterProvider metric.MeterProvider
}

// Option specifies instrumentation configuration options.
type Option func(*config)

// WithMeterProvider option sets metric provider. If none is specified, the global provider is used.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) {
		cfg.MeterProvider = provider
	}
}

var lookupCnt = []metric.Int64CounterOption{
	metric.WithDescription("How many author lookups processed, partitioned by outcome."),
	metric.WithUnit("{lookup}"),
}
var lookupDur = []metric.Float64HistogramOption{
	metric.WithDescription("The author lookup latencies in milliseconds."),
	metric.WithUnit("ms"),
}

// OutcomeLabel is the attribute key partitioning lookup instruments
var OutcomeLabel = attribute.Key("outcome")

// LookupRecorder records author lookup instruments. A nil *LookupRecorder
// records nothing.
type LookupRecorder struct {
	lookups  metric.Int64Counter
	duration metric.Float64Histogram
}

// NewLookupRecorder creates the lookup instruments on the configured meter provider
func NewLookupRecorder(opts ...Option) (*LookupRecorder, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}

	meter := cfg.MeterProvider.Meter(
		meterName,
		metric.WithInstrumentationVersion(instrumentationVersion),
	)

	lc, err := meter.Int64Counter("author_lookups_total", lookupCnt...)
	if err != nil {
		return nil, err
	}
	ld, err := meter.Float64Histogram("author_lookup_duration_milliseconds", lookupDur...)
	if err != nil {
		return nil, err
	}

	return &LookupRecorder{
		lookups:  lc,
		duration: ld,
	}, nil
}

// Record adds one lookup with its outcome and latency
func (r *LookupRecorder) Record(ctx context.Context, found bool, elapsed time.Duration) {
	if r == nil {
		return
	}

	outcome := OutcomeMiss
	if found {
		outcome = OutcomeHit
	}
	attrs := metric.WithAttributes(OutcomeLabel.String(outcome))

	r.lookups.Add(ctx, 1, attrs)
	r.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
}
