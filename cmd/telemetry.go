package cmd

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Telemetry holds the tracer and meter provider of a running binary
type Telemetry struct {
	Tracer        trace.Tracer
	MeterProvider metric.MeterProvider

	shutdown []func(context.Context) error
}

// InitTelemetry sets up tracing and metrics. Without an OTLP address spans
// and measurements are produced but not exported.
func InitTelemetry(ctx context.Context, cfg *Config, serviceName string, logger *zap.Logger) (*Telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			// the service name used to display traces in backends
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tel := new(Telemetry)
	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if cfg.Telemetry.OtlpAddress != "" {
		creds := credentials.NewClientTLSFromCert(nil, "")
		if cfg.Telemetry.Insecure {
			creds = insecure.NewCredentials()
		}

		traceExporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Telemetry.OtlpAddress),
			otlptracegrpc.WithTLSCredentials(creds),
		)
		if err != nil {
			return nil, err
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(traceExporter))

		metricExporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.Telemetry.OtlpAddress),
			otlpmetricgrpc.WithTLSCredentials(creds),
		)
		if err != nil {
			return nil, err
		}
		meterOpts = append(meterOpts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(10*time.Second)),
		))

		logger.Info("telemetry export enabled", zap.String("otlp_address", cfg.Telemetry.OtlpAddress))
	}

	tp := sdktrace.NewTracerProvider(traceOpts...)
	otel.SetTracerProvider(tp)
	tel.Tracer = tp.Tracer(serviceName)
	tel.shutdown = append(tel.shutdown, tp.Shutdown)

	mp := sdkmetric.NewMeterProvider(meterOpts...)
	otel.SetMeterProvider(mp)
	tel.MeterProvider = mp
	tel.shutdown = append(tel.shutdown, mp.Shutdown)

	return tel, nil
}

// Shutdown flushes and stops the providers, joining their errors
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
