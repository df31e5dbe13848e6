package telemetry

import (
	"context"
	"errors"
	"fmt"
	"travel/cfg"
	"travel/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init installs global tracer and meter providers that push to the OTLP
// collector in config. Without an endpoint the otel globals stay no-op.
func Init(ctx context.Context, config *cfg.ObservabilityConfig, log logger.Client) (ShutdownFunc, error) {
	if config.OTLPEndpoint == "" {
		log.Debug("otel disabled, no OTLP endpoint configured")
		return noopShutdown, nil
	}

	conn, err := grpc.NewClient(
		config.OTLPEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	tp, mp, err := newProviders(ctx, conn, config)
	if err != nil {
		return nil, errors.Join(err, conn.Close())
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	log.Info("otel initialized",
		logger.Field{Key: "otlp_endpoint", Value: config.OTLPEndpoint},
		logger.Field{Key: "service", Value: config.ServiceName},
	)

	return func(ctx context.Context) error {
		var errs []error
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown failed: %w", err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown failed: %w", err))
		}
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("collector connection close failed: %w", err))
		}
		return errors.Join(errs...)
	}, nil
}

// newProviders builds both providers over one collector connection. The
// caller owns conn and closes it when this fails.
func newProviders(ctx context.Context, conn *grpc.ClientConn, config *cfg.ObservabilityConfig) (*sdktrace.TracerProvider, *metric.MeterProvider, error) {
	res, err := newResource(ctx, config)
	if err != nil {
		return nil, nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, nil, errors.Join(
			fmt.Errorf("failed to create metric exporter: %w", err),
			traceExporter.Shutdown(ctx),
		)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)
	return tp, mp, nil
}

func newResource(ctx context.Context, config *cfg.ObservabilityConfig) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.DeploymentEnvironment(config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
