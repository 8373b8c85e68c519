package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sandeepkv93/product-catalog-api/internal/config"
)

// InitTracing wires the OTLP span pipeline. W3C trace context propagation is
// installed even when export is off so inbound traceparent headers keep
// flowing into request logs.
func InitTracing(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdktrace.TracerProvider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.OTELTracingEnabled {
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		logger.Info("trace export disabled")
		return tp, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}

	res, err := newTelemetryResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.OTELTraceSamplingRatio))),
	)
	otel.SetTracerProvider(tp)
	logger.Info("trace export initialized",
		"endpoint", cfg.OTELExporterOTLPEndpoint,
		"sampling_ratio", cfg.OTELTraceSamplingRatio,
	)
	return tp, nil
}
