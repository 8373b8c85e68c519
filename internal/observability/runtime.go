package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sandeepkv93/product-catalog-api/internal/config"
)

// Runtime owns the provider set for the catalog service. Providers that are
// disabled by config stay nil (logs) or no-op (metrics, traces).
type Runtime struct {
	LoggerProvider *sdklog.LoggerProvider
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
}

// newTelemetryResource is the single resource shared by the log, metric and
// trace pipelines so the catalog service shows up under one identity.
func newTelemetryResource(ctx context.Context, cfg *config.Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.OTELServiceName),
			attribute.String("deployment.environment", cfg.OTELEnvironment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build telemetry resource: %w", err)
	}
	return res, nil
}

func InitRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{}
	var err error
	if rt.LoggerProvider, err = InitLogs(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if rt.MeterProvider, err = InitMetrics(ctx, cfg, logger); err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	if rt.TracerProvider, err = InitTracing(ctx, cfg, logger); err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	return rt, nil
}

// Shutdown flushes traces first so late spans still reach the exporter while
// the metric and log pipelines are draining.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var stages []func(context.Context) error
	if r.TracerProvider != nil {
		stages = append(stages, r.TracerProvider.Shutdown)
	}
	if r.MeterProvider != nil {
		stages = append(stages, r.MeterProvider.Shutdown)
	}
	if r.LoggerProvider != nil {
		stages = append(stages, r.LoggerProvider.Shutdown)
	}
	var errs []error
	for _, stage := range stages {
		if err := stage(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
