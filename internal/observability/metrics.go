package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/exemplar"

	"github.com/sandeepkv93/product-catalog-api/internal/config"
)

// catalogInstruments is the fixed instrument set of the service. Product
// operations are the business signal; store, guard and probe counters cover
// the layers underneath.
type catalogInstruments struct {
	productOps       metric.Int64Counter
	productOpLatency metric.Float64Histogram
	storeOps         metric.Int64Counter
	guardEvents      metric.Int64Counter
	probeResults     metric.Int64Counter
	probeLatency     metric.Float64Histogram
}

var (
	instrumentsMu sync.RWMutex
	instruments   *catalogInstruments
)

func loadInstruments() *catalogInstruments {
	instrumentsMu.RLock()
	defer instrumentsMu.RUnlock()
	return instruments
}

func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELMetricsEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Info("metric export disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := newTelemetryResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))),
		sdkmetric.WithExemplarFilter(exemplar.TraceBasedFilter),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "catalog.product.operation.latency"},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
					Boundaries: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
				},
			},
		)),
	)
	otel.SetMeterProvider(mp)

	meter := mp.Meter("product-catalog-api")
	counter := func(name, desc string) metric.Int64Counter {
		if err != nil {
			return nil
		}
		var c metric.Int64Counter
		c, err = meter.Int64Counter(name, metric.WithDescription(desc))
		return c
	}
	latency := func(name, desc string) metric.Float64Histogram {
		if err != nil {
			return nil
		}
		var h metric.Float64Histogram
		h, err = meter.Float64Histogram(name, metric.WithUnit("s"), metric.WithDescription(desc))
		return h
	}

	built := &catalogInstruments{
		productOps:       counter("catalog.product.operations", "Product service operations by outcome"),
		productOpLatency: latency("catalog.product.operation.latency", "Product service operation latency"),
		storeOps:         counter("catalog.store.operations", "Repository calls by entity, operation and outcome"),
		guardEvents:      counter("catalog.http.guard.events", "CORS and body-limit middleware decisions"),
		probeResults:     counter("catalog.probe.results", "Readiness dependency check results"),
		probeLatency:     latency("catalog.probe.latency", "Readiness dependency check latency"),
	}
	if err != nil {
		return nil, fmt.Errorf("create catalog instruments: %w", err)
	}

	instrumentsMu.Lock()
	instruments = built
	instrumentsMu.Unlock()

	logger.Info("metric export initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

// The Record helpers below are nil-safe so handlers, repositories and probes
// can call them before InitMetrics has run (tests, bootstrap failures).

func RecordProductOperation(ctx context.Context, operation, outcome string, duration time.Duration) {
	m := loadInstruments()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.productOps.Add(ctx, 1, attrs)
	m.productOpLatency.Record(ctx, duration.Seconds(), attrs)
}

func RecordRepositoryOperation(ctx context.Context, entity, operation, outcome string) {
	m := loadInstruments()
	if m == nil {
		return
	}
	m.storeOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordMiddlewareValidationEvent(ctx context.Context, component, outcome string) {
	m := loadInstruments()
	if m == nil {
		return
	}
	m.guardEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheckResult(ctx context.Context, check, outcome string) {
	m := loadInstruments()
	if m == nil {
		return
	}
	m.probeResults.Add(ctx, 1, metric.WithAttributes(
		attribute.String("check", check),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheckDuration(ctx context.Context, check string, duration time.Duration) {
	m := loadInstruments()
	if m == nil {
		return
	}
	m.probeLatency.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("check", check),
	))
}
