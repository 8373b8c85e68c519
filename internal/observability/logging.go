package observability

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	otlploggrpc "go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/sandeepkv93/product-catalog-api/internal/config"
)

// catalogLogHandler writes every record as JSON to stdout and, when OTLP log
// export is on, mirrors it to the otelslog bridge. Records picked up inside a
// span carry trace correlation ids.
type catalogLogHandler struct {
	stdout slog.Handler
	bridge slog.Handler
}

func (h *catalogLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.stdout.Enabled(ctx, level) {
		return true
	}
	return h.bridge != nil && h.bridge.Enabled(ctx, level)
}

func (h *catalogLogHandler) Handle(ctx context.Context, rec slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		rec.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if err := h.stdout.Handle(ctx, rec.Clone()); err != nil {
		return err
	}
	if h.bridge != nil {
		return h.bridge.Handle(ctx, rec)
	}
	return nil
}

func (h *catalogLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &catalogLogHandler{stdout: h.stdout.WithAttrs(attrs)}
	if h.bridge != nil {
		next.bridge = h.bridge.WithAttrs(attrs)
	}
	return next
}

func (h *catalogLogHandler) WithGroup(name string) slog.Handler {
	next := &catalogLogHandler{stdout: h.stdout.WithGroup(name)}
	if h.bridge != nil {
		next.bridge = h.bridge.WithGroup(name)
	}
	return next
}

// NewBootstrapLogger covers the window before the OTel pipelines exist, so
// startup failures still come out as structured lines.
func NewBootstrapLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.OTELLogLevel)}))
}

// InitLogger installs the catalog handler as the process default so package
// level slog calls (request logs, audit lines) share one pipeline.
func InitLogger(cfg *config.Config, lp *sdklog.LoggerProvider) *slog.Logger {
	h := &catalogLogHandler{
		stdout: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.OTELLogLevel)}),
	}
	if cfg.OTELLogsEnabled && lp != nil {
		h.bridge = otelslog.NewHandler(cfg.OTELServiceName, otelslog.WithLoggerProvider(lp))
	}
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}

func InitLogs(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdklog.LoggerProvider, error) {
	if !cfg.OTELLogsEnabled {
		logger.Info("otlp log export disabled")
		return nil, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp log exporter: %w", err)
	}

	res, err := newTelemetryResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	logger.Info("otlp log export initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return lp, nil
}

func parseLogLevel(v string) slog.Level {
	switch v {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
