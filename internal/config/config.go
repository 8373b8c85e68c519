package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	HTTPPort string

	DatabaseURL  string
	SeedDemoData bool

	CORSAllowedOrigins []string
	BodyLimitBytes     int64

	ReadinessProbeTimeout        time.Duration
	ServerStartGracePeriod       time.Duration
	ShutdownTimeout              time.Duration
	ShutdownHTTPDrainTimeout     time.Duration
	ShutdownObservabilityTimeout time.Duration

	OTELServiceName           string
	OTELEnvironment           string
	OTELExporterOTLPEndpoint  string
	OTELExporterOTLPInsecure  bool
	OTELMetricsExportInterval time.Duration
	OTELTraceSamplingRatio    float64
	OTELMetricsEnabled        bool
	OTELTracingEnabled        bool
	OTELLogsEnabled           bool
	OTELLogLevel              string
}

func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:                env,
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SeedDemoData:       getEnvBool("SEED_DEMO_DATA", false),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		BodyLimitBytes:     int64(getEnvInt("HTTP_BODY_LIMIT_BYTES", 1<<20)),

		OTELServiceName:          getEnv("OTEL_SERVICE_NAME", "product-catalog-api"),
		OTELEnvironment:          getEnv("OTEL_ENVIRONMENT", env),
		OTELExporterOTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELExporterOTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELTraceSamplingRatio:   getEnvFloat("OTEL_TRACE_SAMPLING_RATIO", 1.0),
		OTELMetricsEnabled:       getEnvBool("OTEL_METRICS_ENABLED", true),
		OTELTracingEnabled:       getEnvBool("OTEL_TRACING_ENABLED", true),
		OTELLogsEnabled:          getEnvBool("OTEL_LOGS_ENABLED", true),
		OTELLogLevel:             strings.ToLower(getEnv("OTEL_LOG_LEVEL", "info")),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"READINESS_PROBE_TIMEOUT", "1s", &cfg.ReadinessProbeTimeout},
		{"SERVER_START_GRACE_PERIOD", "0s", &cfg.ServerStartGracePeriod},
		{"SHUTDOWN_TIMEOUT", "20s", &cfg.ShutdownTimeout},
		{"SHUTDOWN_HTTP_DRAIN_TIMEOUT", "10s", &cfg.ShutdownHTTPDrainTimeout},
		{"SHUTDOWN_OBSERVABILITY_TIMEOUT", "8s", &cfg.ShutdownObservabilityTimeout},
		{"OTEL_METRICS_EXPORT_INTERVAL", "10s", &cfg.OTELMetricsExportInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
// Demo-data seeding is refused there.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.SeedDemoData && c.IsProduction() {
		errs = append(errs, "SEED_DEMO_DATA cannot be enabled in production")
	}
	if c.BodyLimitBytes <= 0 {
		errs = append(errs, "HTTP_BODY_LIMIT_BYTES must be > 0")
	}
	if c.ReadinessProbeTimeout <= 0 {
		errs = append(errs, "READINESS_PROBE_TIMEOUT must be > 0")
	}
	if c.ServerStartGracePeriod < 0 {
		errs = append(errs, "SERVER_START_GRACE_PERIOD must be >= 0")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be > 0")
	}
	if c.ShutdownHTTPDrainTimeout <= 0 || c.ShutdownHTTPDrainTimeout > c.ShutdownTimeout {
		errs = append(errs, "SHUTDOWN_HTTP_DRAIN_TIMEOUT must be > 0 and <= SHUTDOWN_TIMEOUT")
	}
	if c.ShutdownObservabilityTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_OBSERVABILITY_TIMEOUT must be > 0")
	}
	if (c.OTELMetricsEnabled || c.OTELTracingEnabled || c.OTELLogsEnabled) && c.OTELExporterOTLPEndpoint == "" {
		errs = append(errs, "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTel is enabled")
	}
	if c.OTELTraceSamplingRatio < 0 || c.OTELTraceSamplingRatio > 1 {
		errs = append(errs, "OTEL_TRACE_SAMPLING_RATIO must be between 0 and 1")
	}
	if c.OTELMetricsExportInterval <= 0 {
		errs = append(errs, "OTEL_METRICS_EXPORT_INTERVAL must be > 0")
	}
	if !isValidLogLevel(c.OTELLogLevel) {
		errs = append(errs, "OTEL_LOG_LEVEL must be one of debug, info, warn, error")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isValidLogLevel(v string) bool {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.TrimSpace(p)
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
