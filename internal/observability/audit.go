package observability

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// Audit emits one structured log line for a mutating request.
func Audit(r *http.Request, event string, attrs ...any) {
	base := []any{
		"event", event,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get("X-Request-Id"),
	}
	if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
		base = append(base, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	}
	base = append(base, attrs...)
	slog.InfoContext(r.Context(), "audit", base...)
}
