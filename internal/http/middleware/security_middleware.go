package middleware

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/sandeepkv93/product-catalog-api/internal/observability"
)

type ctxKey int

const ctxKeyRequestID ctxKey = iota

// RequestIDFromContext returns the request id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// RequestID honors an inbound X-Request-Id and mints a uuid otherwise. The id
// is echoed on the response and stored on the request context and header so
// audit lines can pick it up.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
			r.Header.Set("X-Request-Id", reqID)
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, reqID)))
	})
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := map[string]struct{}{}
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowed[origin]; ok {
					observability.RecordMiddlewareValidationEvent(r.Context(), "cors", "allow_origin")
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
				} else {
					observability.RecordMiddlewareValidationEvent(r.Context(), "cors", "rejected_origin")
				}
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
			if r.Method == http.MethodOptions {
				observability.RecordMiddlewareValidationEvent(r.Context(), "cors", "preflight")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = &bodyLimitObserver{
				readCloser: http.MaxBytesReader(w, r.Body, maxBytes),
				ctx:        r.Context(),
			}
			next.ServeHTTP(w, r)
		})
	}
}

type bodyLimitObserver struct {
	readCloser io.ReadCloser
	ctx        context.Context
	emitted    bool
}

func (o *bodyLimitObserver) Read(p []byte) (int, error) {
	n, err := o.readCloser.Read(p)
	if err != nil && !o.emitted {
		if _, ok := err.(*http.MaxBytesError); ok {
			o.emitted = true
			observability.RecordMiddlewareValidationEvent(o.ctx, "body_limit", "exceeded")
		}
	}
	return n, err
}

func (o *bodyLimitObserver) Close() error { return o.readCloser.Close() }
