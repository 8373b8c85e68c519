package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sandeepkv93/product-catalog-api/internal/health"
	"github.com/sandeepkv93/product-catalog-api/internal/http/handler"
	"github.com/sandeepkv93/product-catalog-api/internal/http/middleware"
	"github.com/sandeepkv93/product-catalog-api/internal/http/response"
)

type Dependencies struct {
	ProductHandler *handler.ProductHandler
	DocsHandler    *handler.DocsHandler
	CORSOrigins    []string
	BodyLimitBytes int64
	Readiness      *health.ProbeRunner
	EnableOTelHTTP bool
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	bodyLimit := dep.BodyLimitBytes
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20
	}
	r.Use(middleware.BodyLimit(bodyLimit))

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if dep.Readiness == nil {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": []any{}})
			return
		}
		ready, results := dep.Readiness.Ready(r.Context())
		if ready {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
			return
		}
		response.Error(w, r, http.StatusServiceUnavailable, "DEPENDENCY_UNREADY", "dependencies are not ready", map[string]any{"checks": results})
	})

	if dep.DocsHandler != nil {
		r.Get("/openapi.yaml", dep.DocsHandler.Spec)
		r.Get("/docs", dep.DocsHandler.UI)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", dep.ProductHandler.List)
			r.Post("/", dep.ProductHandler.Create)
			r.Get("/{id}", dep.ProductHandler.GetByID)
			r.Put("/{id}", dep.ProductHandler.Update)
			r.Delete("/{id}", dep.ProductHandler.Delete)
		})
	})

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}
