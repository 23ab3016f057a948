package main

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/biteswipe/internal/auth"
	"github.com/mmynk/biteswipe/internal/config"
	"github.com/mmynk/biteswipe/internal/engine"
	"github.com/mmynk/biteswipe/internal/metrics"
	"github.com/mmynk/biteswipe/internal/middleware"
	"github.com/mmynk/biteswipe/internal/service"
	"github.com/mmynk/biteswipe/internal/storage"
	"github.com/mmynk/biteswipe/pkg/api/apiconnect"
)

type routerDeps struct {
	engine   *engine.Engine
	store    storage.Store
	auth     auth.IdentityProvider
	metrics  *metrics.Metrics
	registry *prometheus.Registry
}

func newRouter(cfg *config.Config, deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
		},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(deps.metrics),
		middleware.RequireAuth(deps.auth),
		middleware.LoggingInterceptor(),
	)

	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(service.NewGroupService(deps.engine), interceptors)
	r.Handle(groupPath+"*", groupHandler)

	restaurantPath, restaurantHandler := apiconnect.NewRestaurantServiceHandler(service.NewRestaurantService(deps.store), interceptors)
	r.Handle(restaurantPath+"*", restaurantHandler)

	r.Handle("/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// requestLogging logs all incoming HTTP requests
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
