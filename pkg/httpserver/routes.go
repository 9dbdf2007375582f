package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/indexkit/pkg/requestid"
)

// Probe endpoints served by Routes.
const (
	LivePath    = "/health/live"
	ReadyPath   = "/health/ready"
	MetricsPath = "/metrics"
)

// Routes mounts the liveness, readiness and metrics endpoints on a chi router.
// Every response carries an X-Request-ID header.
// The metrics endpoint is skipped when gatherer is nil.
func Routes(log *slog.Logger, gatherer prometheus.Gatherer, checks ...Check) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get(LivePath, HealthCheckHandler(log))
	r.Get(ReadyPath, HealthCheckHandler(log, checks...))

	if gatherer != nil {
		r.Method(http.MethodGet, MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
			ErrorLog: slog.NewLogLogger(handlerOf(log), slog.LevelError),
		}))
	}
	return r
}

func handlerOf(log *slog.Logger) slog.Handler {
	if log == nil {
		return slog.DiscardHandler
	}
	return log.Handler()
}
