package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/indexkit/pkg/logger"
	"github.com/dmitrymomot/indexkit/pkg/requestid"
)

// Check is a named readiness dependency.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// HealthCheckHandler returns a HTTP handler that can be used for both
// liveness and readiness probes.
//
//   - Liveness: when no checks are supplied the handler simply returns
//     200 OK with body "ALIVE".
//   - Readiness: when one or more checks are supplied each one runs with the
//     request context; if they all succeed the handler returns 200 OK with
//     body "READY". The first failing check stops the walk and the handler
//     returns 503 Service Unavailable with body "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")

		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx := r.Context()
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.WarnContext(ctx, "Readiness check failed",
					requestid.Attr(ctx),
					slog.String("check", c.Name),
					logger.Error(err),
				)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
