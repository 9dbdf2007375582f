// Package httpserver provides the probe server: a small wrapper around
// net/http with graceful shutdown, configurable timeouts, health-check
// handlers and a Prometheus metrics endpoint.
//
// The core type is Server which owns an *http.Server and augments it with:
//
//   - Graceful Shutdown – Run blocks until the context is cancelled or
//     Shutdown is called and then stops the server using
//     http.Server.Shutdown with a configurable deadline. Signal handling is
//     left to the caller, typically via signal.NotifyContext.
//
//   - Functional Options – Construction is done through New or NewFromConfig
//     together with Option helpers such as WithAddr, WithReadTimeout and
//     WithLogger.
//
//   - Hooks – WithStartHook and WithStopHook let callers execute side-effects
//     around the server life-cycle. Start hooks run once the listener is bound,
//     so Addr reports the real port when the server listens on ":0".
//
//   - Health Checks – HealthCheckHandler returns an http.HandlerFunc that can
//     be mounted as both liveness and readiness probes.
//
// Routes wires the handlers into a chi router:
//
//	GET /health/live   200 ALIVE
//	GET /health/ready  200 READY or 503 NOT_READY
//	GET /metrics       Prometheus exposition format
//
// # Usage
//
//	ix, err := indexer.Connect(ctx, cfg.Indexer)
//	if err != nil {
//		return err
//	}
//	defer ix.Close()
//
//	h := httpserver.Routes(log, reg, httpserver.Check{
//		Name: "indexer",
//		Fn:   indexer.Healthcheck(ix),
//	})
//
//	srv := httpserver.NewFromConfig(cfg.Probe, httpserver.WithLogger(log))
//	return srv.Run(ctx, h)
//
// # Errors
//
// Run wraps all listen errors with ErrStart, while Shutdown wraps underlying
// shutdown errors with ErrShutdown. Use errors.Is to distinguish them.
package httpserver
