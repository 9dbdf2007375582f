// Package requestid tags probe server requests with a correlation ID.
//
// Middleware reuses a client supplied "X-Request-ID" header when it is well
// formed and otherwise generates a UUIDv4. The ID is stored in the request
// context and echoed back in the response header, so a failing readiness
// probe seen by an orchestrator can be matched with the server log line
// that explains it:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
//		log.WarnContext(r.Context(), "Readiness check failed", requestid.Attr(r.Context()))
//	})
//
// Invalid IDs are replaced silently; the package never returns errors.
package requestid
