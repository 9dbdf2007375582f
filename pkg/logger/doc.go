// Package logger provides a thin factory around Go's slog package adding
// functional options for configuration and helper attribute constructors.
//
// The package standardises structured logging across the indexkit binaries by
// exposing a single factory – New – that creates a *slog.Logger configured by
// a set of Option functions. These options allow you to:
//
//   • Select an output format (text or json)
//   • Set the minimum log level
//   • Supply default slog.Attr values applied to every record
//   • Apply development / staging / production presets
//
// NewFromConfig builds the same logger from an env-tagged Config so that the
// log level and format can be tuned per deployment.
//
// Helper constructors such as Error, RetryCount, Duration or Address live in
// attr.go and keep attribute naming consistent across the codebase.
//
// # Usage
//
//	import "github.com/dmitrymomot/indexkit/pkg/logger"
//
//	func main() {
//	    log := logger.New(logger.WithDevelopment("indexkit"))
//	    logger.SetAsDefault(log)
//
//	    log.Warn("cannot initialize the indexer client",
//	        logger.RetryCount(1),
//	        logger.Error(err),
//	    )
//	}
//
// # Error Handling
//
// The Error helper produces an attribute only when the supplied
// error is non-nil, allowing calls like:
//
//	log.Info("operation succeeded", logger.Error(err))
//
// WithFormat panics on unknown formats; NewFromConfig returns an error instead.
package logger
