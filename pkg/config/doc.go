// Package config provides a type-safe, generic way to load application
// configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11` to
// deliver a small API that:
//
//   - Reads values from one or multiple `.env` files (fallback to the default
//     `.env` in the current working directory when it exists).
//   - Overlays the real process environment, which always wins.
//   - Parses the result into any Go struct using field tags.
//   - Exposes MustLoad that panics on failure for configuration that is
//     critical to start the process.
//
// Unlike a process-wide registry, Load keeps no state between calls and never
// writes to the process environment. The intended pattern is to load every
// config struct once in main and pass the values down explicitly.
//
// # Usage
//
//	import (
//	    "github.com/dmitrymomot/indexkit/pkg/config"
//	    "github.com/dmitrymomot/indexkit/pkg/indexer"
//	)
//
//	cfg, err := config.Load[indexer.Config]("deploy/.env")
//	if err != nil {
//	    return err
//	}
//	ix, err := indexer.Connect(ctx, cfg)
//
// # Error Handling
//
// Errors are joined with package sentinels so callers can use errors.Is:
//
//	if errors.Is(err, config.ErrLoadingEnvFile) {
//	    // a named .env file is missing or malformed
//	}
package config
