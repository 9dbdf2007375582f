package indexer

import (
	"context"
	"errors"
)

// Healthcheck returns a function suitable for liveness/readiness probes.
// The returned function sends one Ping to the indexer and is safe for
// concurrent use in HTTP health endpoints.
func Healthcheck(ix *Indexer) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := ix.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
