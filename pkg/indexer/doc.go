// Package indexer connects to an OpenSearch-compatible indexer (the Wazuh
// indexer by default) and verifies that it is live before handing the client
// to the caller.
//
// It builds on github.com/opensearch-project/opensearch-go/v2 for the wire
// protocol and github.com/sethvargo/go-retry for the retry loop. Beyond the
// underlying client, the package focuses on a few public touch points:
//
//   - Config – declarative connection settings that can be populated from
//     environment variables via github.com/dmitrymomot/indexkit/pkg/config.
//
//   - New – builds an *Indexer handle without any network call.
//
//   - Connect – builds the handle once and retries its liveness probe with
//     exponential backoff plus jitter until the indexer answers or the retry
//     budget is spent.
//
//   - Healthcheck – returns a function suitable for liveness / readiness probes.
//
// # Usage
//
//	import (
//	    "context"
//	    "github.com/dmitrymomot/indexkit/pkg/config"
//	    "github.com/dmitrymomot/indexkit/pkg/indexer"
//	)
//
//	cfg, _ := config.Load[indexer.Config]()
//	ix, err := indexer.Connect(context.Background(), cfg, indexer.WithLogger(log))
//	if err != nil {
//	    // errors.Is(err, indexer.ErrUnreachable) once the budget is exhausted
//	}
//	defer ix.Close()
//
//	res, _ := ix.Client().Indices.Exists([]string{"wazuh-alerts"})
//
// # Retry schedule
//
// With Backoff b the waits are b, 2b, 4b, ... each plus a uniform jitter in
// [0s, 1s). There is no upper bound on the exponential term. Retries counts
// retries, not attempts: Retries = 5 allows six probes.
//
// # Error Handling
//
// ErrUnreachable is the only retried error and maps to CodeUnreachable.
// Cancellation of the context passed to Connect stops the loop at once.
//
//	if errors.Is(err, indexer.ErrUnreachable) {
//	    report(indexer.Code(err), err) // 2200
//	}
package indexer
