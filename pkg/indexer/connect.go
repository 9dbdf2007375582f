package indexer

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrymomot/indexkit/pkg/logger"
)

// Connect builds a handle from cfg and probes it until the indexer answers.
//
// The handle is created once; only the probe is repeated. After a failed probe
// Connect waits cfg.Backoff*2^i plus up to one second of jitter, where i counts
// the retries already spent, and gives up once cfg.Retries retries are used.
// cfg.Retries == 0 means a single attempt with no wait.
//
// Only ErrUnreachable is retried. Any other error, including cancellation of
// ctx, ends the loop immediately. On every failure path the handle is closed
// and the error is returned unchanged, so errors.Is(err, ErrUnreachable)
// holds after the budget is exhausted. The handle is closed for errors that are
// not retried too, not only for an exhausted budget, since it is never returned.
//
// A config the client rejects outright, such as a host with a space in it, is
// treated like an unreachable indexer: the budget is spent and the error wraps
// both ErrUnreachable and ErrConnectionFailed.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Indexer, error) {
	o := newOptions(opts...)

	ix := newHandle(cfg)
	if err := connect(ctx, ix, cfg.Retries, cfg.Backoff, o); err != nil {
		return nil, err
	}
	return ix, nil
}

// newHandle is the single construction point used by Connect.
var newHandle = New

func connect(ctx context.Context, ix *Indexer, retries int, base time.Duration, o *options) error {
	log := o.logger.With(logger.Component("indexer"), logger.Address(ix.Address()))

	var (
		attempts int
		lastErr  error
	)

	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		wait := delay(base, attempts-1, o.rand)
		log.WarnContext(ctx, "Cannot initialize the indexer client",
			logger.RetryCount(attempts),
			logger.Error(lastErr),
		)
		log.InfoContext(ctx, "Sleeping until next try", logger.Duration(wait))
		o.metrics.waited(wait)
		return wait, false
	})

	err := retry.Do(ctx, retry.WithMaxRetries(uint64(max(retries, 0)), backoff), func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		attempts++
		err := ix.Ping(ctx)
		o.metrics.probed(err == nil)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrUnreachable) {
			lastErr = err
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil {
		o.metrics.connected(outcomeConnected)
		log.InfoContext(ctx, "Indexer connection established", logger.RetryCount(attempts-1))
		return nil
	}

	_ = ix.Close()

	if errors.Is(err, ErrUnreachable) {
		o.metrics.connected(outcomeExhausted)
		log.ErrorContext(ctx, "Indexer is not reachable, giving up",
			logger.RetryCount(attempts-1),
			logger.Error(err),
		)
	} else {
		o.metrics.connected(outcomeAborted)
		log.ErrorContext(ctx, "Indexer connection aborted", logger.Error(err))
	}
	return err
}
