package indexer

import (
	"log/slog"
	"math/rand/v2"
)

// Option configures Connect.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *Metrics
	rand    func() float64
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger: slog.New(slog.DiscardHandler),
		rand:   rand.Float64,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for retry warnings. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records probe attempts, backoff waits and connect outcomes.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithRand replaces the jitter source. f must return values in [0, 1).
// Nil is ignored.
func WithRand(f func() float64) Option {
	return func(o *options) {
		if f != nil {
			o.rand = f
		}
	}
}
