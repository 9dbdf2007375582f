package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the probe server. Constructors panic on invalid input.
type Option func(*config)

// WithAddr sets the listen address. Use "127.0.0.1:0" for an ephemeral port.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr: empty address")
	}
	return func(c *config) { c.addr = addr }
}

// WithReadHeaderTimeout bounds reading request headers.
func WithReadHeaderTimeout(d time.Duration) Option {
	return timeout("WithReadHeaderTimeout", d, func(c *config) *time.Duration { return &c.readHeaderTimeout })
}

// WithReadTimeout bounds reading the whole request.
func WithReadTimeout(d time.Duration) Option {
	return timeout("WithReadTimeout", d, func(c *config) *time.Duration { return &c.readTimeout })
}

// WithWriteTimeout bounds writing the response, readiness checks included.
func WithWriteTimeout(d time.Duration) Option {
	return timeout("WithWriteTimeout", d, func(c *config) *time.Duration { return &c.writeTimeout })
}

// WithIdleTimeout bounds keep-alive idle time.
func WithIdleTimeout(d time.Duration) Option {
	return timeout("WithIdleTimeout", d, func(c *config) *time.Duration { return &c.idleTimeout })
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return timeout("WithShutdownTimeout", d, func(c *config) *time.Duration { return &c.shutdownTimeout })
}

func timeout(name string, d time.Duration, field func(*config) *time.Duration) Option {
	if d <= 0 {
		panic("httpserver: " + name + ": duration must be > 0")
	}
	return func(c *config) { *field(c) = d }
}

// WithLogger sets the logger passed to hooks. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithStartHook runs h once the listener is bound.
func WithStartHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: WithStartHook: nil hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook runs h after graceful shutdown.
func WithStopHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: WithStopHook: nil hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}
