package httpserver

import "time"

type Config struct {
	Addr            string        `env:"PROBE_ADDR" envDefault:":9090" yaml:"addr"`                      // Addr is the address the probe server listens on.
	ReadTimeout     time.Duration `env:"PROBE_READ_TIMEOUT" envDefault:"10s" yaml:"read_timeout"`        // ReadTimeout is the maximum duration for reading the entire request.
	WriteTimeout    time.Duration `env:"PROBE_WRITE_TIMEOUT" envDefault:"30s" yaml:"write_timeout"`      // WriteTimeout bounds a response; readiness checks run inside it.
	IdleTimeout     time.Duration `env:"PROBE_IDLE_TIMEOUT" envDefault:"120s" yaml:"idle_timeout"`       // IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	ShutdownTimeout time.Duration `env:"PROBE_SHUTDOWN_TIMEOUT" envDefault:"5s" yaml:"shutdown_timeout"` // ShutdownTimeout is the time allowed for graceful shutdown.
}

// NewFromConfig creates a new Server from the provided Config.
// Only non-zero values from the config are applied.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	configOpts := make([]Option, 0, 5)

	if cfg.Addr != "" {
		configOpts = append(configOpts, WithAddr(cfg.Addr))
	}
	if cfg.ReadTimeout > 0 {
		configOpts = append(configOpts, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		configOpts = append(configOpts, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		configOpts = append(configOpts, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		configOpts = append(configOpts, WithShutdownTimeout(cfg.ShutdownTimeout))
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
