package indexer

import (
	"net"
	"strconv"
	"time"
)

// Development defaults. Production deployments are expected to override
// credentials through the environment.
const (
	DefaultHost     = "wazuh-indexer"
	DefaultPort     = 9200
	DefaultUser     = "admin"
	DefaultPassword = "SecretPassword1%"
	DefaultRetries  = 5
	DefaultBackoff  = time.Second

	DefaultPingTimeout = 10 * time.Second
)

// Config holds indexer connection parameters with environment variable mapping.
// Uses struct tags compatible with github.com/dmitrymomot/indexkit/pkg/config.
// Values are passed to the client verbatim; nothing is validated until the
// first liveness probe.
type Config struct {
	Host        string        `env:"INDEXER_HOST" envDefault:"wazuh-indexer" yaml:"host"`            // Host is the indexer hostname or IP address.
	Port        int           `env:"INDEXER_PORT" envDefault:"9200" yaml:"port"`                     // Port is the indexer HTTP port.
	User        string        `env:"INDEXER_USER" envDefault:"admin" yaml:"user"`                    // User is the basic auth username.
	Password    string        `env:"INDEXER_PASSWORD" envDefault:"SecretPassword1%" yaml:"password"` // Password is the basic auth password.
	UseTLS      bool          `env:"INDEXER_USE_TLS" envDefault:"true" yaml:"use_tls"`               // UseTLS selects https instead of http.
	VerifyCerts bool          `env:"INDEXER_VERIFY_CERTS" envDefault:"true" yaml:"verify_certs"`     // VerifyCerts enables server certificate verification.
	Compress    bool          `env:"INDEXER_COMPRESS" envDefault:"true" yaml:"compress"`             // Compress enables gzip request bodies.
	Retries     int           `env:"INDEXER_RETRIES" envDefault:"5" yaml:"retries"`                  // Retries is the number of probe retries after the first attempt.
	Backoff     time.Duration `env:"INDEXER_BACKOFF" envDefault:"1s" yaml:"backoff"`                 // Backoff is the base wait, doubled on every retry.
	PingTimeout time.Duration `env:"INDEXER_PING_TIMEOUT" envDefault:"10s" yaml:"ping_timeout"`      // PingTimeout bounds a single probe. Zero disables it.
}

// DefaultConfig returns the configuration used when no environment overrides are set.
func DefaultConfig() Config {
	return Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		User:        DefaultUser,
		Password:    DefaultPassword,
		UseTLS:      true,
		VerifyCerts: true,
		Compress:    true,
		Retries:     DefaultRetries,
		Backoff:     DefaultBackoff,
		PingTimeout: DefaultPingTimeout,
	}
}

// Address returns the base URL of the indexer, e.g. "https://wazuh-indexer:9200".
func (c Config) Address() string {
	scheme := "http"
	if c.UseTLS {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Redacted returns a copy of the config safe for printing.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "********"
	}
	return c
}
