package indexer

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
)

// State describes the lifecycle of an Indexer handle.
type State int32

const (
	// StateUnverified is the state right after New: no probe has succeeded yet.
	StateUnverified State = iota
	// StateLive means at least one liveness probe succeeded.
	StateLive
	// StateClosed means resources were released. The handle must not be used.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnverified:
		return "unverified"
	case StateLive:
		return "live"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Indexer is a handle to a single indexer endpoint. It is owned by the caller
// that created it and must be released with Close.
type Indexer struct {
	client      *opensearch.Client
	address     string
	pingTimeout time.Duration

	state     atomic.Int32
	closeOnce sync.Once

	// broken is set when the client could not be built; client is nil then.
	broken error

	// probe and release default to ping and the transport's CloseIdleConnections.
	probe   func(context.Context) error
	release func()
}

// New builds a handle from cfg without touching the network. It validates
// nothing: if the client cannot be built from cfg, for example because the host
// is not a valid URL host, the handle is still returned and every probe on it
// fails with ErrUnreachable wrapping ErrConnectionFailed.
func New(cfg Config) *Indexer {
	ix := &Indexer{
		address:     cfg.Address(),
		pingTimeout: cfg.PingTimeout,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !cfg.VerifyCerts, //nolint:gosec // operator opt-out for self-signed clusters
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:           []string{ix.address},
		Username:            cfg.User,
		Password:            cfg.Password,
		Transport:           transport,
		CompressRequestBody: cfg.Compress,
		// Connect owns the retry policy; one probe is one request.
		DisableRetry: true,
	})
	if err != nil {
		ix.broken = errors.Join(ErrUnreachable, ErrConnectionFailed, err)
		ix.probe = func(context.Context) error { return ix.broken }
		ix.release = func() {}
		return ix
	}

	ix.client = client
	ix.release = transport.CloseIdleConnections
	ix.probe = ix.ping
	return ix
}

// Client returns the underlying OpenSearch client for index and query operations.
// It is nil when the client could not be built from the config; such a handle
// never passes Ping, so Connect does not return it.
func (ix *Indexer) Client() *opensearch.Client {
	return ix.client
}

// Address returns the base URL the handle talks to.
func (ix *Indexer) Address() string {
	return ix.address
}

// State reports the current lifecycle state.
func (ix *Indexer) State() State {
	return State(ix.state.Load())
}

// Ping issues a single liveness probe.
// Any failure to get a 2xx answer is reported as ErrUnreachable, except
// cancellation of ctx itself, which returns ctx.Err().
func (ix *Indexer) Ping(ctx context.Context) error {
	if ix.State() == StateClosed {
		return ErrClosed
	}
	if err := ix.probe(ctx); err != nil {
		return err
	}
	ix.state.CompareAndSwap(int32(StateUnverified), int32(StateLive))
	return nil
}

func (ix *Indexer) ping(ctx context.Context) error {
	pctx := ctx
	if ix.pingTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, ix.pingTimeout)
		defer cancel()
	}

	res, err := ix.client.Ping(ix.client.Ping.WithContext(pctx))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Join(ErrUnreachable, err)
	}
	if res.Body != nil {
		defer res.Body.Close()
	}
	if res.IsError() {
		return errors.Join(ErrUnreachable, fmt.Errorf("unexpected status %d", res.StatusCode))
	}
	return nil
}

// Version is the version block of the cluster info document.
type Version struct {
	Number       string `json:"number"`
	Distribution string `json:"distribution"`
}

// ClusterInfo is the subset of the root endpoint response used for diagnostics.
type ClusterInfo struct {
	Name        string  `json:"name"`
	ClusterName string  `json:"cluster_name"`
	ClusterUUID string  `json:"cluster_uuid"`
	Version     Version `json:"version"`
}

// Info fetches the cluster name and version.
func (ix *Indexer) Info(ctx context.Context) (ClusterInfo, error) {
	if ix.State() == StateClosed {
		return ClusterInfo{}, ErrClosed
	}
	if ix.broken != nil {
		return ClusterInfo{}, ix.broken
	}

	res, err := ix.client.Info(
		ix.client.Info.WithContext(ctx),
		ix.client.Info.WithErrorTrace(),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ClusterInfo{}, ctxErr
		}
		return ClusterInfo{}, errors.Join(ErrUnreachable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return ClusterInfo{}, errors.Join(ErrUnreachable, fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	var info ClusterInfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return ClusterInfo{}, fmt.Errorf("decode cluster info: %w", err)
	}
	return info, nil
}

// Close releases pooled connections. It is safe to call more than once;
// only the first call has an effect.
func (ix *Indexer) Close() error {
	ix.closeOnce.Do(func() {
		ix.state.Store(int32(StateClosed))
		if ix.release != nil {
			ix.release()
		}
	})
	return nil
}
