package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHandle wires a handle to a scripted probe and counts releases.
type fakeHandle struct {
	ix       *Indexer
	probes   int
	releases int
}

func newFakeHandle(t *testing.T, probe func(attempt int) error) *fakeHandle {
	t.Helper()

	ix := New(Config{Host: "127.0.0.1", Port: 1})

	f := &fakeHandle{ix: ix}
	ix.probe = func(context.Context) error {
		f.probes++
		return probe(f.probes - 1)
	}
	ix.release = func() { f.releases++ }
	return f
}

func failAlways(int) error {
	return errors.Join(ErrUnreachable, errors.New("connection refused"))
}

func succeedAt(k int) func(int) error {
	return func(attempt int) error {
		if attempt < k {
			return failAlways(attempt)
		}
		return nil
	}
}

// captureLog returns options with a JSON logger writing to buf and no jitter.
func captureLog(buf *bytes.Buffer) *options {
	return newOptions(
		WithLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		WithRand(func() float64 { return 0 }),
	)
}

// sleeps extracts the waits logged before each retry.
func sleeps(t *testing.T, buf *bytes.Buffer) []time.Duration {
	t.Helper()

	var out []time.Duration
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry struct {
			Msg      string `json:"msg"`
			Duration int64  `json:"duration"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry.Msg == "Sleeping until next try" {
			out = append(out, time.Duration(entry.Duration))
		}
	}
	return out
}

func TestConnect_ExhaustsBudget(t *testing.T) {
	for _, retries := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("retries=%d", retries), func(t *testing.T) {
			f := newFakeHandle(t, failAlways)
			buf := &bytes.Buffer{}

			err := connect(context.Background(), f.ix, retries, time.Millisecond, captureLog(buf))

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnreachable)
			assert.Equal(t, CodeUnreachable, Code(err))
			assert.Equal(t, retries+1, f.probes, "one attempt plus one per retry")
			assert.Equal(t, 1, f.releases, "handle closed exactly once")
			assert.Equal(t, StateClosed, f.ix.State())
			assert.Len(t, sleeps(t, buf), retries)
		})
	}
}

func TestConnect_ZeroRetriesNoWait(t *testing.T) {
	f := newFakeHandle(t, failAlways)
	buf := &bytes.Buffer{}

	start := time.Now()
	err := connect(context.Background(), f.ix, 0, time.Hour, captureLog(buf))

	require.ErrorIs(t, err, ErrUnreachable)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, f.probes)
	assert.Empty(t, sleeps(t, buf))
	assert.Equal(t, 1, f.releases)
}

func TestConnect_NegativeRetriesActsAsZero(t *testing.T) {
	f := newFakeHandle(t, failAlways)

	err := connect(context.Background(), f.ix, -3, time.Hour, newOptions())

	require.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, 1, f.probes)
}

func TestConnect_SucceedsAfterFailures(t *testing.T) {
	for k := 0; k <= 3; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			f := newFakeHandle(t, succeedAt(k))
			buf := &bytes.Buffer{}

			err := connect(context.Background(), f.ix, 3, time.Millisecond, captureLog(buf))

			require.NoError(t, err)
			assert.Equal(t, k+1, f.probes, "no probes after the first success")
			assert.Len(t, sleeps(t, buf), k)
			assert.Zero(t, f.releases, "live handle must not be closed")
			assert.Equal(t, StateLive, f.ix.State())
		})
	}
}

func TestConnect_Scenario(t *testing.T) {
	// base=1 unit, two failures, success on the third probe.
	base := 2 * time.Millisecond
	f := newFakeHandle(t, succeedAt(2))
	buf := &bytes.Buffer{}

	err := connect(context.Background(), f.ix, 2, base, captureLog(buf))

	require.NoError(t, err)
	assert.Equal(t, 3, f.probes)
	assert.Equal(t, []time.Duration{base, 2 * base}, sleeps(t, buf))
	assert.Zero(t, f.releases)
}

func TestConnect_LogsWarningBeforeEachWait(t *testing.T) {
	f := newFakeHandle(t, succeedAt(1))
	buf := &bytes.Buffer{}

	require.NoError(t, connect(context.Background(), f.ix, 1, time.Millisecond, captureLog(buf)))

	out := buf.String()
	warn := strings.Index(out, "Cannot initialize the indexer client")
	sleep := strings.Index(out, "Sleeping until next try")
	require.GreaterOrEqual(t, warn, 0)
	require.GreaterOrEqual(t, sleep, 0)
	assert.Less(t, warn, sleep)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, "connection refused")
}

func TestConnect_OtherErrorsAreNotRetried(t *testing.T) {
	boom := errors.New("boom")
	f := newFakeHandle(t, func(int) error { return boom })
	buf := &bytes.Buffer{}

	err := connect(context.Background(), f.ix, 5, time.Millisecond, captureLog(buf))

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, 1, f.probes)
	assert.Empty(t, sleeps(t, buf))
	assert.Equal(t, 1, f.releases)
}

func TestConnect_CancelDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFakeHandle(t, func(attempt int) error {
		cancel()
		return failAlways(attempt)
	})

	start := time.Now()
	err := connect(ctx, f.ix, 5, time.Hour, newOptions())

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, f.probes)
	assert.Equal(t, 1, f.releases)
}

func TestConnect_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newFakeHandle(t, succeedAt(0))

	err := connect(ctx, f.ix, 5, time.Millisecond, newOptions())

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.probes)
	assert.Equal(t, StateClosed, f.ix.State())
}

func TestConnect_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	f := newFakeHandle(t, succeedAt(2))
	o := newOptions(WithMetrics(m), WithRand(func() float64 { return 0 }))
	require.NoError(t, connect(context.Background(), f.ix, 3, time.Millisecond, o))

	g := newFakeHandle(t, failAlways)
	require.Error(t, connect(context.Background(), g.ix, 1, time.Millisecond, o))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.probes.WithLabelValues("success")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.probes.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.connects.WithLabelValues(outcomeConnected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.connects.WithLabelValues(outcomeExhausted)))
}

// countHandles replaces newHandle for the test, counting constructions and
// the probes and releases of the last handle built.
func countHandles(t *testing.T) *struct{ builds, probes, releases int } {
	t.Helper()

	c := &struct{ builds, probes, releases int }{}
	orig := newHandle
	t.Cleanup(func() { newHandle = orig })

	newHandle = func(cfg Config) *Indexer {
		c.builds++
		ix := orig(cfg)
		probe, release := ix.probe, ix.release
		ix.probe = func(ctx context.Context) error {
			c.probes++
			return probe(ctx)
		}
		ix.release = func() {
			c.releases++
			release()
		}
		return ix
	}
	return c
}

func TestConnect_MalformedHost(t *testing.T) {
	c := countHandles(t)
	cfg := Config{Host: "bad host", Port: 9200, Retries: 2, Backoff: time.Millisecond}

	ix, err := Connect(context.Background(), cfg, WithRand(func() float64 { return 0 }))

	require.Error(t, err)
	assert.Nil(t, ix)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.ErrorIs(t, err, ErrConnectionFailed)
	assert.Equal(t, CodeUnreachable, Code(err))
	assert.Equal(t, 3, c.probes, "one attempt plus one per retry")
	assert.Equal(t, 1, c.releases, "handle closed exactly once")
}

func TestNew_MalformedHost(t *testing.T) {
	ix := New(Config{Host: "bad host", Port: 9200})
	defer ix.Close()

	assert.Nil(t, ix.Client())
	assert.Equal(t, StateUnverified, ix.State())
	assert.ErrorIs(t, ix.Ping(context.Background()), ErrUnreachable)

	_, err := ix.Info(context.Background())
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestConnect_BuildsHandleOnce(t *testing.T) {
	for _, k := range []int{0, 2} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			c := countHandles(t)
			cfg := Config{Host: "bad host", Port: 9200, Retries: k, Backoff: time.Millisecond}

			_, err := Connect(context.Background(), cfg, WithRand(func() float64 { return 0 }))

			require.ErrorIs(t, err, ErrUnreachable)
			assert.Equal(t, 1, c.builds)
			assert.Equal(t, k+1, c.probes)
		})
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.probed(true)
		m.waited(time.Second)
		m.connected(outcomeAborted)
	})
}
