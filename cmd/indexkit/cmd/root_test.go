package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/indexkit/pkg/indexer"
)

const infoBody = `{
  "name": "node-1",
  "cluster_name": "wazuh-cluster",
  "cluster_uuid": "f1Q9mT3sQ2mP2oYp0n8Z2A",
  "version": {"number": "2.13.0", "distribution": "opensearch"}
}`

// fakeIndexer answers the liveness probe and the info request.
func fakeIndexer(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(infoBody))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// pointAt sets the indexer environment to target srv over plain http.
func pointAt(t *testing.T, srv *httptest.Server) {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	t.Setenv("INDEXER_HOST", host)
	t.Setenv("INDEXER_PORT", port)
	t.Setenv("INDEXER_USE_TLS", "false")
	t.Setenv("INDEXER_BACKOFF", "1ms")
}

// run executes the root command with args and captures both streams.
func run(ctx context.Context, args ...string) (stdout, stderr string, err error) {
	root := NewRootCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"ping", "serve", "config"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"env-file", "log-format", "log-level"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootCmd_InvalidLogFormat(t *testing.T) {
	_, _, err := run(context.Background(), "config", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestRootCmd_MissingEnvFile(t *testing.T) {
	_, _, err := run(context.Background(), "config", "--env-file", "testdata/missing.env")
	require.Error(t, err)
}

func TestRootCmd_SetsDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	root := NewRootCmd()
	errOut := &bytes.Buffer{}
	root.SetOut(&bytes.Buffer{})
	root.SetErr(errOut)
	root.SetArgs([]string{"config", "--log-format", "json"})
	require.NoError(t, root.Execute())

	slog.Info("after setup")
	assert.Contains(t, errOut.String(), `"msg":"after setup"`)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
	assert.Equal(t, exitUnreachable, exitCode(errors.Join(indexer.ErrUnreachable, errors.New("refused"))))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.Join(indexer.ErrUnreachable, errors.New("refused")))
	assert.Contains(t, buf.String(), "Error [2200]:")
	assert.Contains(t, buf.String(), "refused")

	buf.Reset()
	printError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}
