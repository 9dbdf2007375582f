package cmd

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/indexkit/pkg/httpserver"
	"github.com/dmitrymomot/indexkit/pkg/indexer"
)

// newServeCmd creates the serve command.
func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Connect to the indexer and serve health and metrics endpoints",
		Long: `Connect to the indexer, retrying with exponential backoff, then serve
/health/live, /health/ready and /metrics until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := indexer.NewMetrics(reg)

			ix, err := indexer.Connect(ctx, a.cfg.Indexer,
				indexer.WithLogger(a.log),
				indexer.WithMetrics(metrics),
			)
			if err != nil {
				return err
			}
			defer ix.Close()

			probe := a.cfg.Probe
			if addr != "" {
				probe.Addr = addr
			}

			var srv *httpserver.Server
			srv = httpserver.NewFromConfig(probe,
				httpserver.WithLogger(a.log),
				httpserver.WithStartHook(func(log *slog.Logger) {
					log.InfoContext(ctx, "Probe server listening", slog.String("addr", srv.Addr()))
				}),
				httpserver.WithStopHook(func(log *slog.Logger) {
					log.InfoContext(ctx, "Probe server stopped")
				}),
			)

			h := httpserver.Routes(a.log, reg, httpserver.Check{
				Name: "indexer",
				Fn:   indexer.Healthcheck(ix),
			})
			return srv.Run(ctx, h)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Probe server listen address (overrides PROBE_ADDR)")

	return cmd
}
