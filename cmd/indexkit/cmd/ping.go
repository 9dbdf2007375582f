package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/indexkit/pkg/indexer"
)

type pingResult struct {
	Address      string `json:"address"`
	Node         string `json:"node"`
	Cluster      string `json:"cluster"`
	Version      string `json:"version"`
	Distribution string `json:"distribution"`
}

// newPingCmd creates the ping command.
func newPingCmd(a *app) *cobra.Command {
	var (
		retries    int
		backoff    time.Duration
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Connect to the indexer and print cluster information",
		Long: `Connect to the indexer, retrying with exponential backoff, then print the
cluster name and version. Exits with status 3 if the indexer stays unreachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Indexer
			if cmd.Flags().Changed("retries") {
				cfg.Retries = retries
			}
			if cmd.Flags().Changed("backoff") {
				cfg.Backoff = backoff
			}

			ctx := cmd.Context()
			ix, err := indexer.Connect(ctx, cfg, indexer.WithLogger(a.log))
			if err != nil {
				return err
			}
			defer ix.Close()

			info, err := ix.Info(ctx)
			if err != nil {
				return err
			}

			res := pingResult{
				Address:      ix.Address(),
				Node:         info.Name,
				Cluster:      info.ClusterName,
				Version:      info.Version.Number,
				Distribution: info.Version.Distribution,
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			_, err = fmt.Fprintf(out, "%s is up: cluster %q, node %q, %s %s\n",
				res.Address, res.Cluster, res.Node, res.Distribution, res.Version)
			return err
		},
	}

	cmd.Flags().IntVar(&retries, "retries", indexer.DefaultRetries, "Probe retries after the first attempt (overrides INDEXER_RETRIES)")
	cmd.Flags().DurationVar(&backoff, "backoff", indexer.DefaultBackoff, "Base backoff, doubled on every retry (overrides INDEXER_BACKOFF)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output cluster info as JSON")

	return cmd
}
