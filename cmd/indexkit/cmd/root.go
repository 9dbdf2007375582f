// Package cmd provides the CLI commands for indexkit.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/indexkit/pkg/config"
	"github.com/dmitrymomot/indexkit/pkg/httpserver"
	"github.com/dmitrymomot/indexkit/pkg/indexer"
	"github.com/dmitrymomot/indexkit/pkg/logger"
)

// Process exit codes. An exhausted connect budget gets its own status so
// supervisors can tell "indexer down" apart from bad input.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUnreachable = 3
)

// settings is the full process configuration, loaded once per invocation.
type settings struct {
	Indexer indexer.Config    `yaml:"indexer"`
	Log     logger.Config     `yaml:"log"`
	Probe   httpserver.Config `yaml:"probe"`
}

// app carries state shared by the subcommands.
type app struct {
	envFiles  []string
	logFormat string
	logLevel  string

	cfg settings
	log *slog.Logger
}

// NewRootCmd creates the root command for the indexkit CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "indexkit",
		Short: "Connect to a Wazuh indexer and keep watch over it",
		Long: `indexkit opens a connection to a Wazuh indexer (an OpenSearch cluster),
retrying with exponential backoff until the cluster answers its liveness probe.

Configuration comes from INDEXER_*, LOG_* and PROBE_* environment variables,
optionally seeded from one or more env files.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "Env file to load before the process environment (repeatable)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text or json (overrides LOG_FORMAT)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")

	cmd.AddCommand(newPingCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// setup loads configuration and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load[settings](a.envFiles...)
	if err != nil {
		return err
	}

	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := logger.NewFromConfig(cfg.Log, logger.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	logger.SetAsDefault(log)
	a.cfg = cfg
	a.log = log
	return nil
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM
// and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return exitCode(err)
}

func printError(w io.Writer, err error) {
	if code := indexer.Code(err); code != 0 {
		_, _ = fmt.Fprintf(w, "Error [%d]: %v\n", code, err)
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, indexer.ErrUnreachable):
		return exitUnreachable
	default:
		return exitFailure
	}
}
