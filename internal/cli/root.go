// SPDX-License-Identifier: MIT

// Package cli provides the mcik command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mcik/internal/cli/output"
	"github.com/katalvlaran/mcik/internal/config"
	"github.com/katalvlaran/mcik/internal/telemetry"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// runtimeKey stores the per-invocation runtime in the command context.
type runtimeKey struct{}

// runtime is everything a subcommand needs after configuration is loaded.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	renderer *output.Renderer
}

// fromContext returns the runtime installed by PersistentPreRunE.
func fromContext(ctx context.Context) (*runtime, error) {
	rt, ok := ctx.Value(runtimeKey{}).(*runtime)
	if !ok {
		return nil, fmt.Errorf("cli: configuration not loaded")
	}

	return rt, nil
}

// newLogger builds the stderr slog handler selected by the config.
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "mcik",
		Short: "Micro-cause influence kernels on a nonlinear ring lattice",
		Long: `mcik derives first- and second-order sensitivity kernels of a 1-D
nonlinear ring lattice, propagates them through time and reports how fast a
micro-cause grows or decays.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				logger.Info("using config file", "path", cfg.File)
			}
			rt := &runtime{
				cfg:      cfg,
				logger:   logger,
				metrics:  telemetry.New(),
				renderer: output.NewRenderer(cmd.OutOrStdout(), output.Mode(cfg.Output)),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, rt))

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := fromContext(cmd.Context())
			if err != nil {
				return nil
			}

			return rt.metrics.WriteTextfile(rt.cfg.MetricsFile)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./mcik.yaml)")
	pf.Int("size", 0, "number of lattice sites (>= 3)")
	pf.Float64("alpha", 0, "self-coupling α")
	pf.Float64("beta", 0, "neighbour coupling β")
	pf.String("precision", "", "scalar precision (single|double)")
	pf.String("squash", "", "nonlinearity (tanh|algebraic|arctan)")
	pf.Int("steps", 0, "number of time steps")
	pf.Int("origin", 0, "micro-cause origin site for growth metrics")
	pf.String("seed", "", "initial state (zero|pokes|pulse|chirp)")
	pf.StringSlice("poke", nil, "initial poke site=value (repeatable)")
	pf.Float64("amplitude", 0, "pulse/chirp amplitude")
	pf.Int("workers", 0, "concurrent sweep workers (0 = one per CPU)")
	pf.StringP("output", "o", "", "output format (table|json|yaml)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-format", "", "log format (text|json)")
	pf.String("metrics", "", "write Prometheus metrics to this textfile")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newKernelCommand())
	rootCmd.AddCommand(newHessianCommand())
	rootCmd.AddCommand(newPropagateCommand())
	rootCmd.AddCommand(newSimulateCommand())
	rootCmd.AddCommand(newTuneCommand())
	rootCmd.AddCommand(newSweepCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return err
	}

	return nil
}

// newVersionCommand creates the version command.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mcik v%s (%s)\n", Version, GitCommit)
		},
	}
}
