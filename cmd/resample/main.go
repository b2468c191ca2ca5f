// Copyright 2026 The Resample Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command resample runs bootstrap, jackknife and permutation procedures on
// samples read from files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/randinf/resample/export"
	"github.com/randinf/resample/instrument"
	"github.com/randinf/resample/internal/config"
)

// app holds the state shared by all subcommands.
type app struct {
	// Global flags
	verbose    bool
	configPath string
	format     string
	metricsOut string

	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *instrument.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "resample",
		Short: "Randomization-based inference from the command line",
		Long: `resample estimates sampling distributions by resampling.

Samples are read from files holding numbers separated by commas, whitespace
or newlines; '-' reads standard input. Results are printed as JSON or in the
Prometheus text exposition format.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.format {
			case "json", "text":
			default:
				return fmt.Errorf("invalid format %q (valid: json, text)", a.format)
			}

			zcfg := zap.NewProductionConfig()
			if a.verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger

			a.registry = prometheus.NewRegistry()
			a.metrics = instrument.NewMetrics(a.registry)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = a.logger.Sync() }()
			if a.metricsOut == "" {
				return nil
			}
			if err := prometheus.WriteToTextfile(a.metricsOut, a.registry); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
			a.logger.Debug("wrote metrics", zap.String("path", a.metricsOut))
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML run configuration")
	pf.StringVarP(&a.format, "format", "f", "json", "output format: json or text")
	pf.StringVar(&a.metricsOut, "metrics-out", "", "write run metrics to this file in text exposition format")
	pf.Uint64("seed", 0, "random seed; 0 picks one at random")
	pf.Int("workers", 0, "number of worker goroutines; 0 uses GOMAXPROCS")
	pf.String("statistic", "", "one-sample statistic")

	rootCmd.AddCommand(
		a.bootstrapCmd(),
		a.permutationCmd(),
		a.jackknifeCmd(),
		a.ecdfCmd(),
	)
	return rootCmd
}

// loadConfig loads the configuration file and applies the flags the user
// set explicitly.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("statistic") {
		cfg.Statistic, _ = flags.GetString("statistic")
	}
	if flags.Changed("replicates") {
		cfg.Bootstrap.Replicates, _ = flags.GetInt("replicates")
	}
	if flags.Changed("method") {
		cfg.Bootstrap.Method, _ = flags.GetString("method")
	}
	if flags.Changed("level") {
		cfg.Bootstrap.Level, _ = flags.GetFloat64("level")
	}
	if flags.Changed("interval") {
		cfg.Bootstrap.Interval, _ = flags.GetString("interval")
	}
	if flags.Changed("permutations") {
		cfg.Permutation.Permutations, _ = flags.GetInt("permutations")
	}
	if flags.Changed("alternative") {
		cfg.Permutation.Alternative, _ = flags.GetString("alternative")
	}
	if flags.Changed("exact") {
		cfg.Permutation.Exact, _ = flags.GetBool("exact")
	}
	if flags.Changed("two-sample-statistic") {
		cfg.Permutation.Statistic, _ = flags.GetString("two-sample-statistic")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a.logger.Debug("loaded configuration", zap.Any("config", cfg))
	return cfg, nil
}

// write renders r in the selected format and logs a summary of the run.
func (a *app) write(cmd *cobra.Command, r *export.Report, start time.Time) error {
	var err error
	switch a.format {
	case "text":
		err = r.EncodeText(cmd.OutOrStdout())
	default:
		err = r.EncodeJSON(cmd.OutOrStdout())
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fields := []zap.Field{
		zap.String("kind", r.Kind),
		zap.Int("n", r.N),
		zap.Duration("elapsed", time.Since(start)),
	}
	if cpu, err := cpuSeconds(); err != nil {
		a.logger.Debug("process cpu time unavailable", zap.Error(err))
	} else {
		fields = append(fields, zap.Float64("cpu_seconds", cpu))
	}
	a.logger.Info("run complete", fields...)
	return nil
}

// cpuSeconds returns the CPU time consumed by this process so far.
func cpuSeconds() (float64, error) {
	p, err := procfs.Self()
	if err != nil {
		return 0, err
	}
	stat, err := p.Stat()
	if err != nil {
		return 0, err
	}
	return stat.CPUTime(), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
