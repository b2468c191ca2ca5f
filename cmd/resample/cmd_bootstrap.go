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

package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/randinf/resample/bootstrap"
	"github.com/randinf/resample/export"
	"github.com/randinf/resample/internal/dataio"
)

func (a *app) bootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap FILE",
		Short: "Bootstrap a statistic and report bias, standard error and a confidence interval",
		Long: `Draws resamples with replacement from the sample in FILE, applies the
statistic to each of them and reports the bootstrap estimates of bias and
standard error together with a confidence interval.

Methods:
  - ordinary:   independent resamples
  - balanced:   every observation is drawn exactly --replicates times
  - antithetic: resamples are paired by mirrored influence ranks

Intervals: percentile, basic, normal, bca

Example:
  resample bootstrap --statistic median --method balanced --interval bca data.txt`,
		Args: cobra.ExactArgs(1),
		RunE: a.runBootstrap,
	}
	f := cmd.Flags()
	f.Int("replicates", bootstrap.DefReplicates, "number of resamples")
	f.String("method", "ordinary", "resampling method")
	f.Float64("level", 0.95, "confidence level")
	f.String("interval", "percentile", "confidence interval construction")
	return cmd
}

func (a *app) runBootstrap(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	sample, err := dataio.ReadFile(args[0])
	if err != nil {
		return err
	}
	opts, err := cfg.BootstrapOpts(a.metrics)
	if err != nil {
		return err
	}
	kind, err := cfg.IntervalKind()
	if err != nil {
		return err
	}

	stat := cfg.Stat()
	res, err := bootstrap.Run(cmd.Context(), sample, stat, opts)
	if err != nil {
		return err
	}
	a.logger.Debug("bootstrap finished",
		zap.String("method", res.Method.String()),
		zap.Uint64("seed", res.Seed),
		zap.Int("replicates", len(res.Replicates)))

	var ci bootstrap.Interval
	if kind == bootstrap.BCa {
		ci, err = res.BCa(sample, stat, cfg.Bootstrap.Level)
	} else {
		ci, err = res.Interval(kind, cfg.Bootstrap.Level)
	}
	if err != nil {
		return err
	}

	return a.write(cmd, export.BootstrapReport(cfg.Statistic, len(sample), res, &ci), start)
}
