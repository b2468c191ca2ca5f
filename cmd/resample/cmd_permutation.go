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
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/randinf/resample/export"
	"github.com/randinf/resample/internal/config"
	"github.com/randinf/resample/internal/dataio"
	"github.com/randinf/resample/permutation"
)

func (a *app) permutationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permutation X Y",
		Short: "Run a permutation test comparing the samples in X and Y",
		Long: `Tests the null hypothesis that the samples in X and Y are exchangeable.

Tests:
  - two-sample (default): reassigns the pooled observations to groups
  - --paired:             flips the signs of the differences X[i]-Y[i]
  - --correlation:        permutes Y against X (Pearson correlation)

With --exact every relabeling is enumerated when there are few enough of them.

Example:
  resample permutation --two-sample-statistic welch_t --alternative greater treated.txt control.txt`,
		Args: cobra.ExactArgs(2),
		RunE: a.runPermutation,
	}
	f := cmd.Flags()
	f.Int("permutations", permutation.DefPermutations, "number of Monte Carlo permutations")
	f.String("alternative", "two-sided", "alternative hypothesis: two-sided, less or greater")
	f.Bool("exact", false, "enumerate all relabelings when feasible")
	f.String("two-sample-statistic", "diff_means", "two-sample statistic: diff_means, diff_medians or welch_t")
	f.Bool("paired", false, "run a paired sign-flip test")
	f.Bool("correlation", false, "run a correlation test")
	cmd.MarkFlagsMutuallyExclusive("paired", "correlation")
	return cmd
}

func (a *app) runPermutation(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	x, err := dataio.ReadFile(args[0])
	if err != nil {
		return err
	}
	y, err := dataio.ReadFile(args[1])
	if err != nil {
		return err
	}
	opts, err := cfg.PermutationOpts(a.metrics)
	if err != nil {
		return err
	}

	paired, _ := cmd.Flags().GetBool("paired")
	correlation, _ := cmd.Flags().GetBool("correlation")

	var (
		res       *permutation.Result
		test      string
		statistic string
	)
	switch {
	case paired:
		test, statistic = "paired", cfg.Statistic
		res, err = permutation.Paired(cmd.Context(), x, y, cfg.Stat(), opts)
	case correlation:
		test, statistic = "correlation", "pearson"
		res, err = permutation.Correlation(cmd.Context(), x, y, opts)
	default:
		test, statistic = "two_sample", cfg.Permutation.Statistic
		stat, ok := config.TwoSampleStatistics[statistic]
		if !ok {
			return errors.New("unknown two-sample statistic " + statistic)
		}
		res, err = permutation.TwoSample(cmd.Context(), x, y, stat, opts)
	}
	if err != nil {
		return err
	}

	return a.write(cmd, export.PermutationReport(test, statistic, len(x)+len(y), res), start)
}
