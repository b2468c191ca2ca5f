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

	"github.com/randinf/resample/export"
	"github.com/randinf/resample/internal/dataio"
	"github.com/randinf/resample/stats"
)

func (a *app) jackknifeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jackknife FILE",
		Short: "Report jackknife estimates of bias and variance and the empirical influence values",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runJackknife,
	}
}

func (a *app) runJackknife(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	sample, err := dataio.ReadFile(args[0])
	if err != nil {
		return err
	}

	stat := cfg.Stat()
	bias, err := stats.JackknifeBias(sample, stat)
	if err != nil {
		return err
	}
	variance, err := stats.JackknifeVariance(sample, stat)
	if err != nil {
		return err
	}
	influence, err := stats.EmpiricalInfluence(sample, stat)
	if err != nil {
		return err
	}

	r := export.JackknifeReport(cfg.Statistic, stat(sample), bias, variance, influence)
	return a.write(cmd, r, start)
}

func (a *app) ecdfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecdf FILE",
		Short: "Evaluate the empirical distribution function of a sample",
		Long: `Evaluates the empirical distribution function of the sample in FILE at
the points given with --at, or at every distinct observation if none are
given.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runECDF,
	}
	cmd.Flags().Float64Slice("at", nil, "evaluation points")
	return cmd
}

func (a *app) runECDF(cmd *cobra.Command, args []string) error {
	start := time.Now()
	sample, err := dataio.ReadFile(args[0])
	if err != nil {
		return err
	}
	f, err := stats.NewECDF(sample)
	if err != nil {
		return err
	}

	at, _ := cmd.Flags().GetFloat64Slice("at")
	if len(at) == 0 {
		for i, v := range stats.Sorted(sample) {
			if i == 0 || v != at[len(at)-1] {
				at = append(at, v)
			}
		}
	}
	fs := make([]float64, len(at))
	for i, x := range at {
		fs[i] = f.Eval(x)
	}
	return a.write(cmd, export.ECDFReport(f.Len(), at, fs), start)
}
