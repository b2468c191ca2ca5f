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

// Package resample provides tools for randomization-based inference: the
// estimation of sampling distributions and the testing of hypotheses through
// bootstrapping methods and Monte Carlo permutation tests.
//
// The functionality is split into three packages:
//
//   - bootstrap: Run, Result.Interval, Result.BCa
//   - permutation: TwoSample, Paired, Correlation
//   - stats: Jackknife, EmpiricalInfluence, NewECDF, MISE
//
// Package bootstrap resamples a sample with replacement (ordinary, balanced
// or antithetic) and derives bias, standard error and confidence intervals
// from the replicates. Package permutation estimates null distributions by
// relabeling and reports p-values. Package stats holds the estimators and
// helpers both of them build on.
//
// Package export renders results as JSON or as Prometheus summaries, and
// package instrument reports runs to a Prometheus registry. The resample
// command in cmd/resample exposes all procedures on the command line.
package resample
