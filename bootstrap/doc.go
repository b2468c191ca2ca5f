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

// Package bootstrap estimates the sampling distribution of a statistic by
// resampling the observed data with replacement.
//
// A run draws Opts.Replicates resamples of the same size as the sample and
// applies the statistic to each of them:
//
//	res, err := bootstrap.Run(ctx, sample, stats.Median, bootstrap.Opts{
//		Replicates: 2000,
//		Method:     bootstrap.Balanced,
//		Seed:       42,
//	})
//	...
//	ci, err := res.Interval(bootstrap.Percentile, 0.95)
//
// Three resampling schemes are offered. Ordinary draws every resample
// independently. Balanced arranges the draws so that each observation occurs
// exactly Replicates times over the whole run. Antithetic pairs every
// resample with its mirror image in the ranking of the observations by
// empirical influence, which reduces the variance of the replicate mean for
// smooth statistics.
//
// Runs are deterministic for a given Seed, independent of Opts.Workers.
package bootstrap
