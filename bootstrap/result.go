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

package bootstrap

import (
	"errors"
	"fmt"
	"math"

	"github.com/randinf/resample/stats"
)

// ErrDegenerate is returned when the replicate distribution does not support
// the requested interval, e.g. because all replicates lie on one side of the
// estimate.
var ErrDegenerate = errors.New("degenerate replicate distribution")

// IntervalKind selects a confidence interval construction.
type IntervalKind int

// The supported confidence intervals.
const (
	// Percentile uses the quantiles of the replicates directly.
	Percentile IntervalKind = iota
	// Basic reflects the percentile interval around the estimate.
	Basic
	// Normal assumes a normal sampling distribution with the bootstrap
	// estimates of bias and standard error.
	Normal
	// BCa is the bias-corrected and accelerated percentile interval. It needs
	// the original sample, see Result.BCa.
	BCa
)

var intervalNames = [...]string{
	Percentile: "percentile",
	Basic:      "basic",
	Normal:     "normal",
	BCa:        "bca",
}

func (k IntervalKind) String() string {
	if k < 0 || int(k) >= len(intervalNames) {
		return fmt.Sprintf("IntervalKind(%d)", int(k))
	}
	return intervalNames[k]
}

// ParseIntervalKind returns the IntervalKind called name.
func ParseIntervalKind(name string) (IntervalKind, error) {
	for k, n := range intervalNames {
		if n == name {
			return IntervalKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown interval %q", name)
}

// Interval is a two-sided confidence interval.
type Interval struct {
	Lower, Upper float64
	Level        float64
	Kind         IntervalKind
}

// Contains reports whether x lies in the closed interval.
func (i Interval) Contains(x float64) bool {
	return i.Lower <= x && x <= i.Upper
}

// Result holds the outcome of a bootstrap run.
type Result struct {
	// Estimate is the statistic applied to the original sample.
	Estimate float64
	// Replicates holds the statistic of every resample in draw order.
	Replicates []float64
	// Method is the resampling scheme used.
	Method Method
	// Seed reproduces the run when passed back in Opts.Seed.
	Seed uint64
}

// Bias returns the bootstrap estimate of bias, the mean of the replicates
// minus the estimate.
func (r *Result) Bias() float64 {
	return stats.Mean(r.Replicates) - r.Estimate
}

// StdErr returns the bootstrap estimate of the standard error.
func (r *Result) StdErr() float64 {
	return stats.StdDev(r.Replicates)
}

// Distribution returns the replicates in ascending order.
func (r *Result) Distribution() []float64 {
	return stats.Sorted(r.Replicates)
}

func checkLevel(level float64) error {
	if !(level > 0 && level < 1) {
		return fmt.Errorf("bootstrap: confidence level %v not in (0, 1)", level)
	}
	return nil
}

// Interval returns the confidence interval of the given kind at the given
// level, e.g. 0.95. BCa intervals are computed by Result.BCa instead.
func (r *Result) Interval(kind IntervalKind, level float64) (Interval, error) {
	if err := checkLevel(level); err != nil {
		return Interval{}, err
	}
	alpha := 1 - level
	ci := Interval{Level: level, Kind: kind}

	switch kind {
	case Percentile:
		sorted := r.Distribution()
		ci.Lower = stats.Quantile(sorted, alpha/2)
		ci.Upper = stats.Quantile(sorted, 1-alpha/2)
	case Basic:
		sorted := r.Distribution()
		ci.Lower = 2*r.Estimate - stats.Quantile(sorted, 1-alpha/2)
		ci.Upper = 2*r.Estimate - stats.Quantile(sorted, alpha/2)
	case Normal:
		z := stats.NormalQuantile(1 - alpha/2)
		center := r.Estimate - r.Bias()
		se := r.StdErr()
		ci.Lower = center - z*se
		ci.Upper = center + z*se
	case BCa:
		return Interval{}, errors.New("bootstrap: bca interval needs the sample, use Result.BCa")
	default:
		return Interval{}, fmt.Errorf("bootstrap: unknown %v", kind)
	}
	return ci, nil
}

// BCa returns the bias-corrected and accelerated interval. sample and stat
// must be the ones the result was computed from; the acceleration is
// estimated from their jackknife values.
func (r *Result) BCa(sample []float64, stat stats.Statistic, level float64) (Interval, error) {
	if err := checkLevel(level); err != nil {
		return Interval{}, err
	}
	jack, err := stats.Jackknife(sample, stat)
	if err != nil {
		return Interval{}, fmt.Errorf("bootstrap: bca: %w", err)
	}

	below := 0
	for _, v := range r.Replicates {
		if v < r.Estimate {
			below++
		}
	}
	if below == 0 || below == len(r.Replicates) {
		return Interval{}, fmt.Errorf("bootstrap: bca: %w", ErrDegenerate)
	}
	z0 := stats.NormalQuantile(float64(below) / float64(len(r.Replicates)))

	jackMean := stats.Mean(jack)
	var num, den float64
	for _, v := range jack {
		d := jackMean - v
		num += d * d * d
		den += d * d
	}
	accel := 0.0
	if den > 0 {
		accel = num / (6 * math.Pow(den, 1.5))
	}

	adjust := func(p float64) float64 {
		z := stats.NormalQuantile(p)
		return stats.NormalCDF(z0 + (z0+z)/(1-accel*(z0+z)))
	}
	alpha := 1 - level
	sorted := r.Distribution()
	return Interval{
		Lower: stats.Quantile(sorted, adjust(alpha/2)),
		Upper: stats.Quantile(sorted, adjust(1-alpha/2)),
		Level: level,
		Kind:  BCa,
	}, nil
}
