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

package permutation

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/randinf/resample/stats"
)

// TwoSampleStatistic compares two groups. Like stats.Statistic it must
// neither retain nor modify its arguments.
type TwoSampleStatistic func(x, y []float64) float64

// These are the canned TwoSampleStatistics.
var (
	// DiffMeans is mean(x) - mean(y).
	DiffMeans TwoSampleStatistic = func(x, y []float64) float64 {
		return stats.Mean(x) - stats.Mean(y)
	}

	// DiffMedians is median(x) - median(y).
	DiffMedians TwoSampleStatistic = func(x, y []float64) float64 {
		return stats.Median(x) - stats.Median(y)
	}

	// WelchT is Welch's t statistic. It is NaN when both groups are
	// constant and equal.
	WelchT TwoSampleStatistic = welchT
)

func welchT(x, y []float64) float64 {
	se := math.Sqrt(stats.Variance(x)/float64(len(x)) + stats.Variance(y)/float64(len(y)))
	d := stats.Mean(x) - stats.Mean(y)
	if se == 0 {
		if d == 0 {
			return math.NaN()
		}
		return math.Copysign(math.Inf(1), d)
	}
	return d / se
}

// TwoSample tests whether x and y come from the same distribution by
// randomly reassigning the pooled observations to groups of the original
// sizes. A nil stat defaults to DiffMeans.
func TwoSample(ctx context.Context, x, y []float64, stat TwoSampleStatistic, opts Opts) (*Result, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fail("two_sample", opts, ErrEmptySample)
	}
	if stat == nil {
		stat = DiffMeans
	}
	nx := len(x)
	pooled := make([]float64, 0, nx+len(y))
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)

	observed := stat(pooled[:nx], pooled[nx:])

	enumerate := func(ctx context.Context, null []float64) error {
		return enumerateSplits(ctx, pooled, nx, stat, null)
	}
	newSampler := func() sampler {
		buf := make([]float64, len(pooled))
		copy(buf, pooled)
		n := len(buf)
		return func(rng *rand.Rand, null []float64, lo, hi int) {
			for r := lo; r < hi; r++ {
				for i := 0; i < nx; i++ {
					j := i + rng.Intn(n-i)
					buf[i], buf[j] = buf[j], buf[i]
				}
				null[r] = stat(buf[:nx], buf[nx:])
			}
		}
	}
	return test(ctx, "two_sample", opts, observed, stats.Binomial(len(pooled), nx), MaxExactPermutations, enumerate, newSampler)
}

// enumerateSplits evaluates stat on every assignment of nx of the pooled
// observations to the first group, in lexicographic order of their indices.
func enumerateSplits(ctx context.Context, pooled []float64, nx int, stat TwoSampleStatistic, null []float64) error {
	n := len(pooled)
	comb := make([]int, nx)
	for i := range comb {
		comb[i] = i
	}
	chosen := make([]bool, n)
	xs := make([]float64, nx)
	ys := make([]float64, n-nx)

	for k := 0; ; k++ {
		if k%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if k >= len(null) {
			return errors.New("more splits than expected")
		}

		clear(chosen)
		for i, c := range comb {
			chosen[c] = true
			xs[i] = pooled[c]
		}
		j := 0
		for i, v := range pooled {
			if !chosen[i] {
				ys[j] = v
				j++
			}
		}
		null[k] = stat(xs, ys)

		i := nx - 1
		for i >= 0 && comb[i] == n-nx+i {
			i--
		}
		if i < 0 {
			return nil
		}
		comb[i]++
		for j := i + 1; j < nx; j++ {
			comb[j] = comb[j-1] + 1
		}
	}
}
