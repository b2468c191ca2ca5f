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
	"fmt"
	"math"
	"math/rand"

	"github.com/randinf/resample/stats"
)

// Pearson returns the Pearson correlation coefficient of x and y, which must
// have equal lengths. It is NaN if either sample is constant.
func Pearson(x, y []float64) float64 {
	mx, my := stats.Mean(x), stats.Mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}

// Correlation tests for association between x and y by permuting y against
// x and recomputing the Pearson correlation.
func Correlation(ctx context.Context, x, y []float64, opts Opts) (*Result, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fail("correlation", opts, ErrEmptySample)
	}
	if len(x) != len(y) {
		return nil, fail("correlation", opts, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y)))
	}
	xs := make([]float64, len(x))
	copy(xs, x)
	ys := make([]float64, len(y))
	copy(ys, y)
	observed := Pearson(xs, ys)

	enumerate := func(ctx context.Context, null []float64) error {
		return enumeratePermutations(ctx, ys, func(k int, perm []float64) {
			null[k] = Pearson(xs, perm)
		})
	}
	newSampler := func() sampler {
		buf := make([]float64, len(ys))
		copy(buf, ys)
		return func(rng *rand.Rand, null []float64, lo, hi int) {
			for r := lo; r < hi; r++ {
				rng.Shuffle(len(buf), func(i, j int) { buf[i], buf[j] = buf[j], buf[i] })
				null[r] = Pearson(xs, buf)
			}
		}
	}
	return test(ctx, "correlation", opts, observed, stats.Factorial(len(ys)), MaxExactPermutations, enumerate, newSampler)
}

// enumeratePermutations calls visit with every ordering of values, using
// Heap's algorithm. values is left permuted.
func enumeratePermutations(ctx context.Context, values []float64, visit func(k int, perm []float64)) error {
	n := len(values)
	c := make([]int, n)
	k := 0
	visit(k, values)
	k++
	for i := 1; i < n; {
		if c[i] < i {
			if i%2 == 0 {
				values[0], values[i] = values[i], values[0]
			} else {
				values[c[i]], values[i] = values[i], values[c[i]]
			}
			if k%checkEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			visit(k, values)
			k++
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return nil
}
