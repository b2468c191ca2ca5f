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
	"math/rand"

	"github.com/randinf/resample/stats"
)

// MaxExactPairs is the largest number of pairs for which Paired enumerates
// all sign patterns when Opts.Exact is set. It is not bound by
// MaxExactPermutations.
const MaxExactPairs = 20

// Paired tests whether the paired differences x[i]-y[i] are symmetric around
// zero by randomly flipping their signs. stat is applied to the differences;
// nil defaults to stats.Mean.
func Paired(ctx context.Context, x, y []float64, stat stats.Statistic, opts Opts) (*Result, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fail("paired", opts, ErrEmptySample)
	}
	if len(x) != len(y) {
		return nil, fail("paired", opts, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y)))
	}
	if stat == nil {
		stat = stats.Mean
	}
	diffs := make([]float64, len(x))
	for i := range x {
		diffs[i] = x[i] - y[i]
	}
	observed := stat(diffs)

	var exactSize int64
	if len(diffs) <= MaxExactPairs {
		exactSize = 1 << len(diffs)
	}
	enumerate := func(ctx context.Context, null []float64) error {
		buf := make([]float64, len(diffs))
		for mask := range null {
			if mask%checkEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			for i, d := range diffs {
				if mask&(1<<i) != 0 {
					d = -d
				}
				buf[i] = d
			}
			null[mask] = stat(buf)
		}
		return nil
	}
	newSampler := func() sampler {
		buf := make([]float64, len(diffs))
		return func(rng *rand.Rand, null []float64, lo, hi int) {
			for r := lo; r < hi; r++ {
				var bits uint64
				for i, d := range diffs {
					if i%63 == 0 {
						bits = uint64(rng.Int63())
					}
					if bits&1 != 0 {
						d = -d
					}
					bits >>= 1
					buf[i] = d
				}
				null[r] = stat(buf)
			}
		}
	}
	return test(ctx, "paired", opts, observed, exactSize, 1<<MaxExactPairs, enumerate, newSampler)
}
