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
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/randinf/resample/instrument"
	"github.com/randinf/resample/internal/parallel"
	"github.com/randinf/resample/stats"
)

const (
	// DefPermutations is the number of Monte Carlo permutations drawn when
	// Opts.Permutations is zero.
	DefPermutations = 9999

	// MaxExactPermutations bounds the size of an exact null distribution.
	// Larger problems fall back to Monte Carlo sampling.
	MaxExactPermutations = 1000000

	tolerance = 1e-12
)

var (
	// ErrEmptySample is returned when a group has no observations.
	ErrEmptySample = stats.ErrEmptySample
	// ErrLengthMismatch is returned when paired data differ in length.
	ErrLengthMismatch = errors.New("samples differ in length")
	// ErrUndefined is returned when the observed statistic is NaN.
	ErrUndefined = errors.New("observed statistic is undefined")
)

// Alternative is the alternative hypothesis of a test.
type Alternative int

// The supported alternatives.
const (
	// TwoSided rejects for large absolute values of the statistic.
	TwoSided Alternative = iota
	// Less rejects for small values of the statistic.
	Less
	// Greater rejects for large values of the statistic.
	Greater
)

var alternativeNames = [...]string{
	TwoSided: "two-sided",
	Less:     "less",
	Greater:  "greater",
}

func (a Alternative) String() string {
	if a < 0 || int(a) >= len(alternativeNames) {
		return fmt.Sprintf("Alternative(%d)", int(a))
	}
	return alternativeNames[a]
}

// ParseAlternative returns the Alternative called name.
func ParseAlternative(name string) (Alternative, error) {
	for a, n := range alternativeNames {
		if n == name {
			return Alternative(a), nil
		}
	}
	return 0, fmt.Errorf("alternative must be either 'two-sided', 'less', or 'greater', %q was supplied", name)
}

// Opts bundles the options for a permutation test.
type Opts struct {
	// Permutations is the number of Monte Carlo relabelings. The default is
	// DefPermutations.
	Permutations int

	// Alternative is the alternative hypothesis. The default is TwoSided.
	Alternative Alternative

	// Seed determines all random draws of the test. A zero Seed is replaced
	// by a random one, which is reported in Result.Seed.
	Seed uint64

	// Workers bounds the number of goroutines evaluating the statistic. The
	// default is GOMAXPROCS.
	Workers int

	// Exact enumerates every relabeling instead of sampling when there are
	// at most MaxExactPermutations of them.
	Exact bool

	// Observer is notified when the test completes.
	Observer instrument.Observer
}

func (o Opts) validate() (Opts, error) {
	switch {
	case o.Permutations < 0:
		return o, fmt.Errorf("%d permutations", o.Permutations)
	case o.Permutations == 0:
		o.Permutations = DefPermutations
	}
	if o.Workers < 0 {
		return o, fmt.Errorf("%d workers", o.Workers)
	}
	if o.Alternative < TwoSided || o.Alternative > Greater {
		return o, fmt.Errorf("unknown %v", o.Alternative)
	}
	if o.Seed == 0 {
		o.Seed = parallel.RandomSeed()
	}
	o.Observer = instrument.OrNop(o.Observer)
	return o, nil
}

// Result holds the outcome of a permutation test.
type Result struct {
	// Statistic is the observed test statistic.
	Statistic float64
	// PValue is the estimated (or, if Exact, exact) p-value.
	PValue float64
	// Null holds the statistic of every relabeling.
	Null []float64
	// Exact reports whether Null is the complete permutation distribution.
	Exact bool
	// Alternative is the alternative hypothesis tested.
	Alternative Alternative
	// Seed reproduces a Monte Carlo test when passed back in Opts.Seed.
	Seed uint64
}

// extreme reports whether null value v is at least as extreme as observed.
func extreme(alt Alternative, v, observed float64) bool {
	eps := tolerance * math.Max(1, math.Abs(observed))
	if math.IsInf(observed, 0) {
		eps = 0
	}
	switch alt {
	case Less:
		return v <= observed+eps
	case Greater:
		return v >= observed-eps
	default:
		return math.Abs(v) >= math.Abs(observed)-eps
	}
}

// PValue computes the p-value of observed against null. Monte Carlo
// p-values include the observed labeling in the reference set.
func PValue(null []float64, observed float64, alt Alternative, exact bool) float64 {
	k := 0
	for _, v := range null {
		if extreme(alt, v, observed) {
			k++
		}
	}
	if exact {
		return float64(k) / float64(len(null))
	}
	return float64(k+1) / float64(len(null)+1)
}

// sampler fills null[lo:hi] with relabeled statistics drawn from rng.
type sampler func(rng *rand.Rand, null []float64, lo, hi int)

// fail wraps err for a test of the given kind and reports it as a failed
// run.
func fail(kind string, opts Opts, err error) error {
	err = fmt.Errorf("permutation: %s: %w", kind, err)
	instrument.OrNop(opts.Observer).ObserveRun("permutation_"+kind, 0, 0, err)
	return err
}

// test builds the null distribution of observed, exactly when requested and
// exactSize is in (0, maxExact], otherwise by Monte Carlo sampling.
func test(ctx context.Context, kind string, opts Opts, observed float64, exactSize, maxExact int64, enumerate func(ctx context.Context, null []float64) error, newSampler func() sampler) (*Result, error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, fail(kind, opts, err)
	}
	start := time.Now()
	draws := opts.Permutations
	res, err := func() (*Result, error) {
		if math.IsNaN(observed) {
			return nil, ErrUndefined
		}
		res := &Result{Statistic: observed, Alternative: opts.Alternative, Seed: opts.Seed}
		if opts.Exact && enumerate != nil && exactSize > 0 && exactSize <= maxExact {
			draws = int(exactSize)
			res.Exact = true
			res.Null = make([]float64, exactSize)
			if err := enumerate(ctx, res.Null); err != nil {
				return nil, err
			}
		} else {
			res.Null = make([]float64, opts.Permutations)
			err := parallel.Run(ctx, len(res.Null), opts.Workers, opts.Seed, func(rng *rand.Rand, lo, hi int) error {
				newSampler()(rng, res.Null, lo, hi)
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		res.PValue = PValue(res.Null, observed, opts.Alternative, res.Exact)
		return res, nil
	}()
	if err != nil {
		err = fmt.Errorf("permutation: %s: %w", kind, err)
	}
	opts.Observer.ObserveRun("permutation_"+kind, draws, time.Since(start), err)
	return res, err
}

// checkEvery is the number of exact relabelings evaluated between
// cancellation checks.
const checkEvery = 1 << 12
