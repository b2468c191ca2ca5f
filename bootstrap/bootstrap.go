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
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/randinf/resample/instrument"
	"github.com/randinf/resample/internal/parallel"
	"github.com/randinf/resample/stats"
)

// DefReplicates is the number of resamples drawn when Opts.Replicates is zero.
const DefReplicates = 1000

var (
	// ErrEmptySample is returned for a sample without observations.
	ErrEmptySample = stats.ErrEmptySample
	// ErrOddAntithetic is returned when the antithetic method is asked for an
	// odd number of replicates.
	ErrOddAntithetic = errors.New("antithetic resampling needs an even number of replicates")
)

// Method is a resampling scheme.
type Method int

// The supported resampling schemes.
const (
	Ordinary Method = iota
	Balanced
	Antithetic
)

var methodNames = [...]string{
	Ordinary:   "ordinary",
	Balanced:   "balanced",
	Antithetic: "antithetic",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod returns the Method called name.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("method must be either 'ordinary', 'balanced', or 'antithetic', %q was supplied", name)
}

// Opts bundles the options for a bootstrap run. Only the zero value of each
// field has a default.
type Opts struct {
	// Replicates is the number of resamples. The default is DefReplicates.
	Replicates int

	// Method is the resampling scheme. The default is Ordinary.
	Method Method

	// Seed determines all random draws of the run. A zero Seed is replaced
	// by a random one, which is reported in Result.Seed.
	Seed uint64

	// Workers bounds the number of goroutines evaluating the statistic. The
	// default is GOMAXPROCS.
	Workers int

	// Observer is notified when the run completes.
	Observer instrument.Observer
}

func (o Opts) validate() (Opts, error) {
	switch {
	case o.Replicates < 0:
		return o, fmt.Errorf("bootstrap: %d replicates", o.Replicates)
	case o.Replicates == 0:
		o.Replicates = DefReplicates
	}
	if o.Workers < 0 {
		return o, fmt.Errorf("bootstrap: %d workers", o.Workers)
	}
	if o.Method < Ordinary || o.Method > Antithetic {
		return o, fmt.Errorf("bootstrap: unknown %v", o.Method)
	}
	if o.Method == Antithetic && o.Replicates%2 != 0 {
		return o, fmt.Errorf("bootstrap: %w, got %d", ErrOddAntithetic, o.Replicates)
	}
	if o.Seed == 0 {
		o.Seed = parallel.RandomSeed()
	}
	o.Observer = instrument.OrNop(o.Observer)
	return o, nil
}

// Run applies stat to resamples of sample according to opts. The sample is
// neither retained nor modified.
func Run(ctx context.Context, sample []float64, stat stats.Statistic, opts Opts) (*Result, error) {
	obs := instrument.OrNop(opts.Observer)
	opts, err := opts.validate()
	if err != nil {
		obs.ObserveRun("bootstrap", 0, 0, err)
		return nil, err
	}
	start := time.Now()
	res, err := run(ctx, sample, stat, opts)
	obs.ObserveRun("bootstrap", opts.Replicates, time.Since(start), err)
	return res, err
}

func run(ctx context.Context, sample []float64, stat stats.Statistic, opts Opts) (*Result, error) {
	if stat == nil {
		return nil, errors.New("bootstrap: nil statistic")
	}
	if len(sample) == 0 {
		return nil, fmt.Errorf("bootstrap: %w", ErrEmptySample)
	}

	data := make([]float64, len(sample))
	copy(data, sample)

	replicates := make([]float64, opts.Replicates)
	var err error
	switch opts.Method {
	case Ordinary:
		err = ordinary(ctx, data, stat, replicates, opts)
	case Balanced:
		err = balanced(ctx, data, stat, replicates, opts)
	case Antithetic:
		err = antithetic(ctx, data, stat, replicates, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %s: %w", opts.Method, err)
	}

	return &Result{
		Estimate:   stat(data),
		Replicates: replicates,
		Method:     opts.Method,
		Seed:       opts.Seed,
	}, nil
}

func ordinary(ctx context.Context, data []float64, stat stats.Statistic, out []float64, opts Opts) error {
	n := len(data)
	return parallel.Run(ctx, len(out), opts.Workers, opts.Seed, func(rng *rand.Rand, lo, hi int) error {
		buf := make([]float64, n)
		for r := lo; r < hi; r++ {
			for j := range buf {
				buf[j] = data[rng.Intn(n)]
			}
			out[r] = stat(buf)
		}
		return nil
	})
}

// balanced permutes Replicates concatenated copies of the sample and cuts the
// result into rows, so that every observation is used exactly Replicates
// times. The permutation is drawn from stream 0 up front.
func balanced(ctx context.Context, data []float64, stat stats.Statistic, out []float64, opts Opts) error {
	n := len(data)
	idx := make([]int, n*len(out))
	for i := range idx {
		idx[i] = i % n
	}
	rng := parallel.Rand(opts.Seed, 0)
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	return parallel.Run(ctx, len(out), opts.Workers, opts.Seed, func(_ *rand.Rand, lo, hi int) error {
		buf := make([]float64, n)
		for r := lo; r < hi; r++ {
			row := idx[r*n : (r+1)*n]
			for j, k := range row {
				buf[j] = data[k]
			}
			out[r] = stat(buf)
		}
		return nil
	})
}

// antithetic ranks the observations by empirical influence. Each pair of
// replicates draws ranks r for the first resample and uses the mirrored ranks
// n-1-r for the second one.
func antithetic(ctx context.Context, data []float64, stat stats.Statistic, out []float64, opts Opts) error {
	n := len(data)
	order, err := influenceOrder(data, stat)
	if err != nil {
		return err
	}

	pairs := len(out) / 2
	return parallel.Run(ctx, pairs, opts.Workers, opts.Seed, func(rng *rand.Rand, lo, hi int) error {
		ranks := make([]int, n)
		buf := make([]float64, n)
		for p := lo; p < hi; p++ {
			for j := range ranks {
				ranks[j] = rng.Intn(n)
				buf[j] = data[order[ranks[j]]]
			}
			out[2*p] = stat(buf)
			for j, r := range ranks {
				buf[j] = data[order[n-1-r]]
			}
			out[2*p+1] = stat(buf)
		}
		return nil
	})
}

// influenceOrder returns the indices of data sorted by ascending empirical
// influence of the observation on stat.
func influenceOrder(data []float64, stat stats.Statistic) ([]int, error) {
	if len(data) == 1 {
		return []int{0}, nil
	}
	infl, err := stats.EmpiricalInfluence(data, stat)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(data))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return infl[order[a]] < infl[order[b]] })
	return order, nil
}
