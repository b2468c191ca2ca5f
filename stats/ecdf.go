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

package stats

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptySample is returned when an operation needs at least one
	// observation.
	ErrEmptySample = errors.New("empty sample")
	// ErrTooFew is returned when a sample is too small for the operation.
	ErrTooFew = errors.New("too few observations")
)

// ECDF is the empirical distribution function of a sample.
type ECDF struct {
	sorted []float64
}

// NewECDF returns the empirical distribution function of input. The input is
// copied.
func NewECDF(input []float64) (*ECDF, error) {
	if len(input) == 0 {
		return nil, ErrEmptySample
	}
	return &ECDF{sorted: Sorted(input)}, nil
}

// Eval returns the fraction of observations less than or equal to x.
func (e *ECDF) Eval(x float64) float64 {
	i := sort.Search(len(e.sorted), func(i int) bool { return e.sorted[i] > x })
	return float64(i) / float64(len(e.sorted))
}

// Len returns the number of observations backing e.
func (e *ECDF) Len() int {
	return len(e.sorted)
}

// MISE estimates the mean integrated squared error between f and g over
// [lo, hi) with a left Riemann sum over n cells of equal width.
func MISE(f, g func(float64) float64, lo, hi float64, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("mise: %d evaluation points", n)
	}
	if !(hi > lo) {
		return 0, fmt.Errorf("mise: empty interval [%g, %g)", lo, hi)
	}
	w := (hi - lo) / float64(n)
	total := 0.0
	for i := 0; i < n; i++ {
		x := lo + float64(i)*w
		d := f(x) - g(x)
		total += w * d * d
	}
	return total, nil
}
