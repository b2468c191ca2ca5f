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

import "fmt"

// Jackknife returns the n leave-one-out estimates of stat. Estimate i is
// computed on input with observation i removed.
func Jackknife(input []float64, stat Statistic) ([]float64, error) {
	n := len(input)
	if n == 0 {
		return nil, ErrEmptySample
	}
	if n < 2 {
		return nil, fmt.Errorf("jackknife: %w: need 2, got %d", ErrTooFew, n)
	}
	buf := make([]float64, n-1)
	out := make([]float64, n)
	for i := range input {
		copy(buf, input[:i])
		copy(buf[i:], input[i+1:])
		out[i] = stat(buf)
	}
	return out, nil
}

// JackknifeBias returns the jackknife estimate of the bias of stat.
func JackknifeBias(input []float64, stat Statistic) (float64, error) {
	jack, err := Jackknife(input, stat)
	if err != nil {
		return 0, err
	}
	full := stat(input)
	d := 0.0
	for _, v := range jack {
		d += v - full
	}
	return float64(len(input)-1) * d / float64(len(jack)), nil
}

// JackknifeVariance returns the jackknife estimate of the variance of stat.
func JackknifeVariance(input []float64, stat Statistic) (float64, error) {
	jack, err := Jackknife(input, stat)
	if err != nil {
		return 0, err
	}
	m := mean(jack)
	ss := 0.0
	for _, v := range jack {
		ss += (v - m) * (v - m)
	}
	return float64(len(input)-1) * ss / float64(len(jack)), nil
}

// EmpiricalInfluence returns the jackknife approximation of the empirical
// influence of every observation on stat.
func EmpiricalInfluence(input []float64, stat Statistic) ([]float64, error) {
	jack, err := Jackknife(input, stat)
	if err != nil {
		return nil, err
	}
	full := stat(input)
	scale := float64(len(input) - 1)
	for i, v := range jack {
		jack[i] = scale * (full - v)
	}
	return jack, nil
}
