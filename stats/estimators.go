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
	"math"
	"sort"
)

// Statistic reduces a sample into a scalar value. A Statistic must neither
// retain nor modify its argument, since resampling runs reuse the backing
// array between calls.
type Statistic func([]float64) float64

// These are the canned Statistics. All of them return NaN for an empty
// sample.
var (
	// Mean reduces to the arithmetic mean of the sample.
	Mean Statistic = mean

	// Median reduces to the nearest-rank median of the sample.
	Median Statistic = NearestRankStatistic(50)

	// Variance reduces to the unbiased (n-1) sample variance.
	Variance Statistic = variance

	// StdDev reduces to the square root of Variance.
	StdDev Statistic = stdDev

	// Sum reduces to the sum of the sample.
	Sum Statistic = sum

	// Min reduces to the minimum of the sample.
	Min Statistic = minimum

	// Max reduces to the maximum of the sample.
	Max Statistic = maximum

	// FirstMode extracts the first modal value.
	FirstMode Statistic = firstMode
)

var byName = map[string]Statistic{
	"mean":     Mean,
	"median":   Median,
	"variance": Variance,
	"stddev":   StdDev,
	"sum":      Sum,
	"min":      Min,
	"max":      Max,
	"mode":     FirstMode,
}

// Lookup returns the canned Statistic registered under name.
func Lookup(name string) (Statistic, bool) {
	s, ok := byName[name]
	return s, ok
}

// Names returns the sorted names accepted by Lookup.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sum(input []float64) float64 {
	if len(input) == 0 {
		return math.NaN()
	}
	s := 0.0
	for _, v := range input {
		s += v
	}
	return s
}

func mean(input []float64) float64 {
	if len(input) == 0 {
		return math.NaN()
	}
	return sum(input) / float64(len(input))
}

func variance(input []float64) float64 {
	n := len(input)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return 0
	}
	m := mean(input)
	ss := 0.0
	for _, v := range input {
		d := v - m
		ss += d * d
	}
	return ss / float64(n-1)
}

func stdDev(input []float64) float64 {
	return math.Sqrt(variance(input))
}

func firstMode(input []float64) float64 {
	valuesToFrequency := map[float64]int64{}
	largestTally := int64(math.MinInt64)
	largestTallyValue := math.NaN()

	for _, v := range input {
		presentCount := valuesToFrequency[v] + 1
		valuesToFrequency[v] = presentCount

		if presentCount > largestTally {
			largestTally = presentCount
			largestTallyValue = v
		}
	}

	return largestTallyValue
}

func minimum(input []float64) float64 {
	if len(input) == 0 {
		return math.NaN()
	}
	m := math.Inf(1)
	for _, v := range input {
		m = math.Min(m, v)
	}
	return m
}

func maximum(input []float64) float64 {
	if len(input) == 0 {
		return math.NaN()
	}
	m := math.Inf(-1)
	for _, v := range input {
		m = math.Max(m, v)
	}
	return m
}

// NearestRank calculates the percentile (0-100) by choosing the nearest
// neighboring value.
func NearestRank(input []float64, percentile float64) float64 {
	inputSize := len(input)

	if inputSize == 0 {
		return math.NaN()
	}

	ordinalRank := math.Ceil(((percentile / 100.0) * float64(inputSize)) + 0.5)

	copiedInput := make([]float64, inputSize)
	copy(copiedInput, input)
	sort.Float64s(copiedInput)

	preliminaryIndex := int(ordinalRank) - 1

	switch {
	case preliminaryIndex < 0:
		return copiedInput[0]
	case preliminaryIndex >= inputSize:
		return copiedInput[inputSize-1]
	}

	return copiedInput[preliminaryIndex]
}

// NearestRankStatistic generates a Statistic based off of extracting a given
// percentile value.
func NearestRankStatistic(percentile float64) Statistic {
	return func(input []float64) float64 {
		return NearestRank(input, percentile)
	}
}

// Quantile returns the q-quantile (0 <= q <= 1) of an ascending sorted sample
// by linear interpolation between order statistics, i.e. definition 7 of
// Hyndman and Fan.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(q) {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	h := q * float64(n-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Sorted returns an ascending copy of input.
func Sorted(input []float64) []float64 {
	out := make([]float64, len(input))
	copy(out, input)
	sort.Float64s(out)
	return out
}
