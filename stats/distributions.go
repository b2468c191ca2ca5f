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
	"math/bits"
)

// Factorial returns of!, saturating at math.MaxInt64.
func Factorial(of int) int64 {
	if of <= 0 {
		return 1
	}

	var result int64 = 1

	for i := int64(2); i <= int64(of); i++ {
		if result > math.MaxInt64/i {
			return math.MaxInt64
		}
		result *= i
	}

	return result
}

// Binomial returns the binomial coefficient n choose k, saturating at
// math.MaxInt64.
func Binomial(n, k int) int64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	var result uint64 = 1
	for i := 1; i <= k; i++ {
		// result*(n-k+i) is divisible by i, since the running value is
		// C(n-k+i-1, i-1). The product is formed in 128 bits.
		hi, lo := bits.Mul64(result, uint64(n-k+i))
		if hi >= uint64(i) {
			return math.MaxInt64
		}
		result, _ = bits.Div64(hi, lo, uint64(i))
		if result > math.MaxInt64 {
			return math.MaxInt64
		}
	}
	return int64(result)
}

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// NormalQuantile is the inverse of NormalCDF. It returns -Inf and +Inf at 0
// and 1 and NaN outside of [0, 1].
func NormalQuantile(p float64) float64 {
	switch {
	case math.IsNaN(p) || p < 0 || p > 1:
		return math.NaN()
	case p == 0:
		return math.Inf(-1)
	case p == 1:
		return math.Inf(1)
	}
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
