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

// Package stats provides the estimators and helpers shared by the bootstrap
// and permutation packages:
//
// estimators.go provides the canned Statistic values (mean, median, variance
// and friends) that can be handed to a resampling run.
//
// ecdf.go provides the empirical distribution function of a sample and the
// mean integrated squared error between two functions.
//
// jackknife.go provides leave-one-out estimates, the jackknife estimates of
// bias and variance, and empirical influence values.
//
// distributions.go provides combinatorial counts and the standard normal
// distribution used for interval construction.
package stats
