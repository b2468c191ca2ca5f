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

// Package permutation implements Monte Carlo and exact permutation tests.
//
// A permutation test compares an observed test statistic against its
// distribution under the null hypothesis that the group labels (or pairings,
// or signs) are exchangeable. The null distribution is estimated by
// recomputing the statistic on random relabelings of the data, or, for small
// samples with Opts.Exact, on every relabeling.
//
// Monte Carlo p-values are computed as (k+1)/(B+1), where k counts null
// values at least as extreme as the observed one, so they are never zero.
package permutation
