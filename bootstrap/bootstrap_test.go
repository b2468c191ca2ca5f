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
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/randinf/resample/instrument"
	"github.com/randinf/resample/stats"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func checkFloat64(t *testing.T, x, v, tol float64) {
	t.Helper()
	if math.Abs(x-v) > tol {
		t.Errorf("Value %f is not within %f of %f", x, tol, v)
	}
}

func normalSample(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()*2 + 10
	}
	return out
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	sample := normalSample(30, 1)
	for _, method := range []Method{Ordinary, Balanced, Antithetic} {
		t.Run(method.String(), func(t *testing.T) {
			want, err := Run(context.Background(), sample, stats.Median, Opts{Replicates: 500, Method: method, Seed: 99, Workers: 1})
			if err != nil {
				t.Fatal(err)
			}
			for _, workers := range []int{2, 7} {
				got, err := Run(context.Background(), sample, stats.Median, Opts{Replicates: 500, Method: method, Seed: 99, Workers: workers})
				if err != nil {
					t.Fatal(err)
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("workers=%d: result differs (-want +got):\n%s", workers, diff)
				}
			}
		})
	}
}

func TestRunOrdinaryMean(t *testing.T) {
	sample := normalSample(100, 2)
	res, err := Run(context.Background(), sample, stats.Mean, Opts{Replicates: 4000, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Replicates) != 4000 {
		t.Fatalf("got %d replicates, want 4000", len(res.Replicates))
	}
	checkFloat64(t, res.Estimate, stats.Mean(sample), 0)
	checkFloat64(t, res.Bias(), 0, 0.02)

	// The bootstrap standard error of the mean approaches s/sqrt(n).
	want := stats.StdDev(sample) / math.Sqrt(float64(len(sample)))
	checkFloat64(t, res.StdErr(), want, 0.1*want)
}

func TestRunBalancedUsesEveryObservationEqually(t *testing.T) {
	const replicates = 130
	sample := []float64{0, 1, 2, 3, 4, 5, 6}

	var mtx sync.Mutex
	counts := map[float64]int{}
	tally := func(xs []float64) float64 {
		mtx.Lock()
		defer mtx.Unlock()
		for _, x := range xs {
			counts[x]++
		}
		return stats.Mean(xs)
	}

	if _, err := Run(context.Background(), sample, tally, Opts{Replicates: replicates, Method: Balanced, Seed: 5}); err != nil {
		t.Fatal(err)
	}
	// The estimate on the full sample is tallied once as well.
	for _, x := range sample {
		if counts[x] != replicates+1 {
			t.Fatalf("observation %v used %d times, want %d:\n%s", x, counts[x]-1, replicates, spew.Sdump(counts))
		}
	}
}

func TestRunAntitheticPairsMirrorRanks(t *testing.T) {
	// For the mean the influence order is the value order; with a sample that
	// is symmetric around 3 every antithetic pair averages to exactly 3.
	sample := []float64{5, 1, 4, 2, 3}
	res, err := Run(context.Background(), sample, stats.Mean, Opts{Replicates: 200, Method: Antithetic, Seed: 11})
	if err != nil {
		t.Fatal(err)
	}
	for p := 0; p < len(res.Replicates); p += 2 {
		checkFloat64(t, (res.Replicates[p]+res.Replicates[p+1])/2, 3, 1e-12)
	}
}

func TestRunSeedIsReported(t *testing.T) {
	sample := normalSample(10, 4)
	res, err := Run(context.Background(), sample, stats.Mean, Opts{Replicates: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Seed == 0 {
		t.Fatal("no seed reported")
	}
	again, err := Run(context.Background(), sample, stats.Mean, Opts{Replicates: 10, Seed: res.Seed})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(res.Replicates, again.Replicates); diff != "" {
		t.Errorf("rerun with reported seed differs (-want +got):\n%s", diff)
	}
}

func TestRunDefaults(t *testing.T) {
	res, err := Run(context.Background(), []float64{1, 2, 3}, stats.Mean, Opts{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Replicates) != DefReplicates {
		t.Errorf("got %d replicates, want %d", len(res.Replicates), DefReplicates)
	}
	if res.Method != Ordinary {
		t.Errorf("got method %v, want ordinary", res.Method)
	}
}

func TestRunSingleObservation(t *testing.T) {
	for _, method := range []Method{Ordinary, Balanced, Antithetic} {
		res, err := Run(context.Background(), []float64{7}, stats.Mean, Opts{Replicates: 4, Method: method, Seed: 1})
		if err != nil {
			t.Fatalf("%v: %v", method, err)
		}
		if diff := cmp.Diff([]float64{7, 7, 7, 7}, res.Replicates); diff != "" {
			t.Errorf("%v: (-want +got):\n%s", method, diff)
		}
	}
}

func TestRunErrors(t *testing.T) {
	scenarios := []struct {
		name   string
		sample []float64
		stat   stats.Statistic
		opts   Opts
		is     error
	}{
		{name: "empty", sample: nil, stat: stats.Mean, is: ErrEmptySample},
		{name: "odd antithetic", sample: []float64{1, 2}, stat: stats.Mean, opts: Opts{Replicates: 3, Method: Antithetic}, is: ErrOddAntithetic},
		{name: "negative replicates", sample: []float64{1}, stat: stats.Mean, opts: Opts{Replicates: -1}},
		{name: "negative workers", sample: []float64{1}, stat: stats.Mean, opts: Opts{Workers: -1}},
		{name: "unknown method", sample: []float64{1}, stat: stats.Mean, opts: Opts{Method: Method(9)}},
		{name: "nil statistic", sample: []float64{1}},
	}
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			_, err := Run(context.Background(), s.sample, s.stat, s.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if s.is != nil && !errors.Is(err, s.is) {
				t.Errorf("got %v, want %v", err, s.is)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var observed error
	obs := instrument.ObserverFunc(func(kind string, draws int, _ time.Duration, err error) {
		observed = err
	})
	_, err := Run(ctx, []float64{1, 2, 3}, stats.Mean, Opts{Seed: 1, Observer: obs})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if !errors.Is(observed, context.Canceled) {
		t.Errorf("observer saw %v, want context.Canceled", observed)
	}
}

func TestRunObserver(t *testing.T) {
	var kinds []string
	var draws int
	obs := instrument.ObserverFunc(func(kind string, n int, _ time.Duration, err error) {
		if err != nil {
			t.Errorf("unexpected error %v", err)
		}
		kinds = append(kinds, kind)
		draws += n
	})
	if _, err := Run(context.Background(), []float64{1, 2}, stats.Mean, Opts{Replicates: 64, Seed: 1, Observer: obs}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"bootstrap"}, kinds); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if draws != 64 {
		t.Errorf("got %d draws, want 64", draws)
	}
}

func TestRunErrorsAreObserved(t *testing.T) {
	var failed []error
	obs := instrument.ObserverFunc(func(kind string, _ int, _ time.Duration, err error) {
		if kind != "bootstrap" {
			t.Errorf("unexpected kind %q", kind)
		}
		if err != nil {
			failed = append(failed, err)
		}
	})
	ctx := context.Background()
	if _, err := Run(ctx, nil, stats.Mean, Opts{Seed: 1, Observer: obs}); !errors.Is(err, ErrEmptySample) {
		t.Errorf("got %v, want ErrEmptySample", err)
	}
	if _, err := Run(ctx, []float64{1, 2}, stats.Mean, Opts{Replicates: 3, Method: Antithetic, Observer: obs}); !errors.Is(err, ErrOddAntithetic) {
		t.Errorf("got %v, want ErrOddAntithetic", err)
	}
	if _, err := Run(ctx, []float64{1, 2}, stats.Mean, Opts{Replicates: -1, Observer: obs}); err == nil {
		t.Error("expected error for negative replicates")
	}
	if len(failed) != 3 {
		t.Errorf("observed %d failed runs, want 3: %v", len(failed), failed)
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{Ordinary, Balanced, Antithetic} {
		got, err := ParseMethod(m.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != m {
			t.Errorf("ParseMethod(%q) = %v", m.String(), got)
		}
	}
	if _, err := ParseMethod("jackknife"); err == nil {
		t.Error("expected error for unknown method")
	}
	if got := Method(7).String(); got != "Method(7)" {
		t.Errorf("got %q", got)
	}
}

func BenchmarkRunOrdinary(b *testing.B) {
	sample := normalSample(200, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Run(context.Background(), sample, stats.Mean, Opts{Replicates: 1000, Seed: 1})
	}
}

func BenchmarkRunBalanced(b *testing.B) {
	sample := normalSample(200, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Run(context.Background(), sample, stats.Mean, Opts{Replicates: 1000, Method: Balanced, Seed: 1})
	}
}
