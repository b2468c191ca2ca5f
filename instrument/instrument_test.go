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

package instrument

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewMetrics(reg)

	m.ObserveRun("bootstrap", 1000, 3*time.Millisecond, nil)
	m.ObserveRun("bootstrap", 500, time.Millisecond, nil)
	m.ObserveRun("permutation_two_sample", 99, time.Millisecond, errors.New("cancelled"))

	expected := `
# HELP resample_draws_total Total number of resamples requested by procedure.
# TYPE resample_draws_total counter
resample_draws_total{kind="bootstrap"} 1500
resample_draws_total{kind="permutation_two_sample"} 99
# HELP resample_runs_total Total number of resampling runs by procedure and outcome.
# TYPE resample_runs_total counter
resample_runs_total{kind="bootstrap",outcome="success"} 2
resample_runs_total{kind="permutation_two_sample",outcome="error"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "resample_runs_total", "resample_draws_total"); err != nil {
		t.Error(err)
	}

	if got := testutil.CollectAndCount(m, "resample_run_duration_seconds"); got != 2 {
		t.Errorf("got %d duration series, want 2", got)
	}
}

func TestNewMetricsWithoutRegisterer(t *testing.T) {
	m := NewMetrics(nil)
	m.ObserveRun("bootstrap", 1, 0, nil)
	if got := testutil.ToFloat64(m.runs.WithLabelValues("bootstrap", "success")); got != 1 {
		t.Errorf("got %v runs, want 1", got)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) != Nop {
		t.Error("OrNop(nil) did not return Nop")
	}
	called := false
	o := ObserverFunc(func(string, int, time.Duration, error) { called = true })
	OrNop(o).ObserveRun("x", 1, 0, nil)
	if !called {
		t.Error("observer not called")
	}
}
