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

package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func checkFloat64(t *testing.T, x, v, tol float64) {
	t.Helper()
	if math.Abs(x-v) > tol {
		t.Errorf("Value %f is not within %f of %f", x, tol, v)
	}
}

func TestDistribution(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i + 1)
	}
	d := Summarize(values, nil)
	d.Observe(math.NaN())

	if got := d.Count(); got != 1000 {
		t.Errorf("got count %d, want 1000", got)
	}
	if got := d.Dropped(); got != 1 {
		t.Errorf("got %d dropped, want 1", got)
	}
	checkFloat64(t, d.Sum(), 500500, 0)
	checkFloat64(t, d.Quantile(0.5), 500, 15)
	checkFloat64(t, d.Quantile(0.975), 975, 3)
	checkFloat64(t, d.Quantile(0.025), 25, 3)
}

func TestDistributionEmpty(t *testing.T) {
	d := NewDistribution(map[float64]float64{0.5: 0.05})
	if !math.IsNaN(d.Quantile(0.5)) {
		t.Error("expected NaN quantile for empty distribution")
	}
	m := &dto.Metric{}
	if err := d.Write(m); err != nil {
		t.Fatal(err)
	}
	if m.GetSummary().GetSampleCount() != 0 || len(m.GetSummary().GetQuantile()) != 0 {
		t.Errorf("unexpected summary %v", m.GetSummary())
	}
}

func TestDistributionWrite(t *testing.T) {
	d := Summarize([]float64{1, 2, 3, 4}, map[float64]float64{0.9: 0.01, 0.1: 0.01})
	m := &dto.Metric{}
	if err := d.Write(m); err != nil {
		t.Fatal(err)
	}
	s := m.GetSummary()
	if s.GetSampleCount() != 4 || s.GetSampleSum() != 10 {
		t.Errorf("unexpected count/sum %d/%v", s.GetSampleCount(), s.GetSampleSum())
	}
	qs := s.GetQuantile()
	if len(qs) != 2 || qs[0].GetQuantile() != 0.1 || qs[1].GetQuantile() != 0.9 {
		t.Errorf("unexpected quantiles %v", qs)
	}
	if err := d.Write(nil); err == nil {
		t.Error("expected error for nil metric")
	}
}

func TestDistributionWriteText(t *testing.T) {
	d := Summarize([]float64{1, 2, 3}, map[float64]float64{0.5: 0.05})
	var buf bytes.Buffer
	if err := d.WriteText(&buf, "resample_replicates", "Replicates."); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# HELP resample_replicates Replicates.",
		"# TYPE resample_replicates summary",
		`resample_replicates{quantile="0.5"} 2`,
		"resample_replicates_sum 6",
		"resample_replicates_count 3",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output misses %q:\n%s", want, buf.String())
		}
	}

	if err := d.WriteText(&buf, "not a name", ""); err == nil {
		t.Error("expected error for invalid metric name")
	}
}
