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

// Package export renders resampling results for consumption outside of Go:
// as Prometheus summaries and text exposition, or as JSON reports.
package export

import (
	"fmt"
	"io"
	"math"
	"sort"
	"sync"

	"github.com/beorn7/perks/quantile"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
	"google.golang.org/protobuf/proto"
)

// DefObjectives are the default quantile ranks of a Distribution and their
// tolerated rank error. They cover the bounds of the customary 90% and 95%
// intervals.
var DefObjectives = map[float64]float64{
	0.025: 0.001,
	0.05:  0.001,
	0.5:   0.01,
	0.95:  0.001,
	0.975: 0.001,
}

// Distribution is a streaming summary of a replicate or null distribution:
// count, sum and targeted quantile estimates. It is safe for concurrent use.
type Distribution struct {
	mtx sync.Mutex

	objectives []float64
	stream     *quantile.Stream
	count      uint64
	sum        float64
	dropped    uint64
}

// NewDistribution returns an empty Distribution estimating the given
// objectives. An empty map selects DefObjectives.
func NewDistribution(objectives map[float64]float64) *Distribution {
	if len(objectives) == 0 {
		objectives = DefObjectives
	}
	ranks := make([]float64, 0, len(objectives))
	for rank := range objectives {
		ranks = append(ranks, rank)
	}
	sort.Float64s(ranks)
	return &Distribution{
		objectives: ranks,
		stream:     quantile.NewTargeted(objectives),
	}
}

// Summarize returns a Distribution holding all values.
func Summarize(values []float64, objectives map[float64]float64) *Distribution {
	d := NewDistribution(objectives)
	for _, v := range values {
		d.Observe(v)
	}
	return d
}

// Observe adds v. NaN values are counted as dropped and otherwise ignored.
func (d *Distribution) Observe(v float64) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if math.IsNaN(v) {
		d.dropped++
		return
	}
	d.stream.Insert(v)
	d.count++
	d.sum += v
}

// Count returns the number of observed values.
func (d *Distribution) Count() uint64 {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.count
}

// Dropped returns the number of NaN values passed to Observe.
func (d *Distribution) Dropped() uint64 {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.dropped
}

// Sum returns the sum of the observed values.
func (d *Distribution) Sum() float64 {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.sum
}

// Quantile returns the estimate of the q-quantile, or NaN if nothing was
// observed.
func (d *Distribution) Quantile(q float64) float64 {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if d.count == 0 {
		return math.NaN()
	}
	return d.stream.Query(q)
}

// Write fills out with a summary of the distribution.
func (d *Distribution) Write(out *dto.Metric) error {
	if out == nil {
		return fmt.Errorf("export: nil metric")
	}
	d.mtx.Lock()
	defer d.mtx.Unlock()

	sum := &dto.Summary{
		SampleCount: proto.Uint64(d.count),
		SampleSum:   proto.Float64(d.sum),
	}
	if d.count > 0 {
		qs := make([]*dto.Quantile, 0, len(d.objectives))
		for _, rank := range d.objectives {
			qs = append(qs, &dto.Quantile{
				Quantile: proto.Float64(rank),
				Value:    proto.Float64(d.stream.Query(rank)),
			})
		}
		sum.Quantile = qs
	}
	out.Summary = sum
	return nil
}

// Family returns the distribution as a summary metric family.
func (d *Distribution) Family(name, help string, labels map[string]string) (*dto.MetricFamily, error) {
	if !model.IsValidMetricName(model.LabelValue(name)) {
		return nil, fmt.Errorf("export: invalid metric name %q", name)
	}
	m := &dto.Metric{Label: labelPairs(labels)}
	if err := d.Write(m); err != nil {
		return nil, err
	}
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_SUMMARY.Enum(),
		Metric: []*dto.Metric{m},
	}, nil
}

// WriteText writes the distribution as a summary in the Prometheus text
// exposition format.
func (d *Distribution) WriteText(w io.Writer, name, help string) error {
	mf, err := d.Family(name, help, nil)
	if err != nil {
		return err
	}
	_, err = expfmt.MetricFamilyToText(w, mf)
	return err
}

func labelPairs(labels map[string]string) []*dto.LabelPair {
	if len(labels) == 0 {
		return nil
	}
	names := make([]string, 0, len(labels))
	for n := range labels {
		names = append(names, n)
	}
	sort.Strings(names)
	pairs := make([]*dto.LabelPair, 0, len(names))
	for _, n := range names {
		pairs = append(pairs, &dto.LabelPair{
			Name:  proto.String(n),
			Value: proto.String(labels[n]),
		})
	}
	return pairs
}
