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

// Package instrument reports resampling runs to Prometheus.
package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer is notified once per completed resampling run. kind names the
// procedure ("bootstrap", "permutation_two_sample", ...), draws is the number
// of resamples requested and err is the error the run returned, if any.
type Observer interface {
	ObserveRun(kind string, draws int, elapsed time.Duration, err error)
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(kind string, draws int, elapsed time.Duration, err error)

// ObserveRun calls f.
func (f ObserverFunc) ObserveRun(kind string, draws int, elapsed time.Duration, err error) {
	f(kind, draws, elapsed, err)
}

type nopObserver struct{}

func (nopObserver) ObserveRun(string, int, time.Duration, error) {}

// Nop discards all observations.
var Nop Observer = nopObserver{}

// OrNop returns o, or Nop if o is nil.
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop
	}
	return o
}

// DefBuckets are the run duration buckets in seconds.
var DefBuckets = prometheus.ExponentialBuckets(0.001, 4, 9)

// Metrics is an Observer backed by Prometheus collectors.
type Metrics struct {
	runs     *prometheus.CounterVec
	draws    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the run collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resample",
			Name:      "runs_total",
			Help:      "Total number of resampling runs by procedure and outcome.",
		}, []string{"kind", "outcome"}),
		draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resample",
			Name:      "draws_total",
			Help:      "Total number of resamples requested by procedure.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resample",
			Name:      "run_duration_seconds",
			Help:      "Wall time of resampling runs by procedure.",
			Buckets:   DefBuckets,
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.draws, m.duration)
	}
	return m
}

// ObserveRun implements Observer.
func (m *Metrics) ObserveRun(kind string, draws int, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.runs.WithLabelValues(kind, outcome).Inc()
	m.draws.WithLabelValues(kind).Add(float64(draws))
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.runs.Describe(ch)
	m.draws.Describe(ch)
	m.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.runs.Collect(ch)
	m.draws.Collect(ch)
	m.duration.Collect(ch)
}
