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
	"io"
	"math"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/randinf/resample/bootstrap"
	"github.com/randinf/resample/permutation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Float is a float64 that encodes NaN and infinities as JSON null.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func floats(in []float64) []Float {
	out := make([]Float, len(in))
	for i, v := range in {
		out[i] = Float(v)
	}
	return out
}

// Report is the rendered outcome of one resampling procedure. Exactly one of
// the procedure sections is set.
type Report struct {
	Kind      string `json:"kind"`
	Statistic string `json:"statistic,omitempty"`
	N         int    `json:"n"`

	Bootstrap   *BootstrapSection   `json:"bootstrap,omitempty"`
	Permutation *PermutationSection `json:"permutation,omitempty"`
	Jackknife   *JackknifeSection   `json:"jackknife,omitempty"`
	ECDF        []ECDFPoint         `json:"ecdf,omitempty"`

	// Distribution summarizes the replicate or null distribution, if any.
	Distribution *Distribution `json:"-"`
}

// BootstrapSection describes a bootstrap run.
type BootstrapSection struct {
	Method     string           `json:"method"`
	Replicates int              `json:"replicates"`
	Seed       uint64           `json:"seed"`
	Estimate   Float            `json:"estimate"`
	Bias       Float            `json:"bias"`
	StdErr     Float            `json:"stderr"`
	Interval   *IntervalSection `json:"interval,omitempty"`
}

// IntervalSection describes a confidence interval.
type IntervalSection struct {
	Kind  string `json:"kind"`
	Level Float  `json:"level"`
	Lower Float  `json:"lower"`
	Upper Float  `json:"upper"`
}

// PermutationSection describes a permutation test.
type PermutationSection struct {
	Test         string `json:"test"`
	Alternative  string `json:"alternative"`
	Permutations int    `json:"permutations"`
	Exact        bool   `json:"exact"`
	Seed         uint64 `json:"seed,omitempty"`
	Statistic    Float  `json:"statistic"`
	PValue       Float  `json:"p_value"`
}

// JackknifeSection describes jackknife estimates.
type JackknifeSection struct {
	Estimate  Float   `json:"estimate"`
	Bias      Float   `json:"bias"`
	Variance  Float   `json:"variance"`
	Influence []Float `json:"influence"`
}

// ECDFPoint is one evaluation of an empirical distribution function.
type ECDFPoint struct {
	X Float `json:"x"`
	F Float `json:"f"`
}

// BootstrapReport renders res. ci may be nil.
func BootstrapReport(statistic string, n int, res *bootstrap.Result, ci *bootstrap.Interval) *Report {
	sec := &BootstrapSection{
		Method:     res.Method.String(),
		Replicates: len(res.Replicates),
		Seed:       res.Seed,
		Estimate:   Float(res.Estimate),
		Bias:       Float(res.Bias()),
		StdErr:     Float(res.StdErr()),
	}
	if ci != nil {
		sec.Interval = &IntervalSection{
			Kind:  ci.Kind.String(),
			Level: Float(ci.Level),
			Lower: Float(ci.Lower),
			Upper: Float(ci.Upper),
		}
	}
	return &Report{
		Kind:         "bootstrap",
		Statistic:    statistic,
		N:            n,
		Bootstrap:    sec,
		Distribution: Summarize(res.Replicates, nil),
	}
}

// PermutationReport renders res of the named test.
func PermutationReport(test, statistic string, n int, res *permutation.Result) *Report {
	sec := &PermutationSection{
		Test:         test,
		Alternative:  res.Alternative.String(),
		Permutations: len(res.Null),
		Exact:        res.Exact,
		Statistic:    Float(res.Statistic),
		PValue:       Float(res.PValue),
	}
	if !res.Exact {
		sec.Seed = res.Seed
	}
	return &Report{
		Kind:         "permutation",
		Statistic:    statistic,
		N:            n,
		Permutation:  sec,
		Distribution: Summarize(res.Null, nil),
	}
}

// JackknifeReport renders jackknife estimates of statistic on a sample.
func JackknifeReport(statistic string, estimate, bias, variance float64, influence []float64) *Report {
	return &Report{
		Kind:      "jackknife",
		Statistic: statistic,
		N:         len(influence),
		Jackknife: &JackknifeSection{
			Estimate:  Float(estimate),
			Bias:      Float(bias),
			Variance:  Float(variance),
			Influence: floats(influence),
		},
	}
}

// ECDFReport renders the evaluations fs of an empirical distribution function
// of n observations at xs.
func ECDFReport(n int, xs, fs []float64) *Report {
	pts := make([]ECDFPoint, len(xs))
	for i := range xs {
		pts[i] = ECDFPoint{X: Float(xs[i]), F: Float(fs[i])}
	}
	return &Report{Kind: "ecdf", N: n, ECDF: pts}
}

// EncodeJSON writes r as indented JSON.
func (r *Report) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// EncodeText writes r in the Prometheus text exposition format. Scalars
// become gauges and the distribution, if any, a summary.
func (r *Report) EncodeText(w io.Writer) error {
	var families []*dto.MetricFamily
	add := func(name, help string, ms ...*dto.Metric) {
		families = append(families, &dto.MetricFamily{
			Name:   proto.String(name),
			Help:   proto.String(help),
			Type:   dto.MetricType_GAUGE.Enum(),
			Metric: ms,
		})
	}

	switch {
	case r.Bootstrap != nil:
		b := r.Bootstrap
		add("resample_estimate", "Statistic on the original sample.", gauge(b.Estimate, nil))
		add("resample_bias", "Bootstrap estimate of bias.", gauge(b.Bias, nil))
		add("resample_stderr", "Bootstrap estimate of standard error.", gauge(b.StdErr, nil))
		if ci := b.Interval; ci != nil {
			level := strconv.FormatFloat(float64(ci.Level), 'g', -1, 64)
			add("resample_interval_bound", "Confidence interval bounds.",
				gauge(ci.Lower, map[string]string{"bound": "lower", "kind": ci.Kind, "level": level}),
				gauge(ci.Upper, map[string]string{"bound": "upper", "kind": ci.Kind, "level": level}))
		}
	case r.Permutation != nil:
		p := r.Permutation
		labels := map[string]string{"test": p.Test, "alternative": p.Alternative}
		add("resample_statistic", "Observed test statistic.", gauge(p.Statistic, labels))
		add("resample_p_value", "Permutation p-value.", gauge(p.PValue, labels))
	case r.Jackknife != nil:
		j := r.Jackknife
		add("resample_estimate", "Statistic on the original sample.", gauge(j.Estimate, nil))
		add("resample_bias", "Jackknife estimate of bias.", gauge(j.Bias, nil))
		add("resample_variance", "Jackknife estimate of variance.", gauge(j.Variance, nil))
	}
	if len(r.ECDF) > 0 {
		ms := make([]*dto.Metric, 0, len(r.ECDF))
		for _, pt := range r.ECDF {
			x := strconv.FormatFloat(float64(pt.X), 'g', -1, 64)
			ms = append(ms, gauge(pt.F, map[string]string{"x": x}))
		}
		add("resample_ecdf", "Empirical distribution function.", ms...)
	}
	if r.Distribution != nil {
		name, help := "resample_replicates", "Distribution of the bootstrap replicates."
		if r.Permutation != nil {
			name, help = "resample_null", "Permutation null distribution."
		}
		mf, err := r.Distribution.Family(name, help, nil)
		if err != nil {
			return err
		}
		families = append(families, mf)
	}

	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func gauge(v Float, labels map[string]string) *dto.Metric {
	return &dto.Metric{
		Label: labelPairs(labels),
		Gauge: &dto.Gauge{Value: proto.Float64(float64(v))},
	}
}
