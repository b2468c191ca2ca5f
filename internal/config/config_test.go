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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/randinf/resample/bootstrap"
	"github.com/randinf/resample/permutation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resample.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("unexpected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
statistic: median
seed: 42
workers: 3
bootstrap:
  replicates: 2000
  method: balanced
  interval: bca
permutation:
  alternative: greater
  exact: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Statistic = "median"
	want.Seed = 42
	want.Workers = 3
	want.Bootstrap.Replicates = 2000
	want.Bootstrap.Method = "balanced"
	want.Bootstrap.Interval = "bca"
	want.Permutation.Alternative = "greater"
	want.Permutation.Exact = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}

	bo, err := cfg.BootstrapOpts(nil)
	if err != nil {
		t.Fatal(err)
	}
	if bo.Method != bootstrap.Balanced || bo.Replicates != 2000 || bo.Seed != 42 || bo.Workers != 3 {
		t.Errorf("unexpected bootstrap options %+v", bo)
	}
	po, err := cfg.PermutationOpts(nil)
	if err != nil {
		t.Fatal(err)
	}
	if po.Alternative != permutation.Greater || !po.Exact || po.Permutations != permutation.DefPermutations {
		t.Errorf("unexpected permutation options %+v", po)
	}
	if kind, err := cfg.IntervalKind(); err != nil || kind != bootstrap.BCa {
		t.Errorf("IntervalKind() = %v, %v", kind, err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RESAMPLE_SEED", "7")
	t.Setenv("RESAMPLE_WORKERS", "2")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 7 || cfg.Workers != 2 {
		t.Errorf("got seed %d workers %d, want 7 and 2", cfg.Seed, cfg.Workers)
	}

	t.Setenv("RESAMPLE_SEED", "-1")
	if _, err := Load(""); err == nil {
		t.Error("expected error for invalid seed")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeConfig(t, `
statistic: kurtosis
bootstrap:
  method: jackknife
  level: 1.5
permutation:
  statistic: ks
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"kurtosis", "jackknife", "bootstrap.level", "permutation.statistic"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "statistic: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
