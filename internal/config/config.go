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

// Package config loads the run configuration of the resample command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/randinf/resample/bootstrap"
	"github.com/randinf/resample/instrument"
	"github.com/randinf/resample/permutation"
	"github.com/randinf/resample/stats"
)

// Config describes how the resample command runs its procedures.
type Config struct {
	Statistic   string            `yaml:"statistic"`
	Seed        uint64            `yaml:"seed"`
	Workers     int               `yaml:"workers"`
	Bootstrap   BootstrapConfig   `yaml:"bootstrap"`
	Permutation PermutationConfig `yaml:"permutation"`
}

// BootstrapConfig holds bootstrap settings.
type BootstrapConfig struct {
	Replicates int     `yaml:"replicates"`
	Method     string  `yaml:"method"`
	Level      float64 `yaml:"level"`
	Interval   string  `yaml:"interval"`
}

// PermutationConfig holds permutation test settings.
type PermutationConfig struct {
	Permutations int    `yaml:"permutations"`
	Alternative  string `yaml:"alternative"`
	Exact        bool   `yaml:"exact"`
	// Statistic is the two-sample statistic: diff_means, diff_medians or
	// welch_t.
	Statistic string `yaml:"statistic"`
}

// TwoSampleStatistics maps the accepted permutation.statistic values.
var TwoSampleStatistics = map[string]permutation.TwoSampleStatistic{
	"diff_means":   permutation.DiffMeans,
	"diff_medians": permutation.DiffMedians,
	"welch_t":      permutation.WelchT,
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Statistic: "mean",
		Bootstrap: BootstrapConfig{
			Replicates: bootstrap.DefReplicates,
			Method:     bootstrap.Ordinary.String(),
			Level:      0.95,
			Interval:   bootstrap.Percentile.String(),
		},
		Permutation: PermutationConfig{
			Permutations: permutation.DefPermutations,
			Alternative:  permutation.TwoSided.String(),
			Statistic:    "diff_means",
		},
	}
}

// Load loads configuration from a YAML file. Fields missing from the file
// keep their defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if s := os.Getenv("RESAMPLE_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid RESAMPLE_SEED: %w", err)
		}
		c.Seed = seed
	}
	if s := os.Getenv("RESAMPLE_WORKERS"); s != "" {
		w, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid RESAMPLE_WORKERS: %w", err)
		}
		c.Workers = w
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := stats.Lookup(c.Statistic); !ok {
		errs = append(errs, fmt.Errorf("invalid statistic: %s (valid: %v)", c.Statistic, stats.Names()))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("invalid workers: %d", c.Workers))
	}
	if c.Bootstrap.Replicates < 1 {
		errs = append(errs, fmt.Errorf("invalid bootstrap.replicates: %d", c.Bootstrap.Replicates))
	}
	if _, err := bootstrap.ParseMethod(c.Bootstrap.Method); err != nil {
		errs = append(errs, err)
	}
	if _, err := bootstrap.ParseIntervalKind(c.Bootstrap.Interval); err != nil {
		errs = append(errs, err)
	}
	if !(c.Bootstrap.Level > 0 && c.Bootstrap.Level < 1) {
		errs = append(errs, fmt.Errorf("invalid bootstrap.level: %v", c.Bootstrap.Level))
	}
	if c.Permutation.Permutations < 1 {
		errs = append(errs, fmt.Errorf("invalid permutation.permutations: %d", c.Permutation.Permutations))
	}
	if _, err := permutation.ParseAlternative(c.Permutation.Alternative); err != nil {
		errs = append(errs, err)
	}
	if _, ok := TwoSampleStatistics[c.Permutation.Statistic]; !ok {
		errs = append(errs, fmt.Errorf("invalid permutation.statistic: %s", c.Permutation.Statistic))
	}
	return errors.Join(errs...)
}

// Stat returns the configured one-sample statistic.
func (c *Config) Stat() stats.Statistic {
	s, _ := stats.Lookup(c.Statistic)
	return s
}

// BootstrapOpts returns the options for bootstrap.Run.
func (c *Config) BootstrapOpts(obs instrument.Observer) (bootstrap.Opts, error) {
	m, err := bootstrap.ParseMethod(c.Bootstrap.Method)
	if err != nil {
		return bootstrap.Opts{}, err
	}
	return bootstrap.Opts{
		Replicates: c.Bootstrap.Replicates,
		Method:     m,
		Seed:       c.Seed,
		Workers:    c.Workers,
		Observer:   obs,
	}, nil
}

// IntervalKind returns the configured confidence interval construction.
func (c *Config) IntervalKind() (bootstrap.IntervalKind, error) {
	return bootstrap.ParseIntervalKind(c.Bootstrap.Interval)
}

// PermutationOpts returns the options for the permutation tests.
func (c *Config) PermutationOpts(obs instrument.Observer) (permutation.Opts, error) {
	alt, err := permutation.ParseAlternative(c.Permutation.Alternative)
	if err != nil {
		return permutation.Opts{}, err
	}
	return permutation.Opts{
		Permutations: c.Permutation.Permutations,
		Alternative:  alt,
		Seed:         c.Seed,
		Workers:      c.Workers,
		Exact:        c.Permutation.Exact,
		Observer:     obs,
	}, nil
}
