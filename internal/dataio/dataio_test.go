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

package dataio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	scenarios := []struct {
		name  string
		input string
		want  []float64
	}{
		{"empty", "", nil},
		{"lines", "1\n2.5\n-3\n", []float64{1, 2.5, -3}},
		{"mixed separators", "1, 2;3\t4  5\r\n6", []float64{1, 2, 3, 4, 5, 6}},
		{"comments", "# header\n1 # one\n\n2e3\n", []float64{1, 2000}},
	}
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(s.input))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(s.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLongLine(t *testing.T) {
	// A whole sample on one comma-separated line, well past bufio's
	// default token size.
	const n = 20000
	got, err := Parse(strings.NewReader(strings.Repeat("1.2345,", n) + "\n7"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != n+1 {
		t.Fatalf("got %d values, want %d", len(got), n+1)
	}
	if got[0] != 1.2345 || got[n-1] != 1.2345 || got[n] != 7 {
		t.Errorf("unexpected values %v, %v, %v", got[0], got[n-1], got[n])
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"1\nabc\n", "NaN", "1 +Inf"} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q): expected error", input)
		}
	}
	_, err := Parse(strings.NewReader("1\n2\nx"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("got %v, want error mentioning line 3", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte("3\n1\n2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{3, 1, 2}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
