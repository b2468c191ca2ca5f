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

// Package errcapture folds errors from deferred cleanup into the error
// returned by the surrounding function.
package errcapture

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
)

type doFunc func() error

// Do runs doer and, if it fails, adds its error, annotated with format and
// a, to *err. Double closes of files are ignored.
//
//	defer errcapture.Do(&err, f.Close, "close %s", name)
func Do(err *error, doer doFunc, format string, a ...any) {
	derr := doer()
	if err == nil || derr == nil {
		return
	}
	if errors.Is(derr, os.ErrClosed) {
		return
	}

	errs := prometheus.MultiError{}
	errs.Append(*err)
	errs.Append(fmt.Errorf(format+": %w", append(a, derr)...))
	*err = errs.MaybeUnwrap()
}
