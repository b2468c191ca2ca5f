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

// Package parallel fans resampling work out over a bounded set of goroutines
// while keeping the random streams independent of the degree of parallelism.
package parallel

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// ChunkSize is the number of draws handled by one task. Every chunk owns its
// own generator, so the output only depends on the seed.
const ChunkSize = 64

// Func computes draws [lo, hi) using rng.
type Func func(rng *rand.Rand, lo, hi int) error

// RandomSeed returns a non-zero seed read from crypto/rand.
func RandomSeed() uint64 {
	for {
		var seed uint64
		if err := binary.Read(cryptorand.Reader, binary.LittleEndian, &seed); err != nil {
			panic(err)
		}
		if seed != 0 {
			return seed
		}
	}
}

// Workers returns n, or GOMAXPROCS if n is zero.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Rand returns the generator for the given stream of a run seeded with seed.
// Distinct (seed, stream) pairs produce unrelated sequences.
func Rand(seed uint64, stream uint64) *rand.Rand {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], stream)
	return rand.New(rand.NewSource(int64(xxhash.Sum64(buf[:]))))
}

// Run evaluates fn over [0, n) in chunks of ChunkSize on at most workers
// goroutines. Chunk i is handed Rand(seed, i+1); stream 0 is left to callers
// that need a generator outside of the chunked work.
func Run(ctx context.Context, n, workers int, seed uint64, fn Func) error {
	if n < 0 {
		return fmt.Errorf("parallel: negative size %d", n)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(workers))

	for lo := 0; lo < n; lo += ChunkSize {
		if gctx.Err() != nil {
			break
		}
		lo, hi := lo, min(lo+ChunkSize, n)
		stream := uint64(lo/ChunkSize) + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(Rand(seed, stream), lo, hi)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
