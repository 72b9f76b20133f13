// Package rng provides the seeded random source used by every generation and
// decision step, so that a seed reproduces a whole run.
package rng

import (
	"encoding/binary"
	"math/rand"

	"github.com/google/uuid"
)

// countingSource counts draws from the underlying source. Position is measured
// in source draws rather than calls, so rejected and redrawn values count too.
type countingSource struct {
	src rand.Source64
	n   int64
}

func (s *countingSource) Int63() int64 {
	s.n++
	return s.src.Int63()
}

func (s *countingSource) Uint64() uint64 {
	s.n++
	return s.src.Uint64()
}

func (s *countingSource) Seed(seed int64) {
	s.src.Seed(seed)
	s.n = 0
}

// RNG wraps math/rand.Rand with deterministic position tracking.
type RNG struct {
	seed int64
	cs   *countingSource
	src  *rand.Rand
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	cs := &countingSource{src: rand.NewSource(seed).(rand.Source64)}
	return &RNG{
		seed: seed,
		cs:   cs,
		src:  rand.New(cs),
	}
}

// Seed returns the seed the generator was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random integer in [0, n). n <= 0 yields 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.Intn(n)
}

// IntRange returns a random integer in [min, max].
func (r *RNG) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.src.Intn(max-min+1)
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Shuffle permutes n elements with Fisher-Yates through swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.src.Shuffle(n, swap)
}

// WeightedSelect returns an index chosen by weighted random selection. A roll
// in [0, total) is reduced by each weight in order and the index that takes it
// below zero wins, so zero weights are never chosen while any weight is
// positive. Negative weights count as zero; if nothing is positive the choice
// is uniform. Returns -1 for an empty slice.
func (r *RNG) WeightedSelect(weights []int) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return r.src.Intn(len(weights))
	}
	roll := r.src.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// NewID returns a version 4 UUID built from two draws of the generator.
func (r *RNG) NewID() string {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], r.cs.Uint64())
	binary.BigEndian.PutUint64(b[8:], r.cs.Uint64())
	id, err := uuid.NewRandomFromReader(bytesReader(b[:]))
	if err != nil {
		// Sixteen bytes are always available.
		panic(err)
	}
	return id.String()
}

// Position returns the number of source draws made since creation.
func (r *RNG) Position() int64 {
	return r.cs.n
}

// Pick returns a uniformly chosen element. The slice must be non-empty.
func Pick[T any](r *RNG, items []T) T {
	return items[r.Intn(len(items))]
}

type bytesReader []byte

func (b bytesReader) Read(p []byte) (int, error) {
	return copy(p, b), nil
}
