// Package bigarray provides growable arrays indexed by dense bucket
// ordinals.  Growth is amortized so that filling n ordinals costs O(n)
// copy work total, and newly exposed slots are always zero.
package bigarray

import "fmt"

// Uint64 is a growable array of 64-bit counters.
type Uint64 struct {
	vals []uint64
}

// NewUint64 returns an array with the given initial size, all slots zero.
func NewUint64(size int64) *Uint64 {
	return &Uint64{vals: make([]uint64, size)}
}

// Size returns the current logical size, i.e., one past the highest
// addressable ordinal.
func (a *Uint64) Size() int64 {
	return int64(len(a.vals))
}

// Get returns the counter at ord.  Addressing an ordinal that was never
// grown to is a programming defect and panics.
func (a *Uint64) Get(ord int64) uint64 {
	if ord < 0 || ord >= int64(len(a.vals)) {
		panic(fmt.Sprintf("bigarray: ordinal %d out of range [0,%d)", ord, len(a.vals)))
	}
	return a.vals[ord]
}

// Inc adds delta to the counter at ord, growing the array first if
// needed.  Combining grow and increment here keeps callers from ever
// incrementing an uncovered slot.
func (a *Uint64) Inc(ord int64, delta uint64) {
	a.Grow(ord + 1)
	a.vals[ord] += delta
}

// Grow extends the array to at least minSize slots.  The new capacity
// overshoots minSize so that repeated growth over n ordinals triggers
// only O(log n) reallocations.
func (a *Uint64) Grow(minSize int64) {
	if minSize <= int64(len(a.vals)) {
		return
	}
	a.vals = append(a.vals, make([]uint64, growTo(minSize, int64(len(a.vals)))-int64(len(a.vals)))...)
}

// Float64 is a growable array of float64 accumulators with a
// configurable fill value for newly exposed slots (e.g. +Inf for a min
// aggregator).
type Float64 struct {
	vals []float64
	fill float64
}

// NewFloat64 returns an array with the given initial size, all slots
// set to fill.
func NewFloat64(size int64, fill float64) *Float64 {
	a := &Float64{fill: fill}
	a.Grow(size)
	return a
}

func (a *Float64) Size() int64 {
	return int64(len(a.vals))
}

func (a *Float64) Get(ord int64) float64 {
	if ord < 0 || ord >= int64(len(a.vals)) {
		panic(fmt.Sprintf("bigarray: ordinal %d out of range [0,%d)", ord, len(a.vals)))
	}
	return a.vals[ord]
}

// Set stores v at ord, growing the array first if needed.
func (a *Float64) Set(ord int64, v float64) {
	a.Grow(ord + 1)
	a.vals[ord] = v
}

// Add adds delta to the accumulator at ord, growing the array first if
// needed.  A slot touched for the first time starts at the fill value.
func (a *Float64) Add(ord int64, delta float64) {
	a.Grow(ord + 1)
	a.vals[ord] += delta
}

func (a *Float64) Grow(minSize int64) {
	if minSize <= int64(len(a.vals)) {
		return
	}
	newSize := growTo(minSize, int64(len(a.vals)))
	for int64(len(a.vals)) < newSize {
		a.vals = append(a.vals, a.fill)
	}
}

func growTo(minSize, size int64) int64 {
	newSize := size
	if newSize < 8 {
		newSize = 8
	}
	for newSize < minSize {
		newSize *= 2
	}
	return newSize
}
