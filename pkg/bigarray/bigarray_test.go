package bigarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64IncGrowsAndZeroFills(t *testing.T) {
	a := NewUint64(1)
	a.Inc(0, 2)
	a.Inc(100, 5)
	require.GreaterOrEqual(t, a.Size(), int64(101))
	assert.Equal(t, uint64(2), a.Get(0))
	assert.Equal(t, uint64(5), a.Get(100))
	for ord := int64(1); ord < 100; ord++ {
		require.Equal(t, uint64(0), a.Get(ord))
	}
}

func TestUint64GetOutOfRangePanics(t *testing.T) {
	a := NewUint64(4)
	require.Panics(t, func() { a.Get(4) })
	require.Panics(t, func() { a.Get(-1) })
}

func TestUint64AmortizedGrowth(t *testing.T) {
	// Growth must overshoot so n increments trigger O(log n) resizes.
	a := NewUint64(0)
	var sizes []int64
	last := a.Size()
	for ord := int64(0); ord < 10000; ord++ {
		a.Inc(ord, 1)
		if a.Size() != last {
			last = a.Size()
			sizes = append(sizes, last)
		}
	}
	require.Less(t, len(sizes), 20)
	for ord := int64(0); ord < 10000; ord++ {
		require.Equal(t, uint64(1), a.Get(ord))
	}
}

func TestFloat64Fill(t *testing.T) {
	a := NewFloat64(2, math.Inf(1))
	assert.Equal(t, math.Inf(1), a.Get(0))
	a.Set(10, 3.5)
	assert.Equal(t, 3.5, a.Get(10))
	assert.Equal(t, math.Inf(1), a.Get(9))
}

func TestFloat64Add(t *testing.T) {
	a := NewFloat64(0, 0)
	a.Add(3, 1.5)
	a.Add(3, 2.5)
	assert.Equal(t, 4.0, a.Get(3))
	assert.Equal(t, 0.0, a.Get(0))
}
