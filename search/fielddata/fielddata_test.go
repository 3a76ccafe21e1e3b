package fielddata

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesArray(t *testing.T) {
	src := NewStringsArray([][]string{
		{"a", "b"},
		{},
		{"c"},
	})
	n, err := src.SetDocument(0)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	v, err := src.NextValue()
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), v)
	assert.Equal(t, xxhash.Sum64String("a"), src.CurrentValueHash())
	v, err = src.NextValue()
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), v)
	_, err = src.NextValue()
	require.Error(t, err)

	n, err = src.SetDocument(1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Documents beyond the backing array have no values.
	n, err = src.SetDocument(99)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestNumericsArray(t *testing.T) {
	src := NewNumericsArray([][]float64{
		{1.5, 2.5},
		nil,
	})
	n, err := src.SetDocument(0)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	v, err := src.NextValue()
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	v, err = src.NextValue()
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
	_, err = src.NextValue()
	require.Error(t, err)
}
