package bytehash

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func add(t *Table, key string) int {
	return t.Add([]byte(key), xxhash.Sum64String(key))
}

func TestAddAssignsSequentialOrdinals(t *testing.T) {
	tab := New()
	assert.Equal(t, 0, add(tab, "a"))
	assert.Equal(t, 1, add(tab, "b"))
	assert.Equal(t, 2, add(tab, "c"))
	assert.Equal(t, 3, tab.Size())
}

func TestAddEncodesExistingKeys(t *testing.T) {
	tab := New()
	require.Equal(t, 0, add(tab, "x"))
	require.Equal(t, -1, add(tab, "x"))
	require.Equal(t, 1, add(tab, "y"))
	require.Equal(t, -2, add(tab, "y"))
	require.Equal(t, -1, add(tab, "x"))
	assert.Equal(t, 2, tab.Size())
}

func TestKeyReverseLookup(t *testing.T) {
	tab := New()
	keys := []string{"alpha", "", "beta", "a much longer key with spaces"}
	for i, key := range keys {
		require.Equal(t, i, add(tab, key))
	}
	for i, key := range keys {
		assert.Equal(t, []byte(key), tab.Key(i))
	}
}

func TestOrdinalStabilityAcrossGrowth(t *testing.T) {
	// Ordinals must survive internal rehashing and stay dense with no
	// gaps, no matter how keys are interleaved.
	tab := New()
	ords := make(map[string]int)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50000; i++ {
		key := fmt.Sprintf("key-%d", rng.Intn(5000))
		got := add(tab, key)
		if want, ok := ords[key]; ok {
			require.Equal(t, -1-want, got)
		} else {
			require.Equal(t, len(ords), got)
			ords[key] = got
		}
	}
	require.Equal(t, len(ords), tab.Size())
	for key, ord := range ords {
		require.Equal(t, []byte(key), tab.Key(ord))
	}
}

func TestHashCollisionsCompareBytes(t *testing.T) {
	// Two different keys added under the same hash must still get
	// distinct ordinals.
	tab := New()
	require.Equal(t, 0, tab.Add([]byte("one"), 42))
	require.Equal(t, 1, tab.Add([]byte("two"), 42))
	require.Equal(t, -1, tab.Add([]byte("one"), 42))
	require.Equal(t, -2, tab.Add([]byte("two"), 42))
	assert.Equal(t, []byte("one"), tab.Key(0))
	assert.Equal(t, []byte("two"), tab.Key(1))
}
