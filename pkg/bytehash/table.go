// Package bytehash maps opaque byte-string keys to dense ordinals.
//
// The first time a key is added it is assigned the next sequential
// ordinal starting at zero, so after n distinct keys the assigned
// ordinals are exactly {0..n-1}.  The table stores each key's bytes in
// an append-only arena so that ordinals can be mapped back to keys when
// results are built.
package bytehash

import "bytes"

const (
	initialSlots = 16 // power of two
	maxLoadNum   = 3  // grow beyond 3/4 load
	maxLoadDen   = 4
)

// Table is a hash table from byte-string keys to dense ordinals.  The
// 64-bit hash of a key is supplied by the caller, which typically has
// computed it already for its own purposes.
type Table struct {
	slots  []int32  // ordinal+1, 0 means empty
	mask   uint64   // len(slots)-1
	hashes []uint64 // by ordinal, for probing and rehash
	offs   []uint32 // by ordinal, arena offsets; len == Size()+1
	arena  []byte
}

// New returns an empty table.
func New() *Table {
	return &Table{
		slots: make([]int32, initialSlots),
		mask:  initialSlots - 1,
		offs:  []uint32{0},
	}
}

// Size returns the number of distinct keys added so far.
func (t *Table) Size() int {
	return len(t.hashes)
}

// Add looks up key under the given hash.  If the key is new, it is
// assigned the next sequential ordinal, which is returned as a
// non-negative value.  If the key was seen before, its existing ordinal
// ord is returned encoded as -1-ord, so callers can distinguish "grow
// per-ordinal state" from "already sized".
func (t *Table) Add(key []byte, hash uint64) int {
	if ord := t.find(key, hash); ord >= 0 {
		return -1 - ord
	}
	if len(t.hashes)*maxLoadDen >= len(t.slots)*maxLoadNum {
		t.rehash()
	}
	ord := len(t.hashes)
	t.hashes = append(t.hashes, hash)
	t.arena = append(t.arena, key...)
	t.offs = append(t.offs, uint32(len(t.arena)))
	t.insert(hash, int32(ord))
	return ord
}

// Key returns the bytes of the key assigned the given ordinal.  The
// returned slice aliases the table's arena and must not be modified.
// Ordinals outside [0,Size()) are a programming defect and panic.
func (t *Table) Key(ord int) []byte {
	return t.arena[t.offs[ord]:t.offs[ord+1]]
}

func (t *Table) find(key []byte, hash uint64) int {
	for i := hash & t.mask; ; i = (i + 1) & t.mask {
		slot := t.slots[i]
		if slot == 0 {
			return -1
		}
		ord := int(slot - 1)
		if t.hashes[ord] == hash && bytes.Equal(t.Key(ord), key) {
			return ord
		}
	}
}

func (t *Table) insert(hash uint64, slot int32) {
	i := hash & t.mask
	for t.slots[i] != 0 {
		i = (i + 1) & t.mask
	}
	t.slots[i] = slot + 1
}

func (t *Table) rehash() {
	t.slots = make([]int32, 2*len(t.slots))
	t.mask = uint64(len(t.slots) - 1)
	for ord, hash := range t.hashes {
		t.insert(hash, int32(ord))
	}
}
