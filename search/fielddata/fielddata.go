// Package fielddata abstracts per-document field values for the
// aggregation engine.  A values source is positioned on a document with
// SetDocument, which reports how many values the document has for the
// field; the values are then consumed one at a time.
package fielddata

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Bytes yields zero or more byte-string values per document.
// CurrentValueHash returns the 64-bit hash of the value most recently
// returned by NextValue; the hash is computed once by the source so
// callers that need it (hash tables, sketches) never recompute it.
type Bytes interface {
	SetDocument(doc int) (int, error)
	NextValue() ([]byte, error)
	CurrentValueHash() uint64
}

// Numerics yields zero or more float64 values per document.
type Numerics interface {
	SetDocument(doc int) (int, error)
	NextValue() (float64, error)
}

// BytesArray is an in-memory Bytes source: values[doc] holds the
// document's values in order.  Documents beyond len(values) have no
// values.
type BytesArray struct {
	values [][][]byte

	doc  int
	next int
	hash uint64
}

var _ Bytes = (*BytesArray)(nil)

func NewBytesArray(values [][][]byte) *BytesArray {
	return &BytesArray{values: values, doc: -1}
}

// NewStringsArray is a convenience wrapper around NewBytesArray for
// string-typed test and fixture data.
func NewStringsArray(values [][]string) *BytesArray {
	b := make([][][]byte, len(values))
	for doc, vals := range values {
		for _, v := range vals {
			b[doc] = append(b[doc], []byte(v))
		}
	}
	return NewBytesArray(b)
}

func (b *BytesArray) SetDocument(doc int) (int, error) {
	if doc < 0 {
		return 0, fmt.Errorf("fielddata: invalid document %d", doc)
	}
	b.doc = doc
	b.next = 0
	if doc >= len(b.values) {
		return 0, nil
	}
	return len(b.values[doc]), nil
}

func (b *BytesArray) NextValue() ([]byte, error) {
	if b.doc < 0 || b.doc >= len(b.values) || b.next >= len(b.values[b.doc]) {
		return nil, fmt.Errorf("fielddata: no next value for document %d", b.doc)
	}
	v := b.values[b.doc][b.next]
	b.next++
	b.hash = xxhash.Sum64(v)
	return v, nil
}

func (b *BytesArray) CurrentValueHash() uint64 {
	return b.hash
}

// NumericsArray is an in-memory Numerics source: values[doc] holds the
// document's values in order.
type NumericsArray struct {
	values [][]float64

	doc  int
	next int
}

var _ Numerics = (*NumericsArray)(nil)

func NewNumericsArray(values [][]float64) *NumericsArray {
	return &NumericsArray{values: values, doc: -1}
}

func (n *NumericsArray) SetDocument(doc int) (int, error) {
	if doc < 0 {
		return 0, fmt.Errorf("fielddata: invalid document %d", doc)
	}
	n.doc = doc
	n.next = 0
	if doc >= len(n.values) {
		return 0, nil
	}
	return len(n.values[doc]), nil
}

func (n *NumericsArray) NextValue() (float64, error) {
	if n.doc < 0 || n.doc >= len(n.values) || n.next >= len(n.values[n.doc]) {
		return 0, fmt.Errorf("fielddata: no next value for document %d", n.doc)
	}
	v := n.values[n.doc][n.next]
	n.next++
	return v, nil
}
