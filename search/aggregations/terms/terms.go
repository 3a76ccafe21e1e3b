// Package terms implements the terms bucket aggregation: one bucket
// per distinct byte-string value of a field, over an a-priori-unknown,
// unbounded set of values.  Bucket identity is a dense ordinal assigned
// by a hash table on first sight; per-bucket state (counts, nested
// aggregation state) lives in arrays indexed by that ordinal.  Result
// building keeps only the top requiredSize buckets by a configurable
// order and finalizes nested results only for the buckets that survive.
package terms

import (
	"fmt"

	"github.com/tbrooks007/elasticsearch/pkg/bigarray"
	"github.com/tbrooks007/elasticsearch/pkg/bytehash"
	"github.com/tbrooks007/elasticsearch/search/aggregations"
	"github.com/tbrooks007/elasticsearch/search/fielddata"
)

// initialCapacity sizes the counter array and the bucket estimate
// handed to sub-aggregators before any value has been seen.
const initialCapacity = 50

type Aggregator struct {
	aggregations.Base
	source       fielddata.Bytes
	order        Order
	requiredSize int
	bucketOrds   *bytehash.Table
	counts       *bigarray.Uint64
}

var _ aggregations.Aggregator = (*Aggregator)(nil)

type factory struct {
	name         string
	source       fielddata.Bytes
	order        Order
	requiredSize int
	subs         aggregations.Factories
}

// NewFactory returns a factory for a terms aggregation over source,
// keeping the requiredSize best buckets by ord.  The aggregator owns a
// fresh hash table per instance, so it declares PerBucket: nested
// under a bucket-creating parent it is instantiated once per parent
// bucket.
func NewFactory(name string, source fielddata.Bytes, ord Order, requiredSize int, subs aggregations.Factories) aggregations.Factory {
	return &factory{
		name:         name,
		source:       source,
		order:        ord,
		requiredSize: requiredSize,
		subs:         subs,
	}
}

func (f *factory) Name() string { return f.name }

func (f *factory) Mode() aggregations.Mode { return aggregations.PerBucket }

func (f *factory) Create(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (aggregations.Aggregator, error) {
	if f.requiredSize < 0 {
		return nil, fmt.Errorf("terms aggregation %q: negative size %d", f.name, f.requiredSize)
	}
	a := &Aggregator{
		source:       f.source,
		order:        f.order,
		requiredSize: f.requiredSize,
		bucketOrds:   bytehash.New(),
		counts:       bigarray.NewUint64(initialCapacity),
	}
	if err := a.Init(f.name, aggregations.PerBucket, f.subs, initialCapacity, ctx, a, parent); err != nil {
		return nil, err
	}
	return a, nil
}

// Collect resolves one bucket ordinal per value of doc and counts the
// document into each.  A value repeated within one document counts
// twice; a document with no values contributes to no bucket.  The
// owning ordinal is always 0 for this aggregator: nested placements go
// through a per-bucket instance.
func (a *Aggregator) Collect(doc int, owningOrd int64) error {
	n, err := a.source.SetDocument(doc)
	if err != nil {
		return fmt.Errorf("terms aggregation %q: doc %d: %w", a.Name(), doc, err)
	}
	for i := 0; i < n; i++ {
		value, err := a.source.NextValue()
		if err != nil {
			return fmt.Errorf("terms aggregation %q: doc %d: %w", a.Name(), doc, err)
		}
		ord := a.bucketOrds.Add(value, a.source.CurrentValueHash())
		if ord < 0 { // already seen
			ord = -1 - ord
		}
		a.counts.Inc(int64(ord), 1)
		if err := a.CollectSubs(doc, int64(ord)); err != nil {
			return err
		}
	}
	return nil
}

// BuildAggregation streams every distinct ordinal once through a
// bounded priority queue of capacity min(distinct, requiredSize), then
// drains it worst-to-best into the final list.  Nested results are
// built only for the buckets that survive the cut.
func (a *Aggregator) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	cmp, err := a.order.comparator(a)
	if err != nil {
		return nil, err
	}
	size := min(a.bucketOrds.Size(), a.requiredSize)
	queue := newBucketQueue(size, cmp)
	for ord := 0; ord < a.bucketOrds.Size(); ord++ {
		queue.offer(&Bucket{
			key:      a.bucketOrds.Key(ord),
			docCount: a.counts.Get(int64(ord)),
			ord:      int64(ord),
		})
	}
	buckets := make([]*Bucket, queue.Len())
	for i := queue.Len() - 1; i >= 0; i-- {
		bucket := queue.popWorst()
		bucket.aggregations, err = a.BuildSubAggregations(bucket.ord)
		if err != nil {
			return nil, err
		}
		buckets[i] = bucket
	}
	return &Terms{name: a.Name(), buckets: buckets}, nil
}

// Terms is the immutable result of a terms aggregation: the surviving
// buckets in order, best first.
type Terms struct {
	name    string
	buckets []*Bucket
}

var _ aggregations.Aggregation = (*Terms)(nil)

func (t *Terms) Name() string { return t.name }

func (t *Terms) Buckets() []*Bucket { return t.buckets }

// Bucket is one term bucket: the original key bytes, the number of
// (document, value-occurrence) pairs that resolved to it, and the
// nested aggregation results.
type Bucket struct {
	key          []byte
	docCount     uint64
	aggregations aggregations.Aggregations
	ord          int64
}

func (b *Bucket) Key() []byte { return b.key }

func (b *Bucket) KeyString() string { return string(b.key) }

func (b *Bucket) DocCount() uint64 { return b.docCount }

func (b *Bucket) Aggregations() aggregations.Aggregations { return b.aggregations }
