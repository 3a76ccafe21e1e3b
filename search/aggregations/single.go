package aggregations

import "github.com/tbrooks007/elasticsearch/pkg/bigarray"

// SingleBucket is the shared core of aggregators that resolve exactly
// one implicit bucket per document (missing, global, filter).  The
// bucket's identity is the owning ordinal passed down by the parent,
// so a MultiBucket single-bucket aggregator keeps one counter per
// parent bucket in a growable array that starts at capacity 1.
type SingleBucket struct {
	Base
	counts *bigarray.Uint64
}

// InitSingleBucket wires the embedded Base and the counter array.
func (s *SingleBucket) InitSingleBucket(name string, factories Factories, ctx *Context, self, parent Aggregator) error {
	if err := s.Base.Init(name, MultiBucket, factories, 1, ctx, self, parent); err != nil {
		return err
	}
	s.counts = bigarray.NewUint64(1)
	return nil
}

// CollectBucket counts doc into the bucket identified by owningOrd and
// fans collection out to the sub-aggregators with that same ordinal.
func (s *SingleBucket) CollectBucket(doc int, owningOrd int64) error {
	s.counts.Inc(owningOrd, 1)
	return s.CollectSubs(doc, owningOrd)
}

// DocCount returns the number of documents collected into the bucket
// identified by owningOrd.
func (s *SingleBucket) DocCount(owningOrd int64) uint64 {
	if owningOrd >= s.counts.Size() {
		return 0
	}
	return s.counts.Get(owningOrd)
}

// SingleBucketAggregation is the immutable result of a single-bucket
// aggregator: a document count plus nested results.
type SingleBucketAggregation struct {
	name         string
	docCount     uint64
	aggregations Aggregations
}

func NewSingleBucketAggregation(name string, docCount uint64, aggs Aggregations) *SingleBucketAggregation {
	return &SingleBucketAggregation{name: name, docCount: docCount, aggregations: aggs}
}

func (s *SingleBucketAggregation) Name() string { return s.name }

func (s *SingleBucketAggregation) DocCount() uint64 { return s.docCount }

func (s *SingleBucketAggregation) Aggregations() Aggregations { return s.aggregations }
