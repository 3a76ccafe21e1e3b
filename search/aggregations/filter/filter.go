// Package filter implements the filter bucket aggregation: a single
// bucket holding the documents that match a precomputed filter,
// represented as a bitmap of doc ids the way a search engine's filter
// phase hands it over.
package filter

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/tbrooks007/elasticsearch/search/aggregations"
)

type Aggregator struct {
	aggregations.SingleBucket
	docs *roaring.Bitmap
}

var _ aggregations.Aggregator = (*Aggregator)(nil)

type factory struct {
	name string
	docs *roaring.Bitmap
	subs aggregations.Factories
}

// NewFactory returns a factory for a filter aggregation over the given
// doc-id bitmap.  A nil bitmap matches nothing.
func NewFactory(name string, docs *roaring.Bitmap, subs aggregations.Factories) aggregations.Factory {
	return &factory{name: name, docs: docs, subs: subs}
}

func (f *factory) Name() string { return f.name }

func (f *factory) Mode() aggregations.Mode { return aggregations.MultiBucket }

func (f *factory) Create(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (aggregations.Aggregator, error) {
	a := &Aggregator{docs: f.docs}
	if err := a.InitSingleBucket(f.name, f.subs, ctx, a, parent); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Aggregator) Collect(doc int, owningOrd int64) error {
	if a.docs == nil || !a.docs.Contains(uint32(doc)) {
		return nil
	}
	return a.CollectBucket(doc, owningOrd)
}

func (a *Aggregator) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	subs, err := a.BuildSubAggregations(owningOrd)
	if err != nil {
		return nil, err
	}
	return aggregations.NewSingleBucketAggregation(a.Name(), a.DocCount(owningOrd), subs), nil
}
