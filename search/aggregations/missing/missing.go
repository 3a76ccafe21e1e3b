// Package missing implements the missing bucket aggregation: a single
// bucket holding the documents that have no value for a field.
package missing

import (
	"fmt"

	"github.com/tbrooks007/elasticsearch/search/aggregations"
	"github.com/tbrooks007/elasticsearch/search/fielddata"
)

type Aggregator struct {
	aggregations.SingleBucket
	source fielddata.Bytes
}

var _ aggregations.Aggregator = (*Aggregator)(nil)

type factory struct {
	name   string
	source fielddata.Bytes
	subs   aggregations.Factories
}

// NewFactory returns a factory for a missing aggregation over source.
// A nil source means the field is unmapped, in which case every
// document lands in the bucket.
func NewFactory(name string, source fielddata.Bytes, subs aggregations.Factories) aggregations.Factory {
	return &factory{name: name, source: source, subs: subs}
}

func (f *factory) Name() string { return f.name }

func (f *factory) Mode() aggregations.Mode { return aggregations.MultiBucket }

func (f *factory) Create(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (aggregations.Aggregator, error) {
	a := &Aggregator{source: f.source}
	if err := a.InitSingleBucket(f.name, f.subs, ctx, a, parent); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Aggregator) Collect(doc int, owningOrd int64) error {
	if a.source != nil {
		n, err := a.source.SetDocument(doc)
		if err != nil {
			return fmt.Errorf("missing aggregation %q: doc %d: %w", a.Name(), doc, err)
		}
		if n > 0 {
			return nil
		}
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
