// Package global implements the global bucket aggregation: a single
// bucket that unconditionally holds every collected document.  It is
// only legal at the top level of an aggregation request.
package global

import (
	"fmt"

	"github.com/tbrooks007/elasticsearch/search/aggregations"
)

type Aggregator struct {
	aggregations.SingleBucket
}

var _ aggregations.Aggregator = (*Aggregator)(nil)

type factory struct {
	name string
	subs aggregations.Factories
}

func NewFactory(name string, subs aggregations.Factories) aggregations.Factory {
	return &factory{name: name, subs: subs}
}

func (f *factory) Name() string { return f.name }

func (f *factory) Mode() aggregations.Mode { return aggregations.MultiBucket }

func (f *factory) Create(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (aggregations.Aggregator, error) {
	if parent != nil {
		return nil, fmt.Errorf("aggregation %q cannot have a global sub-aggregation %q: global aggregations are top level only", parent.Name(), f.name)
	}
	a := &Aggregator{}
	if err := a.InitSingleBucket(f.name, f.subs, ctx, a, nil); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Aggregator) Collect(doc int, owningOrd int64) error {
	return a.CollectBucket(doc, owningOrd)
}

func (a *Aggregator) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	subs, err := a.BuildSubAggregations(owningOrd)
	if err != nil {
		return nil, err
	}
	return aggregations.NewSingleBucketAggregation(a.Name(), a.DocCount(owningOrd), subs), nil
}
