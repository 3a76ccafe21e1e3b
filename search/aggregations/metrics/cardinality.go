package metrics

import (
	"fmt"

	"github.com/axiomhq/hyperloglog"

	"github.com/tbrooks007/elasticsearch/search/aggregations"
	"github.com/tbrooks007/elasticsearch/search/fielddata"
)

// Cardinality approximates the number of distinct byte-string values
// per owning bucket ordinal with one hyperloglog sketch per bucket,
// allocated on first touch.
type Cardinality struct {
	aggregations.Base
	source   fielddata.Bytes
	sketches []*hyperloglog.Sketch
}

var _ aggregations.Aggregator = (*Cardinality)(nil)

func NewCardinalityFactory(name string, source fielddata.Bytes) aggregations.Factory {
	return &metricFactory{name: name, create: func(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (metricAggregator, error) {
		a := &Cardinality{source: source, sketches: make([]*hyperloglog.Sketch, 0, estBuckets)}
		return a, a.Init(name, aggregations.MultiBucket, nil, estBuckets, ctx, a, parent)
	}}
}

func (c *Cardinality) Collect(doc int, owningOrd int64) error {
	n, err := c.source.SetDocument(doc)
	if err != nil {
		return fmt.Errorf("cardinality aggregation %q: doc %d: %w", c.Name(), doc, err)
	}
	if n == 0 {
		return nil
	}
	sketch := c.sketch(owningOrd)
	for i := 0; i < n; i++ {
		v, err := c.source.NextValue()
		if err != nil {
			return fmt.Errorf("cardinality aggregation %q: doc %d: %w", c.Name(), doc, err)
		}
		sketch.Insert(v)
	}
	return nil
}

func (c *Cardinality) sketch(owningOrd int64) *hyperloglog.Sketch {
	for int64(len(c.sketches)) <= owningOrd {
		c.sketches = append(c.sketches, nil)
	}
	if c.sketches[owningOrd] == nil {
		c.sketches[owningOrd] = hyperloglog.New()
	}
	return c.sketches[owningOrd]
}

func (c *Cardinality) Metric(owningOrd int64) float64 {
	return float64(c.Estimate(owningOrd))
}

// Estimate returns the approximate distinct-value count for one owning
// bucket ordinal.
func (c *Cardinality) Estimate(owningOrd int64) uint64 {
	if owningOrd >= int64(len(c.sketches)) || c.sketches[owningOrd] == nil {
		return 0
	}
	return c.sketches[owningOrd].Estimate()
}

func (c *Cardinality) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	return NewValue(c.Name(), c.Metric(owningOrd)), nil
}
