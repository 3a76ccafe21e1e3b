// Package metrics implements the numeric leaf aggregations: sum, min,
// max, avg, value_count, and cardinality.  They are all MultiBucket
// leaves: one shared instance per parent aggregator with per-ordinal
// accumulator state in growable arrays, so a parent creating thousands
// of buckets pays for one instance, not thousands.  Each exposes its
// per-ordinal value as a plain number, which also makes it usable as a
// terms ordering key.
package metrics

import (
	"fmt"
	"math"

	"github.com/tbrooks007/elasticsearch/pkg/bigarray"
	"github.com/tbrooks007/elasticsearch/search/aggregations"
	"github.com/tbrooks007/elasticsearch/search/fielddata"
)

// Value is the immutable result of a metric aggregation for one owning
// bucket.
type Value struct {
	name  string
	value float64
}

var _ aggregations.Aggregation = (*Value)(nil)

func NewValue(name string, value float64) *Value {
	return &Value{name: name, value: value}
}

func (v *Value) Name() string { return v.name }

func (v *Value) Value() float64 { return v.value }

// Sum accumulates the sum of a document's numeric values per owning
// bucket ordinal.
type Sum struct {
	aggregations.Base
	source fielddata.Numerics
	sums   *bigarray.Float64
}

var _ aggregations.Aggregator = (*Sum)(nil)

func NewSumFactory(name string, source fielddata.Numerics) aggregations.Factory {
	return &metricFactory{name: name, create: func(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (metricAggregator, error) {
		a := &Sum{source: source, sums: bigarray.NewFloat64(estBuckets, 0)}
		return a, a.Init(name, aggregations.MultiBucket, nil, estBuckets, ctx, a, parent)
	}}
}

func (s *Sum) Collect(doc int, owningOrd int64) error {
	return eachValue(s.source, s.Name(), doc, func(v float64) {
		s.sums.Add(owningOrd, v)
	})
}

func (s *Sum) Metric(owningOrd int64) float64 {
	if owningOrd >= s.sums.Size() {
		return 0
	}
	return s.sums.Get(owningOrd)
}

func (s *Sum) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	return NewValue(s.Name(), s.Metric(owningOrd)), nil
}

// Min tracks the minimum value per owning bucket ordinal.  A bucket
// that saw no values reports +Inf.
type Min struct {
	aggregations.Base
	source fielddata.Numerics
	mins   *bigarray.Float64
}

var _ aggregations.Aggregator = (*Min)(nil)

func NewMinFactory(name string, source fielddata.Numerics) aggregations.Factory {
	return &metricFactory{name: name, create: func(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (metricAggregator, error) {
		a := &Min{source: source, mins: bigarray.NewFloat64(estBuckets, math.Inf(1))}
		return a, a.Init(name, aggregations.MultiBucket, nil, estBuckets, ctx, a, parent)
	}}
}

func (m *Min) Collect(doc int, owningOrd int64) error {
	return eachValue(m.source, m.Name(), doc, func(v float64) {
		m.mins.Grow(owningOrd + 1)
		if v < m.mins.Get(owningOrd) {
			m.mins.Set(owningOrd, v)
		}
	})
}

func (m *Min) Metric(owningOrd int64) float64 {
	if owningOrd >= m.mins.Size() {
		return math.Inf(1)
	}
	return m.mins.Get(owningOrd)
}

func (m *Min) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	return NewValue(m.Name(), m.Metric(owningOrd)), nil
}

// Max tracks the maximum value per owning bucket ordinal.  A bucket
// that saw no values reports -Inf.
type Max struct {
	aggregations.Base
	source fielddata.Numerics
	maxes  *bigarray.Float64
}

var _ aggregations.Aggregator = (*Max)(nil)

func NewMaxFactory(name string, source fielddata.Numerics) aggregations.Factory {
	return &metricFactory{name: name, create: func(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (metricAggregator, error) {
		a := &Max{source: source, maxes: bigarray.NewFloat64(estBuckets, math.Inf(-1))}
		return a, a.Init(name, aggregations.MultiBucket, nil, estBuckets, ctx, a, parent)
	}}
}

func (m *Max) Collect(doc int, owningOrd int64) error {
	return eachValue(m.source, m.Name(), doc, func(v float64) {
		m.maxes.Grow(owningOrd + 1)
		if v > m.maxes.Get(owningOrd) {
			m.maxes.Set(owningOrd, v)
		}
	})
}

func (m *Max) Metric(owningOrd int64) float64 {
	if owningOrd >= m.maxes.Size() {
		return math.Inf(-1)
	}
	return m.maxes.Get(owningOrd)
}

func (m *Max) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	return NewValue(m.Name(), m.Metric(owningOrd)), nil
}

// Avg accumulates sums and value counts per owning bucket ordinal and
// reports their ratio.  A bucket that saw no values reports NaN.
type Avg struct {
	aggregations.Base
	source fielddata.Numerics
	sums   *bigarray.Float64
	counts *bigarray.Uint64
}

var _ aggregations.Aggregator = (*Avg)(nil)

func NewAvgFactory(name string, source fielddata.Numerics) aggregations.Factory {
	return &metricFactory{name: name, create: func(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (metricAggregator, error) {
		a := &Avg{
			source: source,
			sums:   bigarray.NewFloat64(estBuckets, 0),
			counts: bigarray.NewUint64(estBuckets),
		}
		return a, a.Init(name, aggregations.MultiBucket, nil, estBuckets, ctx, a, parent)
	}}
}

func (a *Avg) Collect(doc int, owningOrd int64) error {
	return eachValue(a.source, a.Name(), doc, func(v float64) {
		a.sums.Add(owningOrd, v)
		a.counts.Inc(owningOrd, 1)
	})
}

func (a *Avg) Metric(owningOrd int64) float64 {
	if owningOrd >= a.counts.Size() || a.counts.Get(owningOrd) == 0 {
		return math.NaN()
	}
	return a.sums.Get(owningOrd) / float64(a.counts.Get(owningOrd))
}

func (a *Avg) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	return NewValue(a.Name(), a.Metric(owningOrd)), nil
}

// ValueCount counts the number of values (not documents) per owning
// bucket ordinal.
type ValueCount struct {
	aggregations.Base
	source fielddata.Numerics
	counts *bigarray.Uint64
}

var _ aggregations.Aggregator = (*ValueCount)(nil)

func NewValueCountFactory(name string, source fielddata.Numerics) aggregations.Factory {
	return &metricFactory{name: name, create: func(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (metricAggregator, error) {
		a := &ValueCount{source: source, counts: bigarray.NewUint64(estBuckets)}
		return a, a.Init(name, aggregations.MultiBucket, nil, estBuckets, ctx, a, parent)
	}}
}

func (v *ValueCount) Collect(doc int, owningOrd int64) error {
	n, err := v.source.SetDocument(doc)
	if err != nil {
		return fmt.Errorf("value_count aggregation %q: doc %d: %w", v.Name(), doc, err)
	}
	if n > 0 {
		// NextValue need not be drained; only the count matters here.
		v.counts.Inc(owningOrd, uint64(n))
	}
	return nil
}

func (v *ValueCount) Metric(owningOrd int64) float64 {
	if owningOrd >= v.counts.Size() {
		return 0
	}
	return float64(v.counts.Get(owningOrd))
}

func (v *ValueCount) BuildAggregation(owningOrd int64) (aggregations.Aggregation, error) {
	return NewValue(v.Name(), v.Metric(owningOrd)), nil
}

// metricFactory adapts a construction closure to the Factory
// interface; every metric aggregation is a MultiBucket leaf.
type metricFactory struct {
	name   string
	create func(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (metricAggregator, error)
}

type metricAggregator interface {
	aggregations.Aggregator
	Metric(owningOrd int64) float64
}

func (f *metricFactory) Name() string { return f.name }

func (f *metricFactory) Mode() aggregations.Mode { return aggregations.MultiBucket }

func (f *metricFactory) Create(ctx *aggregations.Context, parent aggregations.Aggregator, estBuckets int64) (aggregations.Aggregator, error) {
	return f.create(ctx, parent, estBuckets)
}

func eachValue(source fielddata.Numerics, name string, doc int, fn func(float64)) error {
	n, err := source.SetDocument(doc)
	if err != nil {
		return fmt.Errorf("metric aggregation %q: doc %d: %w", name, doc, err)
	}
	for i := 0; i < n; i++ {
		v, err := source.NextValue()
		if err != nil {
			return fmt.Errorf("metric aggregation %q: doc %d: %w", name, doc, err)
		}
		fn(v)
	}
	return nil
}
