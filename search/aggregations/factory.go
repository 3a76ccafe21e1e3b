package aggregations

import "fmt"

// Factory builds one aggregator.  Mode is the declaration the built
// aggregator makes about itself, exposed here so a bucket-creating
// parent can decide between shared and per-bucket instantiation before
// anything is constructed.
type Factory interface {
	Name() string
	Mode() Mode
	// Create builds the aggregator.  estBuckets is the number of
	// buckets the parent expects to create, a sizing hint only.
	// Configuration errors (e.g. illegal nesting) are reported here
	// and abort tree construction.
	Create(ctx *Context, parent Aggregator, estBuckets int64) (Aggregator, error)
}

// Factories is the ordered sequence of sub-aggregator factories handed
// to an aggregator at construction.
type Factories []Factory

// CreateTopLevels builds the top-level aggregators of a request: no
// parent, owning ordinal fixed at 0, so every factory is instantiated
// directly regardless of its declared mode.
func (fs Factories) CreateTopLevels(ctx *Context) ([]Aggregator, error) {
	aggs := make([]Aggregator, 0, len(fs))
	for _, f := range fs {
		agg, err := f.Create(ctx, nil, 1)
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

// createSubAggregators builds the fixed sub-aggregator array for
// parent.  This is the one place the bucket-aggregation mode is
// consumed: MultiBucket children are created directly and handle the
// owning ordinal themselves, while PerBucket children are wrapped in a
// multiplexer that owns an arena of independent instances, one per
// bucket the parent creates.
func (fs Factories) createSubAggregators(ctx *Context, parent Aggregator, estBuckets int64) ([]Aggregator, error) {
	if len(fs) == 0 {
		return nil, nil
	}
	subs := make([]Aggregator, 0, len(fs))
	for _, f := range fs {
		var sub Aggregator
		var err error
		switch f.Mode() {
		case MultiBucket:
			sub, err = f.Create(ctx, parent, estBuckets)
		case PerBucket:
			sub = newPerBucketMultiplexer(ctx, f, parent, estBuckets)
		default:
			err = fmt.Errorf("unknown bucket aggregation mode %v", f.Mode())
		}
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// perBucketMultiplexer adapts a PerBucket aggregator to the shared
// sub-aggregator slot of a bucket-creating parent.  It keeps one
// independently-owned instance per owning bucket ordinal, created on
// first touch, and always passes ordinal 0 down so each instance sees
// itself as single-bucket.
type perBucketMultiplexer struct {
	ctx     *Context
	factory Factory
	parent  Aggregator
	depth   int
	arena   []Aggregator // indexed by owning bucket ordinal, nil until touched
}

var _ Aggregator = (*perBucketMultiplexer)(nil)

func newPerBucketMultiplexer(ctx *Context, factory Factory, parent Aggregator, estBuckets int64) *perBucketMultiplexer {
	depth := 0
	if parent != nil {
		depth = parent.Depth() + 1
	}
	return &perBucketMultiplexer{
		ctx:     ctx,
		factory: factory,
		parent:  parent,
		depth:   depth,
		arena:   make([]Aggregator, 0, estBuckets),
	}
}

func (m *perBucketMultiplexer) Name() string       { return m.factory.Name() }
func (m *perBucketMultiplexer) Parent() Aggregator { return m.parent }
func (m *perBucketMultiplexer) Depth() int         { return m.depth }
func (m *perBucketMultiplexer) Mode() Mode         { return PerBucket }

func (m *perBucketMultiplexer) ShouldCollect() bool { return true }

func (m *perBucketMultiplexer) Collect(doc int, owningOrd int64) error {
	agg, err := m.instance(owningOrd)
	if err != nil {
		return err
	}
	return agg.Collect(doc, 0)
}

func (m *perBucketMultiplexer) PostCollection() {
	for _, agg := range m.arena {
		if agg != nil {
			agg.PostCollection()
		}
	}
}

func (m *perBucketMultiplexer) BuildAggregation(owningOrd int64) (Aggregation, error) {
	// A bucket can exist with no documents routed to this child, so an
	// instance may have to be created here just to produce its empty
	// result.
	agg, err := m.instance(owningOrd)
	if err != nil {
		return nil, err
	}
	return agg.BuildAggregation(0)
}

func (m *perBucketMultiplexer) instance(owningOrd int64) (Aggregator, error) {
	for int64(len(m.arena)) <= owningOrd {
		m.arena = append(m.arena, nil)
	}
	if m.arena[owningOrd] == nil {
		agg, err := m.factory.Create(m.ctx, m.parent, 1)
		if err != nil {
			return nil, err
		}
		m.arena[owningOrd] = agg
	}
	return m.arena[owningOrd], nil
}
