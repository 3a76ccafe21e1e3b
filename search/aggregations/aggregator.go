// Package aggregations implements the bucket-aggregation execution
// engine: a tree of aggregators driven by a sequential stream of
// matching documents.  A bucket aggregator resolves one or more bucket
// ordinals per document, counts the document against those buckets, and
// fans collection out to its sub-aggregators with the resolved ordinal.
// After collection, each aggregator materializes an immutable result
// per owning bucket ordinal.
package aggregations

import "fmt"

// Mode declares how an aggregator behaves as a sub-aggregator of a
// bucket-creating parent.
type Mode int

const (
	// PerBucket aggregators need a fresh instance for every bucket the
	// parent creates; each instance is always collected with ordinal 0.
	PerBucket Mode = iota
	// MultiBucket aggregators are a single instance shared across all of
	// the parent's buckets, disambiguated by the owning bucket ordinal
	// passed on every call.
	MultiBucket
)

func (m Mode) String() string {
	if m == PerBucket {
		return "per-bucket"
	}
	return "multi-bucket"
}

// Aggregator is a node in an aggregation tree.
//
// Collect is invoked once per matching document per applicable owning
// bucket ordinal, in increasing document order; for top-level
// aggregators the owning ordinal is always 0.  PostCollection is
// invoked exactly once after the last Collect anywhere in the tree and
// propagates depth-first, sub-aggregators before the node's own hook.
// BuildAggregation materializes the immutable result for one owning
// ordinal and must not mutate collection state.
type Aggregator interface {
	Name() string
	Parent() Aggregator
	Depth() int
	Mode() Mode
	// ShouldCollect reports whether this aggregator needs to see
	// documents at all.  A pure predicate with no side effects.
	ShouldCollect() bool
	Collect(doc int, owningOrd int64) error
	PostCollection()
	BuildAggregation(owningOrd int64) (Aggregation, error)
}

// Base carries the state and wiring common to every aggregator: its
// name, tree position, sizing hint, and the sub-aggregator array built
// eagerly, exactly once, at construction.  The sub-aggregator array is
// fixed for the node's lifetime; only per-ordinal state inside the
// children mutates during collection.
type Base struct {
	name      string
	mode      Mode
	parent    Aggregator
	depth     int
	estBucket int64
	subs      []Aggregator
}

// Init wires the Base embedded in the aggregator self, instantiating
// all sub-aggregators from factories.  The tree-position fields are
// set before the children are built so that sub-aggregators observe
// their parent's final name and depth.  estBuckets is the number of
// buckets self expects to create, passed down as a sizing hint and
// used to decide per-bucket multiplexing for PerBucket sub-factories.
func (b *Base) Init(name string, mode Mode, factories Factories, estBuckets int64, ctx *Context, self, parent Aggregator) error {
	b.name = name
	b.mode = mode
	b.parent = parent
	b.estBucket = estBuckets
	if parent != nil {
		b.depth = parent.Depth() + 1
	}
	subs, err := factories.createSubAggregators(ctx, self, estBuckets)
	if err != nil {
		return fmt.Errorf("aggregation %q: %w", name, err)
	}
	b.subs = subs
	return nil
}

func (b *Base) Name() string { return b.name }

// Parent returns the aggregator this node is nested under, or nil for
// a top-level aggregator.  The reference is informational only and
// carries no ownership.
func (b *Base) Parent() Aggregator { return b.parent }

func (b *Base) Depth() int { return b.depth }

func (b *Base) Mode() Mode { return b.mode }

// EstimatedBucketCount returns the sizing hint this node passed to its
// sub-aggregators: how many buckets it expects to create.  A hint, not
// a bound.
func (b *Base) EstimatedBucketCount() int64 { return b.estBucket }

func (b *Base) SubAggregators() []Aggregator { return b.subs }

// ShouldCollect defaults to true; aggregators that can produce their
// result without seeing documents shadow this.
func (b *Base) ShouldCollect() bool { return true }

// PostCollection propagates the end-of-collection signal depth-first.
// Aggregators with their own finalization hook shadow this method and
// call it before running the hook.
func (b *Base) PostCollection() {
	for _, sub := range b.subs {
		sub.PostCollection()
	}
}

// CollectSubs fans a document out to every sub-aggregator with the
// bucket ordinal this node resolved for it.
func (b *Base) CollectSubs(doc int, bucketOrd int64) error {
	for _, sub := range b.subs {
		if err := sub.Collect(doc, bucketOrd); err != nil {
			return err
		}
	}
	return nil
}

// BuildSubAggregations materializes every sub-aggregator's result for
// one bucket ordinal.
func (b *Base) BuildSubAggregations(bucketOrd int64) (Aggregations, error) {
	if len(b.subs) == 0 {
		return nil, nil
	}
	aggs := make(Aggregations, 0, len(b.subs))
	for _, sub := range b.subs {
		agg, err := sub.BuildAggregation(bucketOrd)
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}
