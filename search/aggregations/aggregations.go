package aggregations

// Aggregation is an immutable result node produced by
// Aggregator.BuildAggregation.  Concrete types add their own payload
// (bucket lists, metric values).
type Aggregation interface {
	Name() string
}

// Aggregations is an ordered set of sibling results, one per
// sub-aggregator, in construction order.
type Aggregations []Aggregation

// Get returns the result with the given name, or nil if there is none.
func (a Aggregations) Get(name string) Aggregation {
	for _, agg := range a {
		if agg.Name() == name {
			return agg
		}
	}
	return nil
}
