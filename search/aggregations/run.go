package aggregations

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Run drives one collection pass: it builds the top-level aggregators
// from factories, streams the matched doc ids (which must be in
// increasing order) through every aggregator that wants to collect,
// signals end of collection, and materializes the result set.  An
// extraction error from any aggregator aborts the whole pass.
func Run(ctx *Context, factories Factories, docs []int) (Aggregations, error) {
	aggs, err := factories.CreateTopLevels(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	collecting := make([]Aggregator, 0, len(aggs))
	for _, agg := range aggs {
		if agg.ShouldCollect() {
			collecting = append(collecting, agg)
		}
	}
	for _, doc := range docs {
		for _, agg := range collecting {
			if err := agg.Collect(doc, 0); err != nil {
				return nil, fmt.Errorf("collecting doc %d: %w", doc, err)
			}
		}
	}
	for _, agg := range aggs {
		agg.PostCollection()
	}
	results := make(Aggregations, 0, len(aggs))
	for _, agg := range aggs {
		result, err := agg.BuildAggregation(0)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	ctx.Logger().Debug("aggregation pass complete",
		zap.Int("docs", len(docs)),
		zap.Int("aggregations", len(aggs)),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}
