package metrics_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbrooks007/elasticsearch/search/aggregations"
	"github.com/tbrooks007/elasticsearch/search/aggregations/metrics"
	"github.com/tbrooks007/elasticsearch/search/aggregations/terms"
	"github.com/tbrooks007/elasticsearch/search/fielddata"
)

func build(t *testing.T, f aggregations.Factory, docsByOrd map[int64][]int) func(int64) float64 {
	t.Helper()
	agg, err := f.Create(aggregations.NewContext(nil), nil, 1)
	require.NoError(t, err)
	for ord, docs := range docsByOrd {
		for _, doc := range docs {
			require.NoError(t, agg.Collect(doc, ord))
		}
	}
	agg.PostCollection()
	return func(ord int64) float64 {
		result, err := agg.BuildAggregation(ord)
		require.NoError(t, err)
		return result.(*metrics.Value).Value()
	}
}

func TestNumericMetricsPerOwningOrdinal(t *testing.T) {
	// Values per document; documents are routed to two owning buckets.
	source := func() *fielddata.NumericsArray {
		return fielddata.NewNumericsArray([][]float64{
			{1, 2}, {3}, {10}, {},
		})
	}
	route := map[int64][]int{0: {0, 1}, 5: {2, 3}}

	sum := build(t, metrics.NewSumFactory("s", source()), route)
	assert.Equal(t, 6.0, sum(0))
	assert.Equal(t, 10.0, sum(5))
	assert.Equal(t, 0.0, sum(3)) // untouched ordinal

	minV := build(t, metrics.NewMinFactory("m", source()), route)
	assert.Equal(t, 1.0, minV(0))
	assert.Equal(t, 10.0, minV(5))
	assert.Equal(t, math.Inf(1), minV(3))

	maxV := build(t, metrics.NewMaxFactory("m", source()), route)
	assert.Equal(t, 3.0, maxV(0))
	assert.Equal(t, 10.0, maxV(5))
	assert.Equal(t, math.Inf(-1), maxV(3))

	avg := build(t, metrics.NewAvgFactory("a", source()), route)
	assert.Equal(t, 2.0, avg(0))
	assert.Equal(t, 10.0, avg(5))
	assert.True(t, math.IsNaN(avg(3)))

	count := build(t, metrics.NewValueCountFactory("c", source()), route)
	assert.Equal(t, 3.0, count(0))
	assert.Equal(t, 1.0, count(5))
	assert.Equal(t, 0.0, count(3))
}

func TestCardinalityPerOwningOrdinal(t *testing.T) {
	source := fielddata.NewStringsArray([][]string{
		{"a", "b"}, {"a"}, {"c"}, {},
	})
	est := build(t, metrics.NewCardinalityFactory("card", source),
		map[int64][]int{0: {0, 1}, 2: {2, 3}})
	assert.Equal(t, 2.0, est(0))
	assert.Equal(t, 1.0, est(2))
	assert.Equal(t, 0.0, est(1))
}

func TestCardinalityLargeApproximation(t *testing.T) {
	values := make([][]string, 20000)
	for doc := range values {
		values[doc] = []string{fmt.Sprintf("user-%d", doc%10000)}
	}
	docs := make([]int, len(values))
	for i := range docs {
		docs[i] = i
	}
	f := metrics.NewCardinalityFactory("card", fielddata.NewStringsArray(values))
	agg, err := f.Create(aggregations.NewContext(nil), nil, 1)
	require.NoError(t, err)
	for _, doc := range docs {
		require.NoError(t, agg.Collect(doc, 0))
	}
	result, err := agg.BuildAggregation(0)
	require.NoError(t, err)
	assert.InEpsilon(t, 10000.0, result.(*metrics.Value).Value(), 0.05)
}

func TestMetricNestedUnderTerms(t *testing.T) {
	tags := fielddata.NewStringsArray([][]string{
		{"a"}, {"b"}, {"a"},
	})
	price := fielddata.NewNumericsArray([][]float64{
		{2}, {7}, {4},
	})
	subs := aggregations.Factories{metrics.NewSumFactory("total", price)}
	results, err := aggregations.Run(aggregations.NewContext(nil),
		aggregations.Factories{terms.NewFactory("tags", tags, terms.CountDesc, 10, subs)}, []int{0, 1, 2})
	require.NoError(t, err)

	buckets := results.Get("tags").(*terms.Terms).Buckets()
	require.Len(t, buckets, 2)
	assert.Equal(t, "a", buckets[0].KeyString())
	assert.Equal(t, 6.0, buckets[0].Aggregations().Get("total").(*metrics.Value).Value())
	assert.Equal(t, 7.0, buckets[1].Aggregations().Get("total").(*metrics.Value).Value())
}
