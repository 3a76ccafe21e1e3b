package filter_test

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbrooks007/elasticsearch/search/aggregations"
	"github.com/tbrooks007/elasticsearch/search/aggregations/filter"
	"github.com/tbrooks007/elasticsearch/search/aggregations/terms"
	"github.com/tbrooks007/elasticsearch/search/fielddata"
)

func TestCountsOnlyFilteredDocuments(t *testing.T) {
	docs := roaring.BitmapOf(0, 2, 3)
	results, err := aggregations.Run(aggregations.NewContext(nil),
		aggregations.Factories{filter.NewFactory("recent", docs, nil)}, []int{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), results.Get("recent").(*aggregations.SingleBucketAggregation).DocCount())
}

func TestNilBitmapMatchesNothing(t *testing.T) {
	results, err := aggregations.Run(aggregations.NewContext(nil),
		aggregations.Factories{filter.NewFactory("none", nil, nil)}, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), results.Get("none").(*aggregations.SingleBucketAggregation).DocCount())
}

func TestFilterRestrictsNestedTerms(t *testing.T) {
	source := fielddata.NewStringsArray([][]string{
		{"a"}, {"a"}, {"b"},
	})
	docs := roaring.BitmapOf(1, 2)
	subs := aggregations.Factories{terms.NewFactory("tags", source, terms.CountDesc, 10, nil)}
	results, err := aggregations.Run(aggregations.NewContext(nil),
		aggregations.Factories{filter.NewFactory("subset", docs, subs)}, []int{0, 1, 2})
	require.NoError(t, err)

	subset := results.Get("subset").(*aggregations.SingleBucketAggregation)
	require.Equal(t, uint64(2), subset.DocCount())
	buckets := subset.Aggregations().Get("tags").(*terms.Terms).Buckets()
	require.Len(t, buckets, 2)
	assert.Equal(t, "a", buckets[0].KeyString())
	assert.Equal(t, uint64(1), buckets[0].DocCount())
	assert.Equal(t, "b", buckets[1].KeyString())
	assert.Equal(t, uint64(1), buckets[1].DocCount())
}
