package terms

import (
	"bytes"
	"cmp"
	"container/heap"
	"fmt"

	"github.com/tbrooks007/elasticsearch/order"
)

// Order selects how term buckets are ranked.  All orderings break ties
// by key ascending so results are deterministic.
type Order struct {
	key    orderKey
	metric string
	which  order.Which
}

type orderKey int

const (
	byCount orderKey = iota
	byKey
	byMetric
)

var (
	CountDesc = Order{key: byCount, which: order.Desc}
	CountAsc  = Order{key: byCount, which: order.Asc}
	KeyAsc    = Order{key: byKey, which: order.Asc}
	KeyDesc   = Order{key: byKey, which: order.Desc}
)

// ByMetric ranks buckets by the value of the named sub-aggregation
// metric.  The name is resolved against the aggregator's
// sub-aggregators when the result is built; resolution failure is a
// configuration error.
func ByMetric(name string, which order.Which) Order {
	return Order{key: byMetric, metric: name, which: which}
}

func (o Order) String() string {
	switch o.key {
	case byKey:
		return "_key:" + o.which.String()
	case byMetric:
		return o.metric + ":" + o.which.String()
	default:
		return "_count:" + o.which.String()
	}
}

// metricSource is implemented by sub-aggregators whose per-ordinal
// result reduces to a single number, making them usable as a sort key.
type metricSource interface {
	Metric(owningOrd int64) float64
}

// comparator resolves o against a's sub-aggregators and returns a
// three-way comparison where negative means x ranks ahead of y.
func (o Order) comparator(a *Aggregator) (func(x, y *Bucket) int, error) {
	switch o.key {
	case byKey:
		return func(x, y *Bucket) int {
			return o.which.Apply(bytes.Compare(x.key, y.key))
		}, nil
	case byMetric:
		var source metricSource
		for _, sub := range a.SubAggregators() {
			if sub.Name() != o.metric {
				continue
			}
			var ok bool
			if source, ok = sub.(metricSource); !ok {
				return nil, fmt.Errorf("terms aggregation %q: ordering aggregation %q is not a numeric metric", a.Name(), o.metric)
			}
			break
		}
		if source == nil {
			return nil, fmt.Errorf("terms aggregation %q: unknown ordering aggregation %q", a.Name(), o.metric)
		}
		return func(x, y *Bucket) int {
			if c := o.which.Apply(cmp.Compare(source.Metric(x.ord), source.Metric(y.ord))); c != 0 {
				return c
			}
			return bytes.Compare(x.key, y.key)
		}, nil
	default:
		return func(x, y *Bucket) int {
			if c := o.which.Apply(cmp.Compare(x.docCount, y.docCount)); c != 0 {
				return c
			}
			return bytes.Compare(x.key, y.key)
		}, nil
	}
}

// bucketQueue is a bounded priority queue that retains the limit
// best-ranked buckets, with the worst retained bucket at the heap
// root so it can be evicted in O(log n) when a better one arrives.
type bucketQueue struct {
	buckets []*Bucket
	cmp     func(x, y *Bucket) int
	limit   int
}

var _ heap.Interface = (*bucketQueue)(nil)

func newBucketQueue(limit int, cmp func(x, y *Bucket) int) *bucketQueue {
	return &bucketQueue{cmp: cmp, limit: limit}
}

// offer inserts bucket if the queue has room or if bucket outranks the
// current worst, which is then discarded.
func (q *bucketQueue) offer(bucket *Bucket) {
	if q.limit == 0 {
		return
	}
	if len(q.buckets) < q.limit {
		heap.Push(q, bucket)
		return
	}
	if q.cmp(bucket, q.buckets[0]) < 0 {
		q.buckets[0] = bucket
		heap.Fix(q, 0)
	}
}

// popWorst removes and returns the worst-ranked retained bucket, so a
// full drain yields worst-to-best order.
func (q *bucketQueue) popWorst() *Bucket {
	return heap.Pop(q).(*Bucket)
}

func (q *bucketQueue) Len() int { return len(q.buckets) }

func (q *bucketQueue) Less(i, j int) bool {
	return q.cmp(q.buckets[i], q.buckets[j]) > 0
}

func (q *bucketQueue) Swap(i, j int) {
	q.buckets[i], q.buckets[j] = q.buckets[j], q.buckets[i]
}

func (q *bucketQueue) Push(x any) {
	q.buckets = append(q.buckets, x.(*Bucket))
}

func (q *bucketQueue) Pop() any {
	n := len(q.buckets) - 1
	bucket := q.buckets[n]
	q.buckets = q.buckets[:n]
	return bucket
}
