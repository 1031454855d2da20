package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/model"
)

// GroupBy is the time-series bucket granularity.
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByMonth GroupBy = "month"
)

// ParseGroupBy accepts "day" and "month". An empty value means day.
func ParseGroupBy(value string) (GroupBy, error) {
	switch GroupBy(value) {
	case "", GroupByDay:
		return GroupByDay, nil
	case GroupByMonth:
		return GroupByMonth, nil
	default:
		return "", fmt.Errorf("%w: group_by must be \"day\" or \"month\"", apperrors.ErrValidation)
	}
}

// BucketKey returns the sortable label of the bucket containing ts, computed in UTC.
func (g GroupBy) BucketKey(ts time.Time) string {
	ts = ts.UTC()
	if g == GroupByMonth {
		return ts.Format("2006-01")
	}
	return ts.Format("2006-01-02")
}

// Bucket is the mean of the points sharing a period label.
type Bucket struct {
	Period  string  `json:"period"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type accumulator struct {
	sum   decimal.Decimal
	count int64
}

// AggregateBuckets groups points by period and averages each group.
// Buckets come back in ascending period order. Sums are exact decimals,
// so the result does not depend on the order of points. NaN and infinite values are ignored.
func AggregateBuckets(points []model.IndicatorPoint, groupBy GroupBy) []Bucket {
	acc := make(map[string]*accumulator)
	for _, p := range points {
		if !isFinite(p.Value) {
			continue
		}
		key := groupBy.BucketKey(p.Timestamp)
		a, ok := acc[key]
		if !ok {
			a = &accumulator{}
			acc[key] = a
		}
		a.sum = a.sum.Add(decimal.NewFromFloat(p.Value))
		a.count++
	}

	keys := make([]string, 0, len(acc))
	for k := range acc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		a := acc[k]
		mean, _ := a.sum.DivRound(decimal.NewFromInt(a.count), 12).Float64()
		buckets = append(buckets, Bucket{Period: k, Average: mean, Count: a.count})
	}
	return buckets
}
