package service

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/model"
)

func point(ts string, value float64) model.IndicatorPoint {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return model.IndicatorPoint{Timestamp: t, Value: value}
}

func TestParseGroupBy(t *testing.T) {
	g, err := ParseGroupBy("")
	require.NoError(t, err)
	assert.Equal(t, GroupByDay, g)

	g, err = ParseGroupBy("month")
	require.NoError(t, err)
	assert.Equal(t, GroupByMonth, g)

	_, err = ParseGroupBy("week")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBucketKey_UsesUTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	ts := time.Date(2025, 12, 1, 0, 30, 0, 0, paris)

	assert.Equal(t, "2025-11-30", GroupByDay.BucketKey(ts))
	assert.Equal(t, "2025-11", GroupByMonth.BucketKey(ts))
}

func TestAggregateBuckets(t *testing.T) {
	points := []model.IndicatorPoint{
		point("2025-11-21T10:00:00Z", 20),
		point("2025-11-20T23:00:00Z", 5),
		point("2025-11-21T11:00:00Z", 21),
		point("2025-11-21T12:00:00Z", 22),
		point("2025-10-02T00:00:00Z", 1),
	}

	days := AggregateBuckets(points, GroupByDay)
	assert.Equal(t, []Bucket{
		{Period: "2025-10-02", Average: 1, Count: 1},
		{Period: "2025-11-20", Average: 5, Count: 1},
		{Period: "2025-11-21", Average: 21, Count: 3},
	}, days)

	months := AggregateBuckets(points, GroupByMonth)
	require.Len(t, months, 2)
	assert.Equal(t, "2025-10", months[0].Period)
	assert.Equal(t, "2025-11", months[1].Period)
	assert.Equal(t, int64(4), months[1].Count)
	assert.InDelta(t, 17.0, months[1].Average, 1e-9)

	assert.Empty(t, AggregateBuckets(nil, GroupByDay))
}

func TestAggregateBuckets_IgnoresNonFinite(t *testing.T) {
	points := []model.IndicatorPoint{
		point("2025-11-20T08:00:00Z", 20),
		point("2025-11-20T09:00:00Z", math.Inf(1)),
		point("2025-11-20T10:00:00Z", math.NaN()),
		point("2025-11-21T10:00:00Z", math.Inf(-1)),
	}

	var buckets []Bucket
	require.NotPanics(t, func() { buckets = AggregateBuckets(points, GroupByDay) })
	assert.Equal(t, []Bucket{{Period: "2025-11-20", Average: 20, Count: 1}}, buckets)
}

func TestAggregateBuckets_OrderInvariant(t *testing.T) {
	var points []model.IndicatorPoint
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		points = append(points, model.IndicatorPoint{
			Timestamp: base.Add(time.Duration(i) * 7 * time.Hour),
			Value:     0.1 * float64(i%17) * 1.37,
		})
	}
	want := AggregateBuckets(points, GroupByDay)

	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 5; round++ {
		shuffled := append([]model.IndicatorPoint(nil), points...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, AggregateBuckets(shuffled, GroupByDay))
	}

	for i := 1; i < len(want); i++ {
		assert.Less(t, want[i-1].Period, want[i].Period)
	}
}
