package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecotrack/internal/repository"
	"ecotrack/internal/testutil"
)

var base = time.Date(2025, 11, 21, 8, 0, 0, 0, time.UTC)

type fixture struct {
	repo             repository.IndicatorRepository
	zoneA, zoneB     uint
	sourceA, sourceB uint
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)

	zoneA := testutil.SeedZone(t, db, "Paris", testutil.Ptr("75000"))
	zoneB := testutil.SeedZone(t, db, "Lyon", testutil.Ptr("69000"))
	sourceA := testutil.SeedSource(t, db, "Open-Meteo")
	sourceB := testutil.SeedSource(t, db, "CSV Pollution")

	// Inserted out of timestamp order on purpose.
	testutil.SeedIndicator(t, db, "temperature", 20, base.Add(2*time.Hour), zoneA.ID, sourceA.ID)
	testutil.SeedIndicator(t, db, "temperature", 22, base, zoneA.ID, sourceA.ID)
	testutil.SeedIndicator(t, db, "temperature", 15, base.Add(24*time.Hour), zoneB.ID, sourceA.ID)
	testutil.SeedIndicator(t, db, "PM10", 40, base.Add(time.Hour), zoneA.ID, sourceB.ID)
	testutil.SeedIndicator(t, db, "PM10", 35, base.Add(48*time.Hour), zoneB.ID, sourceB.ID)

	return fixture{
		repo:    repository.NewIndicatorRepository(db),
		zoneA:   zoneA.ID,
		zoneB:   zoneB.ID,
		sourceA: sourceA.ID,
		sourceB: sourceB.ID,
	}
}

func TestIndicatorRepository_ListOrdersByTimestampDesc(t *testing.T) {
	f := newFixture(t)

	indicators, err := f.repo.List(context.Background(), repository.IndicatorFilter{}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, indicators, 5)

	for i := 1; i < len(indicators); i++ {
		assert.False(t, indicators[i].Timestamp.After(indicators[i-1].Timestamp),
			"row %d is newer than row %d", i, i-1)
	}
}

func TestIndicatorRepository_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter repository.IndicatorFilter
		want   int
	}{
		{"no predicate", repository.IndicatorFilter{}, 5},
		{"type", repository.IndicatorFilter{Type: testutil.Ptr("temperature")}, 3},
		{"zone", repository.IndicatorFilter{ZoneID: &f.zoneA}, 3},
		{"source", repository.IndicatorFilter{SourceID: &f.sourceB}, 2},
		{"inclusive from", repository.IndicatorFilter{FromDate: testutil.Ptr(base.Add(24 * time.Hour))}, 2},
		{"inclusive to", repository.IndicatorFilter{ToDate: testutil.Ptr(base.Add(time.Hour))}, 2},
		{"type and zone", repository.IndicatorFilter{Type: testutil.Ptr("temperature"), ZoneID: &f.zoneA}, 2},
		{"unknown type", repository.IndicatorFilter{Type: testutil.Ptr("CO2")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indicators, err := f.repo.List(ctx, tt.filter, repository.Page{})
			require.NoError(t, err)
			assert.Len(t, indicators, tt.want)

			count, err := f.repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(tt.want), count)
		})
	}
}

func TestIndicatorRepository_AddingPredicateNeverWidens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	filter := repository.IndicatorFilter{}
	previous, err := f.repo.Count(ctx, filter)
	require.NoError(t, err)

	steps := []func(*repository.IndicatorFilter){
		func(x *repository.IndicatorFilter) { x.FromDate = testutil.Ptr(base) },
		func(x *repository.IndicatorFilter) { x.ToDate = testutil.Ptr(base.Add(30 * time.Hour)) },
		func(x *repository.IndicatorFilter) { x.SourceID = &f.sourceA },
		func(x *repository.IndicatorFilter) { x.ZoneID = &f.zoneA },
		func(x *repository.IndicatorFilter) { x.Type = testutil.Ptr("temperature") },
	}
	for _, step := range steps {
		step(&filter)
		count, err := f.repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.LessOrEqual(t, count, previous)
		previous = count
	}
	assert.Equal(t, int64(2), previous)
}

func TestIndicatorRepository_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.repo.List(ctx, repository.IndicatorFilter{}, repository.Page{Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, base.Add(24*time.Hour).Equal(page[0].Timestamp))
	assert.True(t, base.Add(2*time.Hour).Equal(page[1].Timestamp))

	beyond, err := f.repo.List(ctx, repository.IndicatorFilter{}, repository.Page{Skip: 50, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	none, err := f.repo.List(ctx, repository.IndicatorFilter{}, repository.Page{Limit: 0, LimitSet: true})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestIndicatorRepository_Average(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	avg, count, err := f.repo.Average(ctx, repository.IndicatorFilter{Type: testutil.Ptr("temperature"), ZoneID: &f.zoneA})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 21.0, avg, 1e-9)

	_, count, err = f.repo.Average(ctx, repository.IndicatorFilter{Type: testutil.Ptr("CO2")})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIndicatorRepository_PointsAscending(t *testing.T) {
	f := newFixture(t)

	points, err := f.repo.Points(context.Background(), repository.IndicatorFilter{Type: testutil.Ptr("temperature")})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 22.0, points[0].Value)
	assert.Equal(t, 20.0, points[1].Value)
	assert.Equal(t, 15.0, points[2].Value)
}
