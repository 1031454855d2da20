package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/repository"
	"ecotrack/internal/testutil"
)

func TestStatsService_Average(t *testing.T) {
	ctx := context.Background()
	gormDB := testutil.NewDB(t)
	svc := NewStatsService(repository.NewIndicatorRepository(gormDB))

	paris := testutil.SeedZone(t, gormDB, "Paris", testutil.Ptr("75000"))
	lyon := testutil.SeedZone(t, gormDB, "Lyon", nil)
	source := testutil.SeedSource(t, gormDB, "Open-Meteo")
	day := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)

	for i, v := range []float64{20, 21, 22} {
		testutil.SeedIndicator(t, gormDB, "temperature", v, day.Add(time.Duration(i+10)*time.Hour), paris.ID, source.ID)
	}
	testutil.SeedIndicator(t, gormDB, "temperature", 100, day, lyon.ID, source.ID)
	testutil.SeedIndicator(t, gormDB, "windspeed", 50, day, paris.ID, source.ID)

	result, err := svc.Average(ctx, StatsQuery{IndicatorType: "temperature", ZoneID: &paris.ID})
	require.NoError(t, err)
	assert.Equal(t, 21.0, result.Average)
	assert.Equal(t, int64(3), result.Count)
	assert.Equal(t, "temperature", result.IndicatorType)
	assert.Equal(t, paris.ID, *result.ZoneID)

	result, err = svc.Average(ctx, StatsQuery{IndicatorType: "temperature"})
	require.NoError(t, err)
	assert.Equal(t, 40.75, result.Average)
	assert.Equal(t, int64(4), result.Count)

	from := day.Add(11 * time.Hour)
	result, err = svc.Average(ctx, StatsQuery{IndicatorType: "temperature", ZoneID: &paris.ID, FromDate: &from})
	require.NoError(t, err)
	assert.Equal(t, 21.5, result.Average)
	assert.Equal(t, int64(2), result.Count)

	_, err = svc.Average(ctx, StatsQuery{IndicatorType: "pm25"})
	assert.ErrorIs(t, err, apperrors.ErrNoData)

	_, err = svc.Average(ctx, StatsQuery{IndicatorType: " "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStatsService_TimeSeries(t *testing.T) {
	ctx := context.Background()
	gormDB := testutil.NewDB(t)
	svc := NewStatsService(repository.NewIndicatorRepository(gormDB))

	zone := testutil.SeedZone(t, gormDB, "Paris", nil)
	meteo := testutil.SeedSource(t, gormDB, "Open-Meteo")
	csv := testutil.SeedSource(t, gormDB, "CSV Pollution")
	day := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)

	t.Run("single day bucket", func(t *testing.T) {
		for i, v := range []float64{20, 21, 22} {
			testutil.SeedIndicator(t, gormDB, "temperature", v, day.Add(time.Duration(i+10)*time.Hour), zone.ID, meteo.ID)
		}

		result, err := svc.TimeSeries(ctx, StatsQuery{IndicatorType: "temperature"}, GroupByDay)
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-11-21"}, result.Labels)
		require.Len(t, result.Series, 1)
		assert.Equal(t, "temperature average", result.Series[0].Name)
		assert.Equal(t, []float64{21}, result.Series[0].Data)
		assert.Equal(t, []Bucket{{Period: "2025-11-21", Average: 21, Count: 3}}, result.RawPoints)
		assert.Equal(t, GroupByDay, result.GroupBy)
	})

	t.Run("labels and data stay aligned", func(t *testing.T) {
		testutil.SeedIndicator(t, gormDB, "temperature", 10, day.AddDate(0, -1, 0), zone.ID, csv.ID)
		testutil.SeedIndicator(t, gormDB, "temperature", 30, day.AddDate(0, 0, 1), zone.ID, meteo.ID)

		result, err := svc.TimeSeries(ctx, StatsQuery{IndicatorType: "temperature"}, GroupByDay)
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-10-21", "2025-11-21", "2025-11-22"}, result.Labels)
		assert.Equal(t, []float64{10, 21, 30}, result.Series[0].Data)
		assert.Len(t, result.RawPoints, len(result.Labels))

		months, err := svc.TimeSeries(ctx, StatsQuery{IndicatorType: "temperature"}, GroupByMonth)
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-10", "2025-11"}, months.Labels)
		assert.Equal(t, []float64{10, 23.25}, months.Series[0].Data)
	})

	t.Run("source filter", func(t *testing.T) {
		result, err := svc.TimeSeries(ctx, StatsQuery{IndicatorType: "temperature", SourceID: &csv.ID}, GroupByMonth)
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-10"}, result.Labels)
		assert.Equal(t, csv.ID, *result.Filters.SourceID)
	})

	t.Run("no rows", func(t *testing.T) {
		to := day.AddDate(-1, 0, 0)
		_, err := svc.TimeSeries(ctx, StatsQuery{IndicatorType: "temperature", ToDate: &to}, GroupByDay)
		assert.ErrorIs(t, err, apperrors.ErrNoData)
	})

	t.Run("bad group_by", func(t *testing.T) {
		_, err := svc.TimeSeries(ctx, StatsQuery{IndicatorType: "temperature"}, GroupBy("year"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
