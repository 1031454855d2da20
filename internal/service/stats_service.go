package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/metrics"
	"ecotrack/internal/repository"
)

// StatsQuery selects the indicators to aggregate. IndicatorType is required.
type StatsQuery struct {
	IndicatorType string
	ZoneID        *uint
	SourceID      *uint
	FromDate      *time.Time
	ToDate        *time.Time
}

func (q StatsQuery) filter() repository.IndicatorFilter {
	return repository.IndicatorFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		ZoneID:   q.ZoneID,
		SourceID: q.SourceID,
		Type:     &q.IndicatorType,
	}
}

// AverageResult is the mean value over every matching indicator.
type AverageResult struct {
	IndicatorType string     `json:"indicator_type"`
	ZoneID        *uint      `json:"zone_id"`
	SourceID      *uint      `json:"source_id"`
	FromDate      *time.Time `json:"from_date"`
	ToDate        *time.Time `json:"to_date"`
	Average       float64    `json:"average"`
	Count         int64      `json:"count"`
}

// SeriesFilters echoes the filters applied to a time series.
type SeriesFilters struct {
	ZoneID   *uint      `json:"zone_id"`
	SourceID *uint      `json:"source_id"`
	FromDate *time.Time `json:"from_date"`
	ToDate   *time.Time `json:"to_date"`
}

// Series is one chart line; Data is aligned with TimeSeriesResult.Labels.
type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// TimeSeriesResult is a chart-ready per-period average.
type TimeSeriesResult struct {
	IndicatorType string        `json:"indicator_type"`
	GroupBy       GroupBy       `json:"group_by"`
	Filters       SeriesFilters `json:"filters"`
	Labels        []string      `json:"labels"`
	Series        []Series      `json:"series"`
	RawPoints     []Bucket      `json:"raw_points"`
}

// StatsService computes aggregates over indicators.
type StatsService interface {
	// Average fails with ErrNoData when nothing matches.
	Average(ctx context.Context, query StatsQuery) (*AverageResult, error)
	// TimeSeries fails with ErrNoData when nothing matches.
	TimeSeries(ctx context.Context, query StatsQuery, groupBy GroupBy) (*TimeSeriesResult, error)
}

type statsService struct {
	indicators repository.IndicatorRepository
}

// NewStatsService builds a StatsService.
func NewStatsService(indicators repository.IndicatorRepository) StatsService {
	return &statsService{indicators: indicators}
}

func (s *statsService) Average(ctx context.Context, query StatsQuery) (result *AverageResult, err error) {
	defer func() { recordStats("average", err) }()

	if err := validateStatsQuery(&query); err != nil {
		return nil, err
	}

	avg, count, err := s.indicators.Average(ctx, query.filter())
	if err != nil {
		return nil, fmt.Errorf("average indicators: %w", err)
	}
	if count == 0 {
		return nil, apperrors.ErrNoData
	}

	return &AverageResult{
		IndicatorType: query.IndicatorType,
		ZoneID:        query.ZoneID,
		SourceID:      query.SourceID,
		FromDate:      query.FromDate,
		ToDate:        query.ToDate,
		Average:       avg,
		Count:         count,
	}, nil
}

func (s *statsService) TimeSeries(ctx context.Context, query StatsQuery, groupBy GroupBy) (result *TimeSeriesResult, err error) {
	defer func() { recordStats("timeseries", err) }()

	if err := validateStatsQuery(&query); err != nil {
		return nil, err
	}
	if groupBy != GroupByDay && groupBy != GroupByMonth {
		return nil, fmt.Errorf("%w: unknown group_by %q", apperrors.ErrValidation, groupBy)
	}

	points, err := s.indicators.Points(ctx, query.filter())
	if err != nil {
		return nil, fmt.Errorf("load indicator points: %w", err)
	}
	buckets := AggregateBuckets(points, groupBy)
	if len(buckets) == 0 {
		return nil, apperrors.ErrNoData
	}
	labels := make([]string, len(buckets))
	data := make([]float64, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Period
		data[i] = b.Average
	}

	return &TimeSeriesResult{
		IndicatorType: query.IndicatorType,
		GroupBy:       groupBy,
		Filters: SeriesFilters{
			ZoneID:   query.ZoneID,
			SourceID: query.SourceID,
			FromDate: query.FromDate,
			ToDate:   query.ToDate,
		},
		Labels:    labels,
		Series:    []Series{{Name: query.IndicatorType + " average", Data: data}},
		RawPoints: buckets,
	}, nil
}

func validateStatsQuery(query *StatsQuery) error {
	query.IndicatorType = strings.TrimSpace(query.IndicatorType)
	if query.IndicatorType == "" {
		return fmt.Errorf("%w: indicator_type is required", apperrors.ErrValidation)
	}
	return nil
}

func recordStats(kind string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, apperrors.ErrNoData):
		outcome = "no_data"
	case err != nil:
		outcome = "error"
	}
	metrics.StatsQueries.WithLabelValues(kind, outcome).Inc()
}
