package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/service"
)

// StatsHandler serves /stats.
type StatsHandler struct {
	svc service.StatsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func statsQuery(c echo.Context) (service.StatsQuery, error) {
	filter, err := indicatorFilter(c)
	if err != nil {
		return service.StatsQuery{}, err
	}
	return service.StatsQuery{
		IndicatorType: c.QueryParam("indicator_type"),
		ZoneID:        filter.ZoneID,
		SourceID:      filter.SourceID,
		FromDate:      filter.FromDate,
		ToDate:        filter.ToDate,
	}, nil
}

// Average godoc
// @Summary Average of an indicator type
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param indicator_type query string true "Indicator type"
// @Param from_date query string false "Inclusive lower bound (ISO-8601)"
// @Param to_date query string false "Inclusive upper bound (ISO-8601)"
// @Param zone_id query int false "Zone ID"
// @Param source_id query int false "Source ID"
// @Success 200 {object} service.AverageResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stats/average [get]
func (h *StatsHandler) Average(c echo.Context) error {
	query, err := statsQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.Average(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// TimeSeries godoc
// @Summary Per-day or per-month averages of an indicator type
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param indicator_type query string true "Indicator type"
// @Param group_by query string false "day (default) or month"
// @Param from_date query string false "Inclusive lower bound (ISO-8601)"
// @Param to_date query string false "Inclusive upper bound (ISO-8601)"
// @Param zone_id query int false "Zone ID"
// @Param source_id query int false "Source ID"
// @Success 200 {object} service.TimeSeriesResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stats/timeseries [get]
func (h *StatsHandler) TimeSeries(c echo.Context) error {
	query, err := statsQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	groupBy, err := service.ParseGroupBy(c.QueryParam("group_by"))
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.TimeSeries(c.Request().Context(), query, groupBy)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
