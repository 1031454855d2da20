package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/model"
	"ecotrack/internal/service"
	"ecotrack/internal/timeparse"
)

const maxIndicatorPage = 1000

// IndicatorHandler serves /indicators.
type IndicatorHandler struct {
	svc service.IndicatorService
}

// NewIndicatorHandler creates an IndicatorHandler.
func NewIndicatorHandler(svc service.IndicatorService) *IndicatorHandler {
	return &IndicatorHandler{svc: svc}
}

// IndicatorRequest creates an indicator.
type IndicatorRequest struct {
	Type      string                 `json:"type" validate:"required,max=100"`
	Value     *float64               `json:"value" validate:"required"`
	Unit      string                 `json:"unit" validate:"required,max=50"`
	Timestamp timeparse.Timestamp    `json:"timestamp" swaggertype:"string" example:"2025-11-20T10:00:00"`
	ZoneID    uint                   `json:"zone_id" validate:"required"`
	SourceID  uint                   `json:"source_id" validate:"required"`
	ExtraData map[string]interface{} `json:"extra_data"`
}

// IndicatorUpdateRequest patches an indicator.
type IndicatorUpdateRequest struct {
	Type      *string                `json:"type" validate:"omitempty,max=100"`
	Value     *float64               `json:"value"`
	Unit      *string                `json:"unit" validate:"omitempty,max=50"`
	Timestamp *timeparse.Timestamp   `json:"timestamp" swaggertype:"string"`
	ZoneID    *uint                  `json:"zone_id" validate:"omitempty,min=1"`
	SourceID  *uint                  `json:"source_id" validate:"omitempty,min=1"`
	ExtraData map[string]interface{} `json:"extra_data"`
}

// ListIndicators godoc
// @Summary List indicators
// @Description Newest first. All filters are optional and combine with AND.
// @Tags indicators
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Rows to skip"
// @Param limit query int false "Page size (default 100)"
// @Param from_date query string false "Inclusive lower bound (ISO-8601)"
// @Param to_date query string false "Inclusive upper bound (ISO-8601)"
// @Param zone_id query int false "Zone ID"
// @Param source_id query int false "Source ID"
// @Param indicator_type query string false "Indicator type"
// @Success 200 {array} model.Indicator
// @Failure 400 {object} errors.ErrorResponse
// @Router /indicators [get]
func (h *IndicatorHandler) ListIndicators(c echo.Context) error {
	filter, err := indicatorFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := queryPage(c, maxIndicatorPage)
	if err != nil {
		return respondError(c, err)
	}

	indicators, err := h.svc.ListIndicators(c.Request().Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, indicators)
}

// GetIndicator godoc
// @Summary Get indicator
// @Tags indicators
// @Produce json
// @Security BearerAuth
// @Param id path int true "Indicator ID"
// @Success 200 {object} model.Indicator
// @Failure 404 {object} errors.ErrorResponse
// @Router /indicators/{id} [get]
func (h *IndicatorHandler) GetIndicator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	indicator, err := h.svc.GetIndicator(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, indicator)
}

// CreateIndicator godoc
// @Summary Create indicator
// @Tags indicators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param indicator body IndicatorRequest true "Indicator"
// @Success 201 {object} model.Indicator
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /indicators [post]
func (h *IndicatorHandler) CreateIndicator(c echo.Context) error {
	var req IndicatorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	indicator := &model.Indicator{
		Type:      req.Type,
		Value:     *req.Value,
		Unit:      req.Unit,
		Timestamp: req.Timestamp.Time,
		ZoneID:    req.ZoneID,
		SourceID:  req.SourceID,
		ExtraData: req.ExtraData,
	}
	if err := h.svc.CreateIndicator(c.Request().Context(), indicator); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, indicator)
}

// UpdateIndicator godoc
// @Summary Update indicator
// @Tags indicators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Indicator ID"
// @Param indicator body IndicatorUpdateRequest true "Fields to change"
// @Success 200 {object} model.Indicator
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /indicators/{id} [patch]
func (h *IndicatorHandler) UpdateIndicator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req IndicatorUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	update := model.IndicatorUpdate{
		Type:      req.Type,
		Value:     req.Value,
		Unit:      req.Unit,
		ZoneID:    req.ZoneID,
		SourceID:  req.SourceID,
		ExtraData: req.ExtraData,
	}
	if req.Timestamp != nil {
		update.Timestamp = &req.Timestamp.Time
	}
	indicator, err := h.svc.UpdateIndicator(c.Request().Context(), id, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, indicator)
}

// DeleteIndicator godoc
// @Summary Delete indicator
// @Tags indicators
// @Security BearerAuth
// @Param id path int true "Indicator ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /indicators/{id} [delete]
func (h *IndicatorHandler) DeleteIndicator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.DeleteIndicator(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
