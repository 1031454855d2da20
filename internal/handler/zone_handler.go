package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/model"
	"ecotrack/internal/service"
)

// ZoneHandler serves /zones.
type ZoneHandler struct {
	svc service.ZoneService
}

// NewZoneHandler creates a ZoneHandler.
func NewZoneHandler(svc service.ZoneService) *ZoneHandler {
	return &ZoneHandler{svc: svc}
}

// ZoneRequest creates a zone.
type ZoneRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
}

// ZoneUpdateRequest patches a zone.
type ZoneUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=255"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
}

// ListZones godoc
// @Summary List zones
// @Tags zones
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Zone
// @Router /zones [get]
func (h *ZoneHandler) ListZones(c echo.Context) error {
	zones, err := h.svc.ListZones(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, zones)
}

// GetZone godoc
// @Summary Get zone
// @Tags zones
// @Produce json
// @Security BearerAuth
// @Param id path int true "Zone ID"
// @Success 200 {object} model.Zone
// @Failure 404 {object} errors.ErrorResponse
// @Router /zones/{id} [get]
func (h *ZoneHandler) GetZone(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	zone, err := h.svc.GetZone(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, zone)
}

// CreateZone godoc
// @Summary Create zone
// @Tags zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zone body ZoneRequest true "Zone"
// @Success 201 {object} model.Zone
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /zones [post]
func (h *ZoneHandler) CreateZone(c echo.Context) error {
	var req ZoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	zone := &model.Zone{Name: req.Name, PostalCode: req.PostalCode}
	if err := h.svc.CreateZone(c.Request().Context(), zone); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, zone)
}

// UpdateZone godoc
// @Summary Update zone
// @Tags zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Zone ID"
// @Param zone body ZoneUpdateRequest true "Fields to change"
// @Success 200 {object} model.Zone
// @Failure 404 {object} errors.ErrorResponse
// @Router /zones/{id} [patch]
func (h *ZoneHandler) UpdateZone(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req ZoneUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	zone, err := h.svc.UpdateZone(c.Request().Context(), id, model.ZoneUpdate{Name: req.Name, PostalCode: req.PostalCode})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, zone)
}

// DeleteZone godoc
// @Summary Delete zone
// @Tags zones
// @Security BearerAuth
// @Param id path int true "Zone ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /zones/{id} [delete]
func (h *ZoneHandler) DeleteZone(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.DeleteZone(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
