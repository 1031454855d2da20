package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/model"
	"ecotrack/internal/service"
)

// SourceHandler serves /sources.
type SourceHandler struct {
	svc service.SourceService
}

// NewSourceHandler creates a SourceHandler.
func NewSourceHandler(svc service.SourceService) *SourceHandler {
	return &SourceHandler{svc: svc}
}

// SourceRequest creates a source.
type SourceRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	URL         *string `json:"url" validate:"omitempty,url,max=2048"`
	Type        *string `json:"type" validate:"omitempty,max=50"`
}

// SourceUpdateRequest patches a source.
type SourceUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	URL         *string `json:"url" validate:"omitempty,url,max=2048"`
	Type        *string `json:"type" validate:"omitempty,max=50"`
}

// ListSources godoc
// @Summary List sources
// @Tags sources
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Source
// @Router /sources [get]
func (h *SourceHandler) ListSources(c echo.Context) error {
	sources, err := h.svc.ListSources(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sources)
}

// GetSource godoc
// @Summary Get source
// @Tags sources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Source ID"
// @Success 200 {object} model.Source
// @Failure 404 {object} errors.ErrorResponse
// @Router /sources/{id} [get]
func (h *SourceHandler) GetSource(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	source, err := h.svc.GetSource(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, source)
}

// CreateSource godoc
// @Summary Create source
// @Tags sources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param source body SourceRequest true "Source"
// @Success 201 {object} model.Source
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /sources [post]
func (h *SourceHandler) CreateSource(c echo.Context) error {
	var req SourceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	source := &model.Source{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Type:        req.Type,
	}
	if err := h.svc.CreateSource(c.Request().Context(), source); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, source)
}

// UpdateSource godoc
// @Summary Update source
// @Tags sources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Source ID"
// @Param source body SourceUpdateRequest true "Fields to change"
// @Success 200 {object} model.Source
// @Failure 404 {object} errors.ErrorResponse
// @Router /sources/{id} [patch]
func (h *SourceHandler) UpdateSource(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req SourceUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	source, err := h.svc.UpdateSource(c.Request().Context(), id, model.SourceUpdate{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Type:        req.Type,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, source)
}

// DeleteSource godoc
// @Summary Delete source
// @Tags sources
// @Security BearerAuth
// @Param id path int true "Source ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /sources/{id} [delete]
func (h *SourceHandler) DeleteSource(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.DeleteSource(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
