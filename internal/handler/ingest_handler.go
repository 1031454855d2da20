package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/service"
)

// IngestHandler triggers feed ingestion on behalf of an admin.
type IngestHandler struct {
	svc     service.IngestionService
	csvPath string
}

// NewIngestHandler creates an IngestHandler. csvPath is the configured pollution file.
func NewIngestHandler(svc service.IngestionService, csvPath string) *IngestHandler {
	return &IngestHandler{svc: svc, csvPath: csvPath}
}

// WeatherIngestRequest names the zone and coordinates to fetch.
type WeatherIngestRequest struct {
	City       string  `json:"city" validate:"required,max=255"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
	Latitude   float64 `json:"latitude" validate:"latitude"`
	Longitude  float64 `json:"longitude" validate:"longitude"`
}

// CSVIngestRequest tunes a CSV run. The file path is server configuration.
type CSVIngestRequest struct {
	SkipInvalid bool `json:"skip_invalid"`
}

// IngestWeather godoc
// @Summary Import hourly weather for a city
// @Tags ingest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WeatherIngestRequest true "City and coordinates"
// @Success 200 {object} service.IngestionResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /ingest/weather [post]
func (h *IngestHandler) IngestWeather(c echo.Context) error {
	var req WeatherIngestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.IngestWeather(c.Request().Context(), service.WeatherRequest{
		City:       req.City,
		PostalCode: req.PostalCode,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// IngestCSV godoc
// @Summary Import the configured pollution CSV
// @Tags ingest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CSVIngestRequest false "Options"
// @Success 200 {object} service.IngestionResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /ingest/csv [post]
func (h *IngestHandler) IngestCSV(c echo.Context) error {
	var req CSVIngestRequest
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}
	}
	result, err := h.svc.IngestCSV(c.Request().Context(), h.csvPath, service.CSVOptions{SkipInvalid: req.SkipInvalid})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
