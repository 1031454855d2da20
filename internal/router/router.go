package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ecotrack/docs"
	"ecotrack/internal/auth"
	"ecotrack/internal/config"
	"ecotrack/internal/handler"
	"ecotrack/internal/logging"
	"ecotrack/internal/model"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Zones      *handler.ZoneHandler
	Sources    *handler.SourceHandler
	Indicators *handler.IndicatorHandler
	Stats      *handler.StatsHandler
	Ingest     *handler.IngestHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg config.Config, logger zerolog.Logger, guard *auth.Guard, h Handlers) {
	e.HideBanner = true
	e.JSONSerializer = handler.JSONSerializer{}
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	// Guards are attached per route; unknown /api paths stay 404.
	bearer := handler.BearerAuth(guard)
	authenticated := []echo.MiddlewareFunc{bearer, handler.RequireRole(guard, model.RoleUser)}
	admin := []echo.MiddlewareFunc{bearer, handler.RequireRole(guard, model.RoleAdmin)}

	api.POST("/auth/logout", h.Auth.Logout, authenticated...)
	api.GET("/users/me", h.Users.Me, authenticated...)

	// User administration
	api.GET("/users", h.Users.ListUsers, admin...)
	api.POST("/users", h.Users.CreateUser, admin...)
	api.GET("/users/:id", h.Users.GetUser, admin...)
	api.PATCH("/users/:id", h.Users.UpdateUser, admin...)
	api.DELETE("/users/:id", h.Users.DeleteUser, admin...)

	// Zones
	api.GET("/zones", h.Zones.ListZones, authenticated...)
	api.GET("/zones/:id", h.Zones.GetZone, authenticated...)
	api.POST("/zones", h.Zones.CreateZone, admin...)
	api.PATCH("/zones/:id", h.Zones.UpdateZone, admin...)
	api.DELETE("/zones/:id", h.Zones.DeleteZone, admin...)

	// Sources
	api.GET("/sources", h.Sources.ListSources, authenticated...)
	api.GET("/sources/:id", h.Sources.GetSource, authenticated...)
	api.POST("/sources", h.Sources.CreateSource, admin...)
	api.PATCH("/sources/:id", h.Sources.UpdateSource, admin...)
	api.DELETE("/sources/:id", h.Sources.DeleteSource, admin...)

	// Indicators
	api.GET("/indicators", h.Indicators.ListIndicators, authenticated...)
	api.GET("/indicators/:id", h.Indicators.GetIndicator, authenticated...)
	api.POST("/indicators", h.Indicators.CreateIndicator, admin...)
	api.PATCH("/indicators/:id", h.Indicators.UpdateIndicator, admin...)
	api.DELETE("/indicators/:id", h.Indicators.DeleteIndicator, admin...)

	// Statistics
	api.GET("/stats/average", h.Stats.Average, authenticated...)
	api.GET("/stats/timeseries", h.Stats.TimeSeries, authenticated...)

	// Ingestion
	api.POST("/ingest/weather", h.Ingest.IngestWeather, admin...)
	api.POST("/ingest/csv", h.Ingest.IngestCSV, admin...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
