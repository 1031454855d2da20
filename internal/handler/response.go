package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/repository"
	"ecotrack/internal/timeparse"
)

// respondError writes err as an ErrorResponse with the mapped status code.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError && httpErr.StatusCode != http.StatusBadGateway {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request failed")
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrValidation)
	}
	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: field %s failed %q", apperrors.ErrValidation, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id", apperrors.ErrValidation)
	}
	return uint(id), nil
}

func queryUint(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a positive integer", apperrors.ErrValidation, name)
	}
	id := uint(v)
	return &id, nil
}

func queryTime(c echo.Context, name string) (*time.Time, error) {
	t, err := timeparse.ParseOptional(c.QueryParam(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrValidation, name, err)
	}
	return t, nil
}

func queryString(c echo.Context, name string) *string {
	if raw := c.QueryParam(name); raw != "" {
		return &raw
	}
	return nil
}

// queryPage reads skip and limit. limit is capped at maxLimit; an absent limit means the
// service default and an explicit limit=0 yields an empty page.
func queryPage(c echo.Context, maxLimit int) (repository.Page, error) {
	var page repository.Page
	for _, p := range []struct {
		name string
		dst  *int
	}{{"skip", &page.Skip}, {"limit", &page.Limit}} {
		raw := c.QueryParam(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return page, fmt.Errorf("%w: %s must be a non-negative integer", apperrors.ErrValidation, p.name)
		}
		*p.dst = v
		if p.name == "limit" {
			page.LimitSet = true
		}
	}
	if page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page, nil
}

// indicatorFilter reads the optional predicates shared by listing and statistics.
func indicatorFilter(c echo.Context) (repository.IndicatorFilter, error) {
	var (
		f   repository.IndicatorFilter
		err error
	)
	if f.FromDate, err = queryTime(c, "from_date"); err != nil {
		return f, err
	}
	if f.ToDate, err = queryTime(c, "to_date"); err != nil {
		return f, err
	}
	if f.ZoneID, err = queryUint(c, "zone_id"); err != nil {
		return f, err
	}
	if f.SourceID, err = queryUint(c, "source_id"); err != nil {
		return f, err
	}
	f.Type = queryString(c, "indicator_type")
	return f, nil
}
