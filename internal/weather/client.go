// Package weather fetches hourly observations from the Open-Meteo forecast API.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/metrics"
)

const (
	forecastPath = "/v1/forecast"
	timeLayout   = "2006-01-02T15:04"
	maxBodySize  = 4 << 20
)

// HourlySeries holds aligned hourly samples. All slices have the same length.
type HourlySeries struct {
	Times       []time.Time
	Temperature []float64 // °C
	WindSpeed   []float64 // km/h
}

// Len returns the number of samples.
func (s *HourlySeries) Len() int {
	return len(s.Times)
}

type forecastResponse struct {
	Hourly *struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
		WindSpeed   []*float64 `json:"windspeed_10m"`
	} `json:"hourly"`
}

// Client calls Open-Meteo through a circuit breaker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[*HourlySeries]
}

// NewClient creates a client. timeout bounds each HTTP round trip.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cb: gobreaker.NewCircuitBreaker[*HourlySeries](gobreaker.Settings{
			Name:        "open-meteo",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// Cancellation by the caller is not a provider failure.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			},
		}),
	}
}

// FetchHourly returns the temperature and wind speed series for the past and current day.
// Any transport failure or malformed payload is reported as ErrExternalFeed.
func (c *Client) FetchHourly(ctx context.Context, latitude, longitude float64) (*HourlySeries, error) {
	start := time.Now()
	series, err := c.cb.Execute(func() (*HourlySeries, error) {
		return c.fetch(ctx, latitude, longitude)
	})

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.WeatherFetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: provider unavailable (%v)", apperrors.ErrExternalFeed, err)
		}
		return nil, err
	}
	return series, nil
}

func (c *Client) fetch(ctx context.Context, latitude, longitude float64) (*HourlySeries, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("hourly", "temperature_2m,windspeed_10m")
	params.Set("past_days", "1")
	params.Set("forecast_days", "1")
	params.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+forecastPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrExternalFeed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrExternalFeed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, transportError(ctx, fmt.Errorf("read body: %v", err))
	}

	var payload forecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", apperrors.ErrExternalFeed, err)
	}
	return payload.series()
}

// transportError wraps err as ErrExternalFeed. Only the caller's own cancellation or deadline
// stays matchable with errors.Is; client timeouts count against the provider.
func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExternalFeed, ctxErr)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrExternalFeed, err)
}

func (r *forecastResponse) series() (*HourlySeries, error) {
	h := r.Hourly
	if h == nil || h.Time == nil || h.Temperature == nil || h.WindSpeed == nil {
		return nil, fmt.Errorf("%w: hourly time, temperature_2m or windspeed_10m missing", apperrors.ErrExternalFeed)
	}
	if len(h.Temperature) != len(h.Time) || len(h.WindSpeed) != len(h.Time) {
		return nil, fmt.Errorf("%w: hourly arrays have different lengths", apperrors.ErrExternalFeed)
	}

	series := &HourlySeries{
		Times:       make([]time.Time, len(h.Time)),
		Temperature: make([]float64, len(h.Time)),
		WindSpeed:   make([]float64, len(h.Time)),
	}
	for i, raw := range h.Time {
		ts, err := time.ParseInLocation(timeLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q at %d", apperrors.ErrExternalFeed, raw, i)
		}
		if h.Temperature[i] == nil || h.WindSpeed[i] == nil {
			return nil, fmt.Errorf("%w: null sample at %s", apperrors.ErrExternalFeed, raw)
		}
		series.Times[i] = ts
		series.Temperature[i] = *h.Temperature[i]
		series.WindSpeed[i] = *h.WindSpeed[i]
	}
	return series, nil
}
