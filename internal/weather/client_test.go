package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ecotrack/internal/errors"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, forecastPath, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "48.8566", q.Get("latitude"))
		assert.Equal(t, "2.3522", q.Get("longitude"))
		assert.Equal(t, "temperature_2m,windspeed_10m", q.Get("hourly"))
		assert.Equal(t, "1", q.Get("past_days"))
		assert.Equal(t, "1", q.Get("forecast_days"))
		assert.Equal(t, "UTC", q.Get("timezone"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchHourly(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{
		"latitude": 48.86,
		"hourly": {
			"time": ["2025-11-20T00:00", "2025-11-20T01:00"],
			"temperature_2m": [7.5, 7.1],
			"windspeed_10m": [12.0, 10.4]
		}
	}`)

	series, err := NewClient(srv.URL, time.Second).FetchHourly(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.True(t, time.Date(2025, 11, 20, 1, 0, 0, 0, time.UTC).Equal(series.Times[1]))
	assert.Equal(t, []float64{7.5, 7.1}, series.Temperature)
	assert.Equal(t, []float64{12.0, 10.4}, series.WindSpeed)
}

func TestFetchHourly_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error": true}`},
		{"bad request", http.StatusBadRequest, `{"reason": "latitude out of range"}`},
		{"not json", http.StatusOK, `<html></html>`},
		{"no hourly block", http.StatusOK, `{"latitude": 1}`},
		{"missing wind", http.StatusOK, `{"hourly": {"time": ["2025-11-20T00:00"], "temperature_2m": [1.0]}}`},
		{"length mismatch", http.StatusOK, `{"hourly": {"time": ["2025-11-20T00:00"], "temperature_2m": [1.0, 2.0], "windspeed_10m": [3.0]}}`},
		{"null value", http.StatusOK, `{"hourly": {"time": ["2025-11-20T00:00"], "temperature_2m": [null], "windspeed_10m": [3.0]}}`},
		{"bad timestamp", http.StatusOK, `{"hourly": {"time": ["20/11/2025"], "temperature_2m": [1.0], "windspeed_10m": [3.0]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body)
			series, err := NewClient(srv.URL, time.Second).FetchHourly(context.Background(), 48.8566, 2.3522)
			assert.Nil(t, series)
			assert.ErrorIs(t, err, apperrors.ErrExternalFeed)
		})
	}
}

func TestFetchHourly_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).FetchHourly(context.Background(), 48.8566, 2.3522)
	assert.ErrorIs(t, err, apperrors.ErrExternalFeed)
}

func TestFetchHourly_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	for i := 0; i < 7; i++ {
		_, err := client.FetchHourly(context.Background(), 1, 1)
		assert.ErrorIs(t, err, apperrors.ErrExternalFeed)
	}
	assert.EqualValues(t, 5, calls.Load())
}

func TestFetchHourly_CallerCancellationKeepsBreakerClosed(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"hourly":{"time":["2025-11-20T00:00"],"temperature_2m":[7.5],"windspeed_10m":[12.0]}}`)
	client := NewClient(srv.URL, time.Second)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()

	for i := 0; i < 7; i++ {
		_, err := client.FetchHourly(cancelled, 48.8566, 2.3522)
		assert.ErrorIs(t, err, apperrors.ErrExternalFeed)
		assert.ErrorIs(t, err, context.Canceled)

		_, err = client.FetchHourly(expired, 48.8566, 2.3522)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}

	series, err := client.FetchHourly(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	assert.Equal(t, 1, series.Len())
}
