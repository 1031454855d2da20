package router_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecotrack/internal/app"
	"ecotrack/internal/config"
	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/model"
	"ecotrack/internal/router"
	"ecotrack/internal/testutil"
	"ecotrack/internal/weather"
)

// memoryTokens keeps tokens in process for tests.
type memoryTokens struct {
	mu      sync.Mutex
	refresh map[string]model.User
	revoked map[string]bool
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{refresh: map[string]model.User{}, revoked: map[string]bool{}}
}

func (m *memoryTokens) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[tokenID] = model.User{ID: userID, Email: email}
	return nil
}

func (m *memoryTokens) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.refresh[tokenID]
	if !ok {
		return 0, "", errors.New("refresh token not found")
	}
	return u.ID, u.Email, nil
}

func (m *memoryTokens) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refresh, tokenID)
	return nil
}

func (m *memoryTokens) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m *memoryTokens) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}

type fixedFetcher struct {
	series *weather.HourlySeries
	err    error
}

func (f fixedFetcher) FetchHourly(ctx context.Context, latitude, longitude float64) (*weather.HourlySeries, error) {
	return f.series, f.err
}

type testServer struct {
	e   *echo.Echo
	db  *gorm.DB
	app *app.App
}

func newTestServer(t *testing.T, fetcher fixedFetcher, csvPath string) *testServer {
	t.Helper()

	cfg := config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		CSVPath:         csvPath,
	}
	gormDB := testutil.NewDB(t)
	a := app.New(cfg, zerolog.Nop(), gormDB, newMemoryTokens(), fetcher)

	e := echo.New()
	router.Register(e, cfg, zerolog.Nop(), a.Guard, a.Handlers())
	return &testServer{e: e, db: gormDB, app: a}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, strings.NewReader(string(payload)))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) (access, refresh string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
	}
	decode(t, rec, &tokens)
	require.Equal(t, "bearer", tokens.TokenType)
	return tokens.AccessToken, tokens.RefreshToken
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	_, _, err := s.app.Auth.EnsureAdmin(context.Background(), "admin@ecotrack.com", "admin123")
	require.NoError(t, err)
	access, _ := s.login(t, "admin@ecotrack.com", "admin123")
	return access
}

func (s *testServer) userToken(t *testing.T, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": email, "password": "secret12"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	access, _ := s.login(t, email, "secret12")
	return access
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	decode(t, rec, &body)
	return body.Code
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t, fixedFetcher{}, "")

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "alice@example.com", "password": "secret12", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user map[string]interface{}
	decode(t, rec, &user)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, true, user["is_active"])
	assert.NotContains(t, user, "hashed_password")
	assert.NotContains(t, user, "password")

	t.Run("duplicate email", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "alice@example.com", "password": "other123"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "EMAIL_TAKEN", errorCode(t, rec))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": "nope1234"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	access, _ := s.login(t, "alice@example.com", "secret12")
	rec = s.do(t, http.MethodGet, "/api/users/me", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &user)
	assert.Equal(t, "alice@example.com", user["email"])
}

func TestLoginAcceptsPasswordForm(t *testing.T) {
	s := newTestServer(t, fixedFetcher{}, "")
	s.userToken(t, "form@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("username=form%40example.com&password=secret12"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestGuardStatusCodes(t *testing.T) {
	s := newTestServer(t, fixedFetcher{}, "")
	userAccess := s.userToken(t, "bob@example.com")

	t.Run("missing token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/zones", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHENTICATED", errorCode(t, rec))
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/zones", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user reads zones", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/zones", userAccess, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user cannot write", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/zones", userAccess, map[string]string{"name": "Lyon"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
	})

	t.Run("user cannot list users", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/users", userAccess, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("deactivated user is rejected", func(t *testing.T) {
		require.NoError(t, s.db.Model(&model.User{}).Where("email = ?", "bob@example.com").Update("is_active", false).Error)
		rec := s.do(t, http.MethodGet, "/api/zones", userAccess, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogoutRevokesTokens(t *testing.T) {
	s := newTestServer(t, fixedFetcher{}, "")
	s.userToken(t, "carol@example.com")
	access, refresh := s.login(t, "carol@example.com", "secret12")

	rec := s.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/logout", access, map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/users/me", access, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogAndIndicators(t *testing.T) {
	s := newTestServer(t, fixedFetcher{}, "")
	admin := s.adminToken(t)
	reader := s.userToken(t, "reader@example.com")

	rec := s.do(t, http.MethodPost, "/api/zones", admin, map[string]string{"name": "Paris", "postal_code": "75000"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var zone model.Zone
	decode(t, rec, &zone)

	rec = s.do(t, http.MethodPost, "/api/sources", admin, map[string]string{"name": "Manual", "url": "https://example.org/"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var source model.Source
	decode(t, rec, &source)

	for i, ts := range []string{"2025-11-20T10:00:00", "2025-11-21T10:00:00", "2025-11-22T10:00:00"} {
		rec = s.do(t, http.MethodPost, "/api/indicators", admin, map[string]interface{}{
			"type":      "pm10",
			"value":     20 + i,
			"unit":      "µg/m³",
			"timestamp": ts,
			"zone_id":   zone.ID,
			"source_id": source.ID,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	t.Run("unknown zone reference", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/indicators", admin, map[string]interface{}{
			"type": "pm10", "value": 1, "unit": "u", "timestamp": "2025-11-20T10:00:00",
			"zone_id": 999, "source_id": source.ID,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REFERENCE", errorCode(t, rec))
	})

	t.Run("filtered list", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/indicators?indicator_type=pm10&from_date=2025-11-21", reader, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list []model.Indicator
		decode(t, rec, &list)
		assert.Len(t, list, 2)

		rec = s.do(t, http.MethodGet, "/api/indicators?limit=0", reader, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())

		rec = s.do(t, http.MethodGet, "/api/indicators?zone_id=abc", reader, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("average", func(t *testing.T) {
		path := fmt.Sprintf("/api/stats/average?indicator_type=pm10&zone_id=%d", zone.ID)
		rec := s.do(t, http.MethodGet, path, reader, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var avg struct {
			Average float64 `json:"average"`
			Count   int     `json:"count"`
		}
		decode(t, rec, &avg)
		assert.InDelta(t, 21.0, avg.Average, 1e-9)
		assert.Equal(t, 3, avg.Count)
	})

	t.Run("average without data", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/stats/average?indicator_type=no2", reader, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NO_DATA", errorCode(t, rec))
	})

	t.Run("time series", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/stats/timeseries?indicator_type=pm10&group_by=day", reader, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var series struct {
			Labels []string `json:"labels"`
			Series []struct {
				Name string    `json:"name"`
				Data []float64 `json:"data"`
			} `json:"series"`
		}
		decode(t, rec, &series)
		assert.Equal(t, []string{"2025-11-20", "2025-11-21", "2025-11-22"}, series.Labels)
		require.Len(t, series.Series, 1)
		assert.Equal(t, []float64{20, 21, 22}, series.Series[0].Data)

		rec = s.do(t, http.MethodGet, "/api/stats/timeseries?indicator_type=pm10&group_by=week", reader, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("referenced zone cannot be deleted", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, fmt.Sprintf("/api/zones/%d", zone.ID), admin, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "REFERENCE_IN_USE", errorCode(t, rec))
	})

	t.Run("missing zone", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/zones/999", reader, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestIngestEndpoints(t *testing.T) {
	series := &weather.HourlySeries{}
	start := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24; i++ {
		series.Times = append(series.Times, start.Add(time.Duration(i)*time.Hour))
		series.Temperature = append(series.Temperature, float64(i))
		series.WindSpeed = append(series.WindSpeed, 2*float64(i))
	}

	csvPath := filepath.Join(t.TempDir(), "pollution.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"date,zone_name,postal_code,indicator_type,value,unit\n"+
			"2025-11-20,Lyon,69000,pm10,18.5,µg/m³\n"+
			"2025-11-20,Lille,59000,no2,31,µg/m³\n"), 0o600))

	s := newTestServer(t, fixedFetcher{series: series}, csvPath)
	admin := s.adminToken(t)
	reader := s.userToken(t, "viewer@example.com")

	t.Run("weather requires admin", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/ingest/weather", reader, map[string]interface{}{"city": "Paris", "latitude": 48.8566, "longitude": 2.3522})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("weather", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/ingest/weather", admin, map[string]interface{}{
			"city": "Paris", "postal_code": "75000", "latitude": 48.8566, "longitude": 2.3522,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var result struct {
			Feed       string `json:"feed"`
			Indicators int    `json:"indicators"`
		}
		decode(t, rec, &result)
		assert.Equal(t, "open-meteo", result.Feed)
		assert.Equal(t, 48, result.Indicators)
	})

	t.Run("weather rejects bad latitude", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/ingest/weather", admin, map[string]interface{}{"city": "Nowhere", "latitude": 123.0, "longitude": 0.0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("csv", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/ingest/csv", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var result struct {
			Indicators   int `json:"indicators"`
			ZonesCreated int `json:"zones_created"`
		}
		decode(t, rec, &result)
		assert.Equal(t, 2, result.Indicators)
		assert.Equal(t, 2, result.ZonesCreated)
	})
}

func TestProviderFailureIsBadGateway(t *testing.T) {
	s := newTestServer(t, fixedFetcher{err: fmt.Errorf("%w: status 500", apperrors.ErrExternalFeed)}, "")
	admin := s.adminToken(t)

	rec := s.do(t, http.MethodPost, "/api/ingest/weather", admin, map[string]interface{}{"city": "Paris", "latitude": 48.8566, "longitude": 2.3522})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "EXTERNAL_FEED_ERROR", errorCode(t, rec))

	var zones int64
	require.NoError(t, s.db.Model(&model.Zone{}).Count(&zones).Error)
	assert.Zero(t, zones)
}

func TestUnknownRouteAndHealth(t *testing.T) {
	s := newTestServer(t, fixedFetcher{}, "")

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
