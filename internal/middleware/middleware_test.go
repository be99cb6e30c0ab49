package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bfhl/internal/config"
	"github.com/deppfellow/bfhl/internal/errs"
	"github.com/deppfellow/bfhl/internal/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.New(io.Discard)
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test", OfficialEmail: "someone@chitkara.edu.in"},
			Server: config.ServerConfig{
				Port:               "0",
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          1,
				BodyLimit:          "1K",
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errs.Envelope {
	t.Helper()

	var env errs.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"http error", errs.NewBadRequestError(errs.MsgInvalidKey), http.StatusBadRequest, errs.MsgInvalidKey},
		{"wrapped http error", errors.Wrap(errs.NewBadRequestError("x"), "ctx"), http.StatusBadRequest, "x"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, errs.MsgRouteNotFound},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, errs.MsgMethodNotAllowed},
		{"body too large", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, errs.MsgRequestBodyTooLarge},
		{"too many requests", echo.ErrTooManyRequests, http.StatusTooManyRequests, errs.MsgTooManyRequests},
		{"echo bind error", echo.NewHTTPError(http.StatusBadRequest, "Syntax error"), http.StatusBadRequest, errs.MsgInvalidJSON},
		{"echo 5xx", echo.ErrServiceUnavailable, http.StatusInternalServerError, errs.MsgInternalServerError},
		{"unknown error", errors.New("boom: secret detail"), http.StatusInternalServerError, errs.MsgInternalServerError},
	}

	global := NewGlobalMiddlewares(newTestServer(t))
	e := echo.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/bfhl", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.IsSuccess)
			assert.Equal(t, tt.message, env.Error)
			assert.NotContains(t, rec.Body.String(), "secret")
		})
	}
}

func TestGlobalErrorHandlerCommittedResponse(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer(t))
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	global.GlobalErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFromError(errs.NewBadRequestError("x")))
	assert.Equal(t, http.StatusNotFound, StatusFromError(echo.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, StatusFromError(errors.New("x")))
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestEnhanceContextStoresLogger(t *testing.T) {
	ce := NewContextEnhancer(newTestServer(t))
	e := echo.New()

	var fromEcho, fromCtx *zerolog.Logger
	handler := ce.EnhanceContext()(func(c echo.Context) error {
		fromEcho = GetLogger(c)
		fromCtx = zerolog.Ctx(c.Request().Context())
		return nil
	})

	require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())))
	require.NotNil(t, fromEcho)
	require.NotNil(t, fromCtx)
	assert.NotEqual(t, zerolog.Disabled, fromEcho.GetLevel())
	assert.NotEqual(t, zerolog.Disabled, fromCtx.GetLevel())
}

func TestGetLoggerWithoutEnhancer(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t)
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/bfhl", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewRateLimitMiddleware(s).Limit())

	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bfhl", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, errs.MsgTooManyRequests, decodeEnvelope(t, rec).Error)
}

func TestRateLimitDisabled(t *testing.T) {
	s := newTestServer(t)
	s.Config.Server.RateLimit = 0

	e := echo.New()
	e.POST("/bfhl", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewRateLimitMiddleware(s).Limit())

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bfhl", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRecoverAnswersGenericError(t *testing.T) {
	s := newTestServer(t)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(global.Recover())
	e.GET("/panic", func(c echo.Context) error {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, errs.MsgInternalServerError, env.Error)
	assert.NotContains(t, rec.Body.String(), "kaboom")
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(global.BodyLimit())
	e.POST("/bfhl", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bfhl", strings.NewReader(strings.Repeat("a", 4096)))
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, errs.MsgRequestBodyTooLarge, decodeEnvelope(t, rec).Error)
}
