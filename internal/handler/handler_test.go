package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bfhl/internal/config"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/deppfellow/bfhl/internal/service"
	"github.com/deppfellow/bfhl/internal/validation"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test", OfficialEmail: "someone@chitkara.edu.in"},
		},
		Logger: &logger,
	}
}

func TestCheckHealth(t *testing.T) {
	h := NewHealthHandler(newTestServer())

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.CheckHealth(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_success":true,"official_email":"someone@chitkara.edu.in"}`, rec.Body.String())
}

func TestProcessUnknownOperation(t *testing.T) {
	s := newTestServer()
	h := NewBFHLHandler(s, service.NewServices(s))

	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/bfhl", nil), httptest.NewRecorder())

	_, err := h.Process(c, &validation.OperationRequest{Operation: "square"})
	assert.Error(t, err)
}

func TestHandleUsesFreshRequestPerCall(t *testing.T) {
	s := newTestServer()
	h := NewBFHLHandler(s, service.NewServices(s))
	e := echo.New()
	e.POST("/bfhl", Handle(h.Handler, h.Process, http.StatusOK, NewOperationRequest))

	bodies := map[string]string{
		`{"fibonacci": 5}`:     `[0,1,1,2,3]`,
		`{"lcm": [4, 6]}`:      `12`,
		`{"hcf": [12, 18]}`:    `6`,
		`{"prime": [2, 3, 4]}`: `[2,3]`,
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for body, want := range bodies {
			wg.Add(1)
			go func(body, want string) {
				defer wg.Done()

				req := httptest.NewRequest(http.MethodPost, "/bfhl", strings.NewReader(body))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, req)

				var resp struct {
					Data json.RawMessage `json:"data"`
				}
				if assert.Equal(t, http.StatusOK, rec.Code) && assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)) {
					assert.JSONEq(t, want, string(resp.Data))
				}
			}(body, want)
		}
	}
	wg.Wait()
}
