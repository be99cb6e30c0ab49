package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bfhl/internal/middleware"
	"github.com/deppfellow/bfhl/internal/server"
)

// HealthHandler exposes the endpoint uptime monitors and load balancers
// use to verify the service is alive. The service has no downstream
// dependencies to probe, so a response means healthy.
type HealthHandler struct {
	Handler
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email"`
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth always answers 200 with the configured official email.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	middleware.GetLogger(c).Debug().
		Str("operation", "health_check").
		Msg("health check")

	return c.JSON(http.StatusOK, HealthResponse{
		IsSuccess:     true,
		OfficialEmail: h.server.Config.Primary.OfficialEmail,
	})
}
