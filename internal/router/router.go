// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the routes,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bfhl/internal/handler"
	"github.com/deppfellow/bfhl/internal/middleware"
	"github.com/deppfellow/bfhl/internal/server"
)

// NewRouter builds the Echo instance with every middleware and route.
//
// Order matters: the request ID must exist before the New Relic and
// context middlewares read it, and the context logger must exist before
// the request logger and handlers use it.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middleware.Metrics(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)

	router.POST("/bfhl", handler.Handle(
		h.BFHL.Handler,
		h.BFHL.Process,
		http.StatusOK,
		handler.NewOperationRequest,
	), middlewares.RateLimit.Limit())

	return router
}
