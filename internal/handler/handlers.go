package handler

import (
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/deppfellow/bfhl/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health  *HealthHandler  // Health serves the liveness endpoint.
	BFHL    *BFHLHandler    // BFHL dispatches the /bfhl operations.
	OpenAPI *OpenAPIHandler // OpenAPI serves API documentation.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		BFHL:    NewBFHLHandler(s, services),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
