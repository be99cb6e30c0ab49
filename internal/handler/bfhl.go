package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"

	"github.com/deppfellow/bfhl/internal/middleware"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/deppfellow/bfhl/internal/service"
	"github.com/deppfellow/bfhl/internal/validation"
)

// BFHLHandler serves POST /bfhl: one request, one operation.
type BFHLHandler struct {
	Handler
	services *service.Services
}

// SuccessResponse is the body of every successful /bfhl response.
// Data is whatever the chosen operation produced.
type SuccessResponse struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email"`
	Data          any    `json:"data"`
}

func NewBFHLHandler(s *server.Server, services *service.Services) *BFHLHandler {
	return &BFHLHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// NewOperationRequest allocates the payload for one /bfhl request.
func NewOperationRequest() *validation.OperationRequest {
	return &validation.OperationRequest{}
}

// Process runs the operation selected by the validated request.
func (h *BFHLHandler) Process(c echo.Context, req *validation.OperationRequest) (*SuccessResponse, error) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute("bfhl.operation", req.Operation.String())
	}

	var data any

	switch req.Operation {
	case service.OpFibonacci:
		data = h.services.Compute.Fibonacci(req.Count)

	case service.OpPrime:
		data = h.services.Compute.Primes(req.Items)

	case service.OpLCM:
		lcm, err := h.services.Compute.LCM(req.Items)
		if err != nil {
			return nil, err
		}
		data = lcm

	case service.OpHCF:
		hcf, err := h.services.Compute.HCF(req.Items)
		if err != nil {
			return nil, err
		}
		data = hcf

	case service.OpAI:
		answer := h.services.AI.Ask(c.Request().Context(), req.Prompt)
		middleware.GetLogger(c).Debug().
			Str("outcome", string(answer.Outcome)).
			Msg("AI answered")
		data = answer.Value()

	default:
		// Validation only lets known operations through.
		return nil, errors.Errorf("unhandled operation %q", req.Operation)
	}

	return &SuccessResponse{
		IsSuccess:     true,
		OfficialEmail: h.server.Config.Primary.OfficialEmail,
		Data:          data,
	}, nil
}
