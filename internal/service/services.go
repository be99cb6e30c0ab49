// Package service contains the business logic.
//
// It sits between the handler layer and the libraries that do
// the actual work. It receives validated input from the handler,
// runs the selected operation and returns plain values the
// handler can serialize
package service

import (
	"github.com/deppfellow/bfhl/internal/server"
)

type Services struct {
	Compute *ComputeService
	AI      *AIService
}

func NewServices(s *server.Server) *Services {
	// Keep the interface nil when no client is wired.
	var generator Generator
	if s.Gemini != nil {
		generator = s.Gemini
	}

	return &Services{
		Compute: NewComputeService(s),
		AI:      NewAIService(s, generator),
	}
}
