package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/bfhl/internal/lib/gemini"
	"github.com/deppfellow/bfhl/internal/server"
)

const (
	// PromptPrefix is prepended to every user prompt.
	PromptPrefix = "Answer in ONE WORD only. "

	// UnknownAnswer replaces the answer whenever the upstream call fails.
	UnknownAnswer = "Unknown"
)

// Generator produces text for a prompt. *gemini.Client implements it.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Outcome classifies how an AI request ended.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeCallFailed  Outcome = "call_failed"
	OutcomeUnparseable Outcome = "unparseable"
)

// Answer is the result of an AI request. Failures are not errors at the
// API boundary; they still produce an Answer whose Value is UnknownAnswer.
type Answer struct {
	Outcome Outcome
	Text    string
	Err     error
}

// Value is what the client receives as data.
func (a Answer) Value() string {
	if a.Outcome == OutcomeOK {
		return a.Text
	}
	return UnknownAnswer
}

type AIService struct {
	server    *server.Server
	generator Generator
}

func NewAIService(s *server.Server, generator Generator) *AIService {
	return &AIService{
		server:    s,
		generator: generator,
	}
}

// Ask sends prompt to the generator and cleans the reply. It never
// returns an error; see Answer.
func (s *AIService) Ask(ctx context.Context, prompt string) Answer {
	operationsTotal.WithLabelValues(OpAI.String()).Inc()

	start := time.Now()
	answer := s.ask(ctx, prompt)
	aiAnswersTotal.WithLabelValues(string(answer.Outcome)).Inc()

	if answer.Err != nil {
		logger := zerolog.Ctx(ctx)
		if logger.GetLevel() == zerolog.Disabled {
			logger = s.server.Logger
		}

		logger.Warn().
			Err(answer.Err).
			Str("outcome", string(answer.Outcome)).
			Dur("duration", time.Since(start)).
			Msg("AI answer unavailable, falling back")
	}

	return answer
}

func (s *AIService) ask(ctx context.Context, prompt string) Answer {
	if s.generator == nil {
		return Answer{Outcome: OutcomeCallFailed, Err: errors.New("no generator configured")}
	}

	text, err := s.generator.GenerateContent(ctx, PromptPrefix+prompt)
	switch {
	case errors.Is(err, gemini.ErrUnparseable):
		return Answer{Outcome: OutcomeUnparseable, Err: err}
	case err != nil:
		return Answer{Outcome: OutcomeCallFailed, Err: err}
	case text == "":
		return Answer{Outcome: OutcomeUnparseable, Err: errors.New("empty answer")}
	}

	return Answer{Outcome: OutcomeOK, Text: CleanAnswer(text)}
}

// CleanAnswer trims text and keeps only ASCII letters, digits and
// underscores. The result may be empty.
func CleanAnswer(text string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(text) {
		if r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
