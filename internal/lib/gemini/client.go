// Package gemini provides a minimal client for the Gemini
// generateContent REST endpoint.
//
// Only the single-turn text request used by the AI operation is
// supported. The HTTP transport is wrapped by New Relic so outbound calls
// show up as external segments of the active transaction.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/bfhl/internal/config"
)

// maxResponseBytes bounds how much of an upstream body is read.
const maxResponseBytes = 1 << 20

var (
	// ErrCallFailed covers transport errors, timeouts and non-2xx replies.
	ErrCallFailed = errors.New("gemini call failed")

	// ErrUnparseable means the reply arrived but carried no usable text.
	ErrUnparseable = errors.New("gemini response unparseable")
)

// Client talks to the generateContent endpoint.
type Client struct {
	// httpClient carries the New Relic round tripper.
	httpClient *http.Client

	endpoint string
	apiKey   string
	timeout  time.Duration

	logger *zerolog.Logger
}

// NewClient creates a Client from the Gemini section of the config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: newrelic.NewRoundTripper(http.DefaultTransport),
		},
		endpoint: cfg.Gemini.Endpoint,
		apiKey:   cfg.Gemini.APIKey,
		timeout:  cfg.Gemini.Timeout,
		logger:   logger,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends prompt as a single user turn and returns the text
// of the first part of the first candidate, untouched.
//
// Errors wrap ErrCallFailed or ErrUnparseable so callers can tell a dead
// upstream from a malformed one with errors.Is.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqURL, err := c.requestURL()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCallFailed, err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", ErrCallFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrCallFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCallFailed, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gemini responded")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrCallFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrCallFailed, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnparseable, err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidate text", ErrUnparseable)
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate text", ErrUnparseable)
	}

	return text, nil
}

// requestURL appends the API key as the "key" query parameter.
func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
