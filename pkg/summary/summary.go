// Package summary generates short AI descriptions of search results
// through an OpenAI-compatible chat completions endpoint. Summaries
// are decorative; every failure degrades to a placeholder string
// instead of an error.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/log"
)

var logger = log.ForComponent("summary")

// Placeholder texts, returned verbatim so clients can detect them.
const (
	NotConfigured = "AI summary not available - API key not configured"
	Unavailable   = "Summary not available"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// Client calls a chat completions API to summarize results.
type Client struct {
	apiKey   string
	endpoint string
	model    string
	http     *http.Client
}

// NewClient creates a summary client. Empty endpoint and model get
// defaults; an empty apiKey disables the client without error.
func NewClient(apiKey, endpoint, model string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	MaxTok   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate returns a one-sentence summary for a result. Without an
// API key it returns NotConfigured without touching the network; any
// request failure returns Unavailable.
func (c *Client) Generate(ctx context.Context, r core.Result) string {
	if !c.Enabled() {
		return NotConfigured
	}

	prompt := fmt.Sprintf(
		"Summarize this learning resource in one sentence for a developer choosing what to study.\nTitle: %s\nDescription: %s",
		r.Title(), r.Description())

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You summarize learning resources concisely."},
			{Role: "user", Content: prompt},
		},
		MaxTok: 80,
	})
	if err != nil {
		logger.Debugf("marshaling request: %v", err)
		return Unavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		logger.Debugf("building request: %v", err)
		return Unavailable
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warnf("summary request failed: %v", err)
		return Unavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logger.Warnf("summary request returned status %d", resp.StatusCode)
		return Unavailable
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.Warnf("decoding summary response: %v", err)
		return Unavailable
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return Unavailable
	}
	return parsed.Choices[0].Message.Content
}
