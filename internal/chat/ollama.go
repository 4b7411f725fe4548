// Package chat streams conversations through an Ollama server.
package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultModel is the model used when a request does not name one.
const DefaultModel = "gpt-oss:20b"

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to one Ollama server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the Ollama server at baseURL. Streaming
// responses are open-ended, so the HTTP client carries no overall timeout;
// callers bound requests through the context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// Stream sends a chat request and invokes fn once per response chunk, in
// arrival order. A non-empty systemPrompt is prepended as a system message.
// Streaming stops at the first fn error, decode error, or context
// cancellation.
func (c *Client) Stream(ctx context.Context, model string, messages []Message, systemPrompt string, fn func(chunk json.RawMessage) error) error {
	if model == "" {
		model = DefaultModel
	}

	formatted := make([]Message, 0, len(messages)+1)
	if systemPrompt != "" {
		formatted = append(formatted, Message{Role: "system", Content: systemPrompt})
	}
	formatted = append(formatted, messages...)

	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: formatted,
		Stream:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chat request failed: unexpected status %d", resp.StatusCode)
	}

	// The response body is newline-delimited JSON, one object per chunk.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return fmt.Errorf("invalid chunk in chat stream: %q", line)
		}
		chunk := make(json.RawMessage, len(line))
		copy(chunk, line)
		if err := fn(chunk); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("chat stream interrupted: %w", err)
	}
	return nil
}
