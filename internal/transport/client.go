// Package transport implements the request/response boundary to the
// remote chat endpoint.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-console/internal/models"
	"ai-chat-console/internal/observability/logging"
)

// TransportError reports a failed call against the chat endpoint. It
// carries the response status and body when a response was received,
// or wraps the underlying network error otherwise.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chat transport: %v", e.Err)
	}
	return fmt.Sprintf("chat transport: status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Client is a single-attempt HTTP client for the chat endpoints.
// No retry, no backoff; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a chat transport client. A zero timeout disables
// the client-side deadline entirely, reproducing the original
// behavior where a hung request hangs the pending flag.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.WithComponent("transport"),
	}
}

// FetchHistory retrieves the prior transcript for the user. A
// non-success status means "no history" and yields an empty slice
// with no error; only a network-level failure returns an error.
func (c *Client) FetchHistory(ctx context.Context, userID string) ([]models.Message, error) {
	endpoint := c.baseURL + "/chats/" + url.PathEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("history unavailable")
		return []models.Message{}, nil
	}

	var history []models.Message
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, &TransportError{Err: err}
	}
	return history, nil
}

// Send posts one user message and returns the assistant's reply.
// Any non-success status or network failure yields a *TransportError,
// carrying the response body text when available.
func (c *Client) Send(ctx context.Context, userID, text string) (string, error) {
	payload, err := json.Marshal(chatRequest{UserID: userID, Message: text})
	if err != nil {
		return "", &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{Status: resp.StatusCode, Body: string(body)}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &TransportError{Err: err}
	}
	return out.Reply, nil
}
