// Package client talks to the PromptElo community server from the
// local scorer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/promptelo/promptelo/internal/api"
	"github.com/promptelo/promptelo/internal/store"
)

// Error is the single recoverable failure category on the client
// side; the scorer's degradation path consumes it without caring why
// the server was unreachable.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// healthTimeout bounds the health probe regardless of configuration.
const healthTimeout = 5 * time.Second

type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

func New(serverURL, userID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(serverURL, "/"),
		userID:     userID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Score submits a prompt for novelty scoring.
func (c *Client) Score(ctx context.Context, prompt string) (*api.ScoreResponse, error) {
	body, err := json.Marshal(api.ScoreRequest{Prompt: prompt, UserID: c.userID})
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/score", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &Error{Message: "Rate limit exceeded. Please try again later.", Status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("API error: %d", resp.StatusCode), Status: resp.StatusCode}
	}

	var result api.ScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed response: %v", err)}
	}

	return &result, nil
}

// ScoreNovelty adapts Score to the local scorer's provider interface.
func (c *Client) ScoreNovelty(prompt string) (float64, float64, error) {
	resp, err := c.Score(context.Background(), prompt)
	if err != nil {
		return 0, 0, err
	}
	return resp.Novelty.NoveltyScore, resp.Novelty.Percentile, nil
}

// Stats fetches the corpus-wide snapshot.
func (c *Client) Stats(ctx context.Context) (*store.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/stats", nil)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("API error: %d", resp.StatusCode), Status: resp.StatusCode}
	}

	var stats store.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed response: %v", err)}
	}

	return &stats, nil
}

// Health probes the server with its own short timeout.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("health check failed: %d", resp.StatusCode), Status: resp.StatusCode}
	}

	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed response: %v", err)}
	}

	return &health, nil
}

func connectionError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Message: "Request timed out. Server may be unavailable."}
	}
	return &Error{Message: "Could not connect to PromptElo server."}
}
