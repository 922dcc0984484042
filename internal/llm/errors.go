package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNoAPIKey       = errors.New("API key is required")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrNilContext     = errors.New("context cannot be nil")
)

type APIErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Param      string
	Code       any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

type RateLimitError struct {
	APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status %d): %s", e.StatusCode, e.Message)
}

type AuthenticationError struct {
	APIError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
}

type TimeoutError struct {
	APIError
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout: %s", e.Message)
}

type InvalidRequestError struct {
	APIError
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request (status %d): %s", e.StatusCode, e.Message)
}

func parseAPIError(statusCode int, body []byte) error {
	var resp APIErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return &APIError{
			StatusCode: statusCode,
			Message:    string(body),
		}
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    resp.Error.Message,
		Type:       resp.Error.Type,
		Param:      resp.Error.Param,
		Code:       resp.Error.Code,
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return &AuthenticationError{APIError: *apiErr}
	case http.StatusTooManyRequests:
		return &RateLimitError{
			APIError:   *apiErr,
			RetryAfter: parseRetryAfter(string(body)),
		}
	case http.StatusBadRequest:
		return &InvalidRequestError{APIError: *apiErr}
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return &TimeoutError{APIError: *apiErr}
	default:
		return apiErr
	}
}

func parseRetryAfter(body string) time.Duration {
	lowerBody := strings.ToLower(body)
	idx := strings.Index(lowerBody, "retry-after")
	if idx == -1 {
		return 0
	}

	rest := strings.TrimSpace(body[idx+len("retry-after"):])
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return 0
	}

	if n, err := strconv.Atoi(parts[0]); err == nil {
		now := time.Now()
		// Large values are Unix timestamps, small ones are seconds.
		if retryTime := time.Unix(int64(n), 0); retryTime.After(now.Add(time.Hour)) {
			return retryTime.Sub(now)
		}
		return time.Duration(n) * time.Second
	}

	return 0
}

func IsRateLimitError(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

func IsAuthError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

func IsRetryableError(err error) bool {
	if IsRateLimitError(err) {
		return true
	}
	if IsTimeoutError(err) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 && apiErr.StatusCode < 600
	}

	return false
}
