// Package httpclient provides an instrumented http.Client for
// outbound calls.
package httpclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/promptelo/promptelo/internal/logging"
)

type Config struct {
	Name    string
	Timeout time.Duration
}

// New returns a client whose requests are logged as wide events under
// the given name.
func New(cfg Config) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &loggingTransport{
			RoundTripper: http.DefaultTransport,
			name:         cfg.Name,
		},
	}
}

type loggingTransport struct {
	http.RoundTripper
	name string
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	ctx, event := logging.NewEventContext(r.Context())
	event.Add(
		slog.String("http_client", t.name),
		slog.String("method", r.Method),
		slog.String("url", r.URL.String()),
	)

	resp, err := t.RoundTripper.RoundTrip(r.WithContext(ctx))

	duration := time.Since(start)

	if err != nil {
		event.Add(
			slog.String("outcome", "error"),
			slog.String("error", err.Error()),
			slog.Float64("duration_ms", float64(duration.Milliseconds())),
		)
		logging.Get().Log(ctx, slog.LevelError, "http request failed", event.Attrs()...)
		return nil, err
	}

	event.Add(
		slog.Int("status", resp.StatusCode),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	level := slog.LevelInfo
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}

	logging.Get().Log(ctx, level, "http request completed", event.Attrs()...)
	return resp, nil
}
