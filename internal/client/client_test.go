package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/promptelo/promptelo/internal/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "anon-test", time.Second)
}

func TestScore(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/score" {
			t.Errorf("path = %q", r.URL.Path)
		}

		var req api.ScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.UserID != "anon-test" {
			t.Errorf("user_id = %q", req.UserID)
		}

		json.NewEncoder(w).Encode(api.ScoreResponse{
			Novelty:      api.NoveltyResult{NoveltyScore: 0.8, Percentile: 70},
			TotalPrompts: 10,
		})
	})

	novelty, percentile, err := c.ScoreNovelty("hello")
	if err != nil {
		t.Fatalf("ScoreNovelty() error = %v", err)
	}
	if novelty != 0.8 || percentile != 70 {
		t.Errorf("got (%v, %v), want (0.8, 70)", novelty, percentile)
	}
}

func TestScoreRateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Score(context.Background(), "hello")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("expected 429 Error, got %v", err)
	}
}

func TestScoreConnectionRefused(t *testing.T) {
	c := New("http://127.0.0.1:1", "", time.Second)

	_, err := c.Score(context.Background(), "hello")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
}

func TestStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/stats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"total_prompts": 7, "unique_users": 2, "avg_novelty_score": 0.6}`))
	})

	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalPrompts != 7 || stats.UniqueUsers != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.HealthResponse{Status: "degraded", DatabaseConnected: true})
	})

	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if health.Status != "degraded" {
		t.Errorf("status = %q", health.Status)
	}
}
