package api

import "time"

// Version reported by the health and root endpoints.
const Version = "0.1.0"

// ScoreRequest is the body of POST /api/v1/score.
type ScoreRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=10000"`
	UserID string `json:"user_id,omitempty" validate:"omitempty,max=64"`
}

// NoveltyResult is the novelty portion of a score response.
type NoveltyResult struct {
	NoveltyScore float64 `json:"novelty_score"`
	Percentile   float64 `json:"percentile"`
	SimilarCount int     `json:"similar_count"`
	IsNovel      bool    `json:"is_novel"`
}

// ScoreResponse is the body of a successful score call.
type ScoreResponse struct {
	Novelty      NoveltyResult `json:"novelty"`
	TotalPrompts int           `json:"total_prompts"`
	Timestamp    time.Time     `json:"timestamp"`
}

// HealthResponse reports partial failures as "degraded", never a 5xx.
type HealthResponse struct {
	Status            string `json:"status"`
	DatabaseConnected bool   `json:"database_connected"`
	EmbeddingService  bool   `json:"embedding_service"`
	Version           string `json:"version"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
