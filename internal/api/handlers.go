// Package api implements the PromptElo scoring endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/promptelo/promptelo/internal/embedding"
	"github.com/promptelo/promptelo/internal/logging"
	"github.com/promptelo/promptelo/internal/metrics"
	"github.com/promptelo/promptelo/internal/novelty"
	"github.com/promptelo/promptelo/internal/store"
	"github.com/promptelo/promptelo/internal/validator"
)

// SimilarityThreshold is the cosine floor for the live scoring path.
const SimilarityThreshold = 0.70

// searchLimit caps how many neighbors a single query may return.
const searchLimit = 100

// Storage is the corpus the service reads and appends to.
type Storage interface {
	Insert(ctx context.Context, vec []float64, noveltyScore float64, userID string) (int64, error)
	FindSimilar(ctx context.Context, vec []float64, threshold float64, limit int) ([]novelty.Match, error)
	TotalCount(ctx context.Context) (int, error)
	PercentileRank(ctx context.Context, score float64) (float64, error)
	GlobalStats(ctx context.Context) (*store.Stats, error)
	Healthy(ctx context.Context) bool
}

// Embedder turns prompt text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Healthy(ctx context.Context) bool
}

type Handler struct {
	storage  Storage
	embedder Embedder
}

func NewHandler(storage Storage, embedder Embedder) *Handler {
	return &Handler{
		storage:  storage,
		embedder: embedder,
	}
}

// RegisterRoutes wires the API onto mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/score", h.HandleScore)
	mux.HandleFunc("GET /api/v1/stats", h.HandleStats)
	mux.HandleFunc("GET /api/v1/health", h.HandleHealth)
	mux.HandleFunc("GET /{$}", h.HandleRoot)
}

// HandleScore embeds the prompt, searches for precedents, derives a
// novelty score, appends the record and reports the percentile rank.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := validator.Validate(req); err != nil {
		sendError(w, http.StatusBadRequest, "Prompt must be between 1 and 10000 characters")
		return
	}

	start := time.Now()
	vec, err := h.embedder.Embed(ctx, req.Prompt)
	if err != nil {
		metrics.EmbeddingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		if embedding.IsUnavailable(err) {
			sendError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.Get().Error("embedding failed", "error", err)
		sendError(w, http.StatusInternalServerError, "Internal error: embedding request failed")
		return
	}
	metrics.EmbeddingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	matches, err := h.storage.FindSimilar(ctx, vec, SimilarityThreshold, searchLimit)
	if err != nil {
		logging.Get().Error("similarity search failed", "error", err)
		sendError(w, http.StatusInternalServerError, "Internal error: similarity search failed")
		return
	}

	noveltyScore := novelty.Score(matches)

	if _, err := h.storage.Insert(ctx, vec, noveltyScore, req.UserID); err != nil {
		logging.Get().Error("insert failed", "error", err)
		sendError(w, http.StatusInternalServerError, "Internal error: failed to store embedding")
		return
	}

	percentile, err := h.storage.PercentileRank(ctx, noveltyScore)
	if err != nil {
		logging.Get().Error("percentile failed", "error", err)
		sendError(w, http.StatusInternalServerError, "Internal error: failed to compute percentile")
		return
	}

	total, err := h.storage.TotalCount(ctx)
	if err != nil {
		logging.Get().Error("count failed", "error", err)
		sendError(w, http.StatusInternalServerError, "Internal error: failed to count prompts")
		return
	}

	metrics.PromptsScored.Inc()
	metrics.NoveltyScores.Observe(noveltyScore)
	logging.AddToEvent(ctx,
		slog.Float64("novelty_score", noveltyScore),
		slog.Float64("percentile", percentile),
		slog.Int("similar_count", len(matches)),
	)

	sendJSON(w, http.StatusOK, ScoreResponse{
		Novelty: NoveltyResult{
			NoveltyScore: noveltyScore,
			Percentile:   percentile,
			SimilarCount: len(matches),
			IsNovel:      percentile >= 85,
		},
		TotalPrompts: total,
		Timestamp:    time.Now().UTC(),
	})
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.storage.GlobalStats(r.Context())
	if err != nil {
		logging.Get().Error("stats failed", "error", err)
		sendError(w, http.StatusInternalServerError, "Internal error: failed to compute statistics")
		return
	}

	sendJSON(w, http.StatusOK, stats)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthy := h.storage.Healthy(r.Context())
	embeddingHealthy := h.embedder.Healthy(r.Context())

	status := "healthy"
	if !dbHealthy || !embeddingHealthy {
		status = "degraded"
	}

	sendJSON(w, http.StatusOK, HealthResponse{
		Status:            status,
		DatabaseConnected: dbHealthy,
		EmbeddingService:  embeddingHealthy,
		Version:           Version,
	})
}

func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{
		"name":    "PromptElo API",
		"version": Version,
		"health":  "/api/v1/health",
	})
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		logging.Get().Error("failed to encode response", "error", err)
	}
}

func sendError(w http.ResponseWriter, status int, detail string) {
	sendJSON(w, status, ErrorResponse{Detail: detail})
}
