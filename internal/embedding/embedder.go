// Package embedding turns prompt text into fixed-dimension vectors via
// an OpenAI-compatible provider.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/promptelo/promptelo/internal/llm"
)

const (
	// Model is the provider model whose vectors we store. Changing it
	// requires a schema migration because the column dimension is fixed.
	Model = "text-embedding-3-small"

	// Dimension of the vectors produced by Model.
	Dimension = 1536

	// maxChars truncates oversized input before embedding. The model
	// accepts 8191 tokens; four characters per token is a safe estimate.
	maxChars = 8191 * 4
)

var (
	// ErrNoAPIKey means the provider credential was never configured.
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable is required")

	// ErrNoEmbedding means the provider answered without any vector.
	ErrNoEmbedding = errors.New("no embedding returned")
)

type Embedder struct {
	client  llm.EmbeddingClient
	limiter *rate.Limiter
	hasKey  bool
}

// New builds an Embedder around the given client. outboundRate bounds
// calls to the provider; zero disables pacing.
func New(client llm.EmbeddingClient, hasKey bool, outboundRate rate.Limit) *Embedder {
	var limiter *rate.Limiter
	if outboundRate > 0 {
		limiter = rate.NewLimiter(outboundRate, int(outboundRate)+1)
	}
	return &Embedder{
		client:  client,
		limiter: limiter,
		hasKey:  hasKey,
	}
}

// Embed returns the vector for text, truncating oversized input first.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if !e.hasKey {
		return nil, ErrNoAPIKey
	}

	if utf8.RuneCountInString(text) > maxChars {
		runes := []rune(text)
		text = string(runes[:maxChars])
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := e.client.Embed(ctx, llm.EmbeddingRequest{
		Model: Model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoEmbedding
	}

	vec := resp.Data[0].Embedding
	if len(vec) != Dimension {
		return nil, fmt.Errorf("provider returned %d dimensions, want %d", len(vec), Dimension)
	}

	return vec, nil
}

// Healthy reports whether the provider answers a minimal request.
func (e *Embedder) Healthy(ctx context.Context) bool {
	if !e.hasKey {
		return false
	}

	_, err := e.client.Embed(ctx, llm.EmbeddingRequest{
		Model: Model,
		Input: "test",
	})
	return err == nil
}

// IsUnavailable distinguishes a missing/rejected credential from a
// provider-side failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNoAPIKey) || llm.IsAuthError(err)
}
