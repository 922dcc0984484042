package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/promptelo/promptelo/internal/novelty"
)

// Stats is the corpus-wide snapshot returned by GET /api/v1/stats.
// Only scores and counts leave this package, never prompt content.
type Stats struct {
	TotalPrompts         int                `json:"total_prompts"`
	UniqueUsers          int                `json:"unique_users"`
	AvgNoveltyScore      float64            `json:"avg_novelty_score"`
	PercentileThresholds map[string]float64 `json:"percentile_thresholds"`
	TopNoveltyScores     []float64          `json:"top_novelty_scores"`
}

// vectorLiteral renders a vector in pgvector's input syntax.
func vectorLiteral(vec []float64) string {
	var b strings.Builder
	b.Grow(len(vec) * 10)
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// Insert stores a scored embedding and returns its id. Records are
// append-only; nothing in this service updates or deletes them.
func (s *Store) Insert(ctx context.Context, vec []float64, noveltyScore float64, userID string) (int64, error) {
	var user *string
	if userID != "" {
		user = &userID
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO prompt_embeddings (embedding, novelty_score, user_id)
		 VALUES ($1::vector, $2, $3)
		 RETURNING id`,
		vectorLiteral(vec), noveltyScore, user,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to store embedding: %w", err)
	}

	return id, nil
}

// FindSimilar returns matches with cosine similarity >= threshold,
// most similar first.
func (s *Store) FindSimilar(ctx context.Context, vec []float64, threshold float64, limit int) ([]novelty.Match, error) {
	if limit <= 0 {
		limit = 100
	}

	// pgvector's <=> operator is cosine distance (1 - similarity).
	distanceThreshold := 1 - threshold

	rows, err := s.pool.Query(ctx,
		`SELECT
			id,
			1 - (embedding <=> $1::vector) AS similarity,
			novelty_score
		 FROM prompt_embeddings
		 WHERE (embedding <=> $1::vector) < $2
		 ORDER BY embedding <=> $1::vector
		 LIMIT $3`,
		vectorLiteral(vec), distanceThreshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	defer rows.Close()

	var matches []novelty.Match
	for rows.Next() {
		var m novelty.Match
		if err := rows.Scan(&m.ID, &m.Similarity, &m.NoveltyScore); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// TotalCount returns the number of stored embeddings.
func (s *Store) TotalCount(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM prompt_embeddings").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return count, nil
}

// PercentileRank returns the fraction of stored novelty scores strictly
// below score, as 0-100. An empty corpus defaults to the median.
func (s *Store) PercentileRank(ctx context.Context, score float64) (float64, error) {
	var lower, total int
	err := s.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE novelty_score < $1),
			COUNT(*)
		 FROM prompt_embeddings`,
		score,
	).Scan(&lower, &total)
	if err != nil {
		return 0, fmt.Errorf("failed to compute percentile: %w", err)
	}

	if total == 0 {
		return 50.0, nil
	}

	return float64(lower) / float64(total) * 100, nil
}

// GlobalStats computes the snapshot live on every call.
func (s *Store) GlobalStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		AvgNoveltyScore: 0.5,
		PercentileThresholds: map[string]float64{
			"p50": 0.5, "p75": 0.65, "p90": 0.78, "p95": 0.85, "p99": 0.92,
		},
		TopNoveltyScores: []float64{},
	}

	var avg *float64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT user_id), AVG(novelty_score)
		 FROM prompt_embeddings`,
	).Scan(&stats.TotalPrompts, &stats.UniqueUsers, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus counts: %w", err)
	}
	if avg != nil {
		stats.AvgNoveltyScore = *avg
	}

	var p50, p75, p90, p95, p99 *float64
	err = s.pool.QueryRow(ctx,
		`SELECT
			PERCENTILE_CONT(0.50) WITHIN GROUP (ORDER BY novelty_score),
			PERCENTILE_CONT(0.75) WITHIN GROUP (ORDER BY novelty_score),
			PERCENTILE_CONT(0.90) WITHIN GROUP (ORDER BY novelty_score),
			PERCENTILE_CONT(0.95) WITHIN GROUP (ORDER BY novelty_score),
			PERCENTILE_CONT(0.99) WITHIN GROUP (ORDER BY novelty_score)
		 FROM prompt_embeddings`,
	).Scan(&p50, &p75, &p90, &p95, &p99)
	if err != nil {
		return nil, fmt.Errorf("failed to read percentiles: %w", err)
	}
	for key, val := range map[string]*float64{"p50": p50, "p75": p75, "p90": p90, "p95": p95, "p99": p99} {
		if val != nil {
			stats.PercentileThresholds[key] = *val
		}
	}

	rows, err := s.pool.Query(ctx,
		`SELECT novelty_score
		 FROM prompt_embeddings
		 ORDER BY novelty_score DESC
		 LIMIT 10`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read top scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		stats.TopNoveltyScores = append(stats.TopNoveltyScores, score)
	}

	return stats, rows.Err()
}
