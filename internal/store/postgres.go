// Package store persists prompt embeddings in PostgreSQL with pgvector
// and computes corpus statistics over them.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptelo/promptelo/internal/embedding"
)

const (
	minPoolConns = 2
	maxPoolConns = 10
)

type Store struct {
	pool *pgxpool.Pool
}

// New opens a bounded connection pool and ensures the schema exists.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	cfg.MinConns = minPoolConns
	cfg.MaxConns = maxPoolConns
	cfg.ConnConfig.ConnectTimeout = 60 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS prompt_embeddings (
			id SERIAL PRIMARY KEY,
			embedding vector(%d) NOT NULL,
			novelty_score FLOAT NOT NULL,
			user_id VARCHAR(64),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`, embedding.Dimension),

		// IVFFlat keeps similarity search fast as the corpus grows.
		`CREATE INDEX IF NOT EXISTS prompt_embeddings_embedding_idx
			ON prompt_embeddings
			USING ivfflat (embedding vector_cosine_ops)
			WITH (lists = 100)`,

		`CREATE INDEX IF NOT EXISTS prompt_embeddings_user_id_idx
			ON prompt_embeddings (user_id)`,

		// Cache slot for global stats. The stats path computes live
		// values instead; a background refresher could populate this.
		`CREATE TABLE IF NOT EXISTS global_stats_cache (
			id INTEGER PRIMARY KEY DEFAULT 1,
			total_prompts INTEGER DEFAULT 0,
			unique_users INTEGER DEFAULT 0,
			avg_novelty_score FLOAT DEFAULT 0.5,
			percentile_50 FLOAT DEFAULT 0.5,
			percentile_75 FLOAT DEFAULT 0.65,
			percentile_90 FLOAT DEFAULT 0.78,
			percentile_95 FLOAT DEFAULT 0.85,
			percentile_99 FLOAT DEFAULT 0.92,
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK (id = 1)
		)`,

		`INSERT INTO global_stats_cache (id) VALUES (1)
			ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Healthy reports whether the database answers a trivial query.
func (s *Store) Healthy(ctx context.Context) bool {
	var one int
	return s.pool.QueryRow(ctx, "SELECT 1").Scan(&one) == nil
}

func (s *Store) Close() {
	s.pool.Close()
}
