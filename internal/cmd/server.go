package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/promptelo/promptelo/internal/api"
	"github.com/promptelo/promptelo/internal/config"
	"github.com/promptelo/promptelo/internal/embedding"
	"github.com/promptelo/promptelo/internal/httpclient"
	"github.com/promptelo/promptelo/internal/llm"
	"github.com/promptelo/promptelo/internal/logging"
	"github.com/promptelo/promptelo/internal/middleware"
	"github.com/promptelo/promptelo/internal/ratelimit"
	"github.com/promptelo/promptelo/internal/store"
)

// outboundEmbedRate caps calls to the embedding provider so one busy
// deploy cannot burn through the provider quota.
const outboundEmbedRate = rate.Limit(5)

// newEmbedder builds the provider client. A missing credential is not
// fatal: the embedder reports unavailable and the service runs
// degraded, answering score requests with 400.
func newEmbedder(cfg *config.Config) (*embedding.Embedder, error) {
	opts := []llm.ClientOption{
		llm.WithBaseURL(llm.URLOpenAI),
		llm.WithModel(embedding.Model),
		llm.WithTimeout(cfg.EmbeddingTimeout),
		llm.WithHTTPClient(httpclient.New(httpclient.Config{
			Name:    "embeddings",
			Timeout: cfg.EmbeddingTimeout,
		})),
	}
	if cfg.OpenAIAPIKey != "" {
		opts = append(opts, llm.WithAPIKey(cfg.OpenAIAPIKey))
	}

	llmClient, err := llm.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	return embedding.New(llmClient, cfg.OpenAIAPIKey != "", outboundEmbedRate), nil
}

func RunServer() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logging.Init()
	logger := logging.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		panic(err)
	}
	defer st.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		logger.Error("failed to build embedding client", "error", err)
		panic(err)
	}

	limiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	go limiter.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	api.NewHandler(st, embedder).RegisterRoutes(mux)

	handler := middleware.Recovery(
		middleware.RateLimit(limiter)(
			middleware.SecurityHeaders(cfg.Env == "prod")(
				middleware.CORS(
					middleware.Logger(mux),
				),
			),
		),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: gzhttp.GzipHandler(handler),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("server stopping")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited properly")
}
