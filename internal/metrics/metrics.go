package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})

	PromptsScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompts_scored_total",
		Help: "Total number of prompts scored",
	})

	NoveltyScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "novelty_score",
		Help:    "Distribution of novelty scores",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	EmbeddingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "embedding_request_seconds",
		Help: "Time taken by embedding provider calls",
	}, []string{"status"})

	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)
