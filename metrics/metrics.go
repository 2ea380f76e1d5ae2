package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrabble_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scrabble_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Game metrics
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrabble_sessions_created_total",
			Help: "Total sessions created",
		},
	)

	PlayersJoined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrabble_players_joined_total",
			Help: "Total players joined across all sessions",
		},
	)

	MovesApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrabble_moves_applied_total",
			Help: "Total moves committed",
		},
	)

	WordChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrabble_word_checks_total",
			Help: "Total dictionary lookups",
		},
		[]string{"dictionary", "result"}, // result is "valid" or "invalid"
	)

	// Storage metrics
	StorageConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrabble_storage_conflicts_total",
			Help: "Total optimistic-concurrency conflicts on session updates",
		},
	)

	StorageRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrabble_storage_retries_total",
			Help: "Total session update retries after a conflict",
		},
	)
)
