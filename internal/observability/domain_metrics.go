package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	cardsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "querydeck_cards_created_total",
			Help: "Total number of cards created.",
		},
	)
	cardsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "querydeck_cards_deleted_total",
			Help: "Total number of cards deleted.",
		},
	)
	analyzeRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "querydeck_analyze_requests_total",
			Help: "Total number of analyze requests that reached the AI collaborator.",
		},
	)
	analyzeFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "querydeck_analyze_failures_total",
			Help: "Total number of analyze requests that failed upstream.",
		},
	)
	analyzeLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "querydeck_analyze_latency_ms",
			Help:    "AI collaborator round-trip latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 20000},
		},
	)
)

func init() {
	prometheus.MustRegister(
		cardsCreatedTotal,
		cardsDeletedTotal,
		analyzeRequestsTotal,
		analyzeFailuresTotal,
		analyzeLatencyMs,
	)
}

func RecordCardCreated() {
	cardsCreatedTotal.Inc()
}

func RecordCardDeleted() {
	cardsDeletedTotal.Inc()
}

func RecordAnalyzeRequest() {
	analyzeRequestsTotal.Inc()
}

func RecordAnalyzeFailure() {
	analyzeFailuresTotal.Inc()
}

func ObserveAnalyzeLatency(duration time.Duration) {
	analyzeLatencyMs.Observe(float64(duration.Milliseconds()))
}
