package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodlens_analyses_total",
			Help: "Total number of analysis requests by outcome",
		},
		[]string{"outcome"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "moodlens_analysis_duration_seconds",
			Help: "End to end analysis latency in seconds",
		},
	)

	MoodLevels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodlens_mood_levels_total",
			Help: "Mood levels produced",
		},
		[]string{"level"},
	)

	StressLevels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodlens_stress_levels_total",
			Help: "Stress levels produced",
		},
		[]string{"level"},
	)

	ClassifierFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodlens_classifier_fallbacks_total",
			Help: "Times the neutral emotion profile replaced a classifier result",
		},
		[]string{"reason"},
	)

	ClassifierLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "moodlens_classifier_latency_seconds",
			Help: "Emotion classifier call latency in seconds",
		},
	)

	SentimentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodlens_sentiment_failures_total",
			Help: "Failed or timed out polarity calls",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodlens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	KafkaMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodlens_kafka_messages_total",
			Help: "Analysis request messages handled by outcome",
		},
		[]string{"outcome"},
	)
)
