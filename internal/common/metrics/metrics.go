// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	QuestionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_questions_processed_total",
			Help: "Total questions processed, by resolved domain",
		},
		[]string{"domain"},
	)

	AnswersSynthesized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_answers_synthesized_total",
			Help: "Total answers synthesized, by outcome state",
		},
		[]string{"state"},
	)

	AnswerConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_answer_confidence",
			Help:    "Confidence of synthesized answers",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	EscalationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_escalations_sent_total",
			Help: "Total escalation notifications sent, by channel",
		},
		[]string{"channel"},
	)

	HallCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_hall_cache_requests_total",
			Help: "Hall snapshot cache requests, by result",
		},
		[]string{"result"},
	)
)
