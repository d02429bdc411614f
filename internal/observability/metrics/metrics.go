// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ai_chat_console"

// Metrics holds all Prometheus metrics for the controller.
type Metrics struct {
	// Conversation metrics
	MessagesAppended *prometheus.CounterVec
	SubmitsTotal     prometheus.Counter
	SubmitsRejected  prometheus.Counter
	SendFailures     prometheus.Counter
	SendLatency      prometheus.Histogram
	HydrateFailures  prometheus.Counter

	// Dictation metrics
	DictationSessions prometheus.Counter
	DictationMerges   prometheus.Counter
	FinalSegments     prometheus.Counter
	TentativeUpdates  prometheus.Counter
	RecognizerErrors  prometheus.Counter

	// Playback metrics
	PlaybackUtterances  prometheus.Counter
	PlaybackPreemptions prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_appended_total",
			Help:      "Total number of messages appended to the transcript",
		}, []string{"role"}),
		SubmitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submits_total",
			Help:      "Total number of accepted submissions",
		}),
		SubmitsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submits_rejected_total",
			Help:      "Total number of submissions rejected while one was pending",
		}),
		SendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_failures_total",
			Help:      "Total number of chat sends that failed",
		}),
		SendLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "send_latency_seconds",
			Help:      "Round-trip latency of chat sends in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		HydrateFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hydrate_failures_total",
			Help:      "Total number of history hydrations that degraded to empty",
		}),

		DictationSessions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictation_sessions_total",
			Help:      "Total number of dictation sessions started",
		}),
		DictationMerges: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictation_merges_total",
			Help:      "Total number of recognition deliveries merged into the buffer",
		}),
		FinalSegments: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictation_final_segments_total",
			Help:      "Total number of finalized speech segments committed",
		}),
		TentativeUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictation_tentative_updates_total",
			Help:      "Total number of tentative zone replacements",
		}),
		RecognizerErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recognizer_errors_total",
			Help:      "Total number of recognizer faults",
		}),

		PlaybackUtterances: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_utterances_total",
			Help:      "Total number of utterances spoken",
		}),
		PlaybackPreemptions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_preemptions_total",
			Help:      "Total number of utterances preempted by a newer one",
		}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordMessageAppended records a transcript append by role.
func (m *Metrics) RecordMessageAppended(role string) {
	m.MessagesAppended.WithLabelValues(role).Inc()
}

// RecordSubmit records an accepted submission.
func (m *Metrics) RecordSubmit() {
	m.SubmitsTotal.Inc()
}

// RecordSubmitRejected records a submission rejected while pending.
func (m *Metrics) RecordSubmitRejected() {
	m.SubmitsRejected.Inc()
}

// RecordSend records a chat send outcome and its latency.
func (m *Metrics) RecordSend(err error, latencySeconds float64) {
	m.SendLatency.Observe(latencySeconds)
	if err != nil {
		m.SendFailures.Inc()
	}
}

// RecordHydrateFailure records a history hydration degrading to empty.
func (m *Metrics) RecordHydrateFailure() {
	m.HydrateFailures.Inc()
}

// RecordDictationSession records a dictation session starting.
func (m *Metrics) RecordDictationSession() {
	m.DictationSessions.Inc()
}

// RecordMerge records one recognition delivery merged into the buffer.
func (m *Metrics) RecordMerge(finalSegments int, tentative bool) {
	m.DictationMerges.Inc()
	m.FinalSegments.Add(float64(finalSegments))
	if tentative {
		m.TentativeUpdates.Inc()
	}
}

// RecordRecognizerError records a recognizer fault.
func (m *Metrics) RecordRecognizerError() {
	m.RecognizerErrors.Inc()
}

// RecordUtterance records an utterance being spoken, and whether it
// preempted an active one.
func (m *Metrics) RecordUtterance(preempted bool) {
	m.PlaybackUtterances.Inc()
	if preempted {
		m.PlaybackPreemptions.Inc()
	}
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
