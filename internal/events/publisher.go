// Package events provides transcript event publishing.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"ai-chat-console/internal/observability/metrics"
)

// Publisher publishes conversation and dictation events to separate
// Kafka topics. When disabled it degrades to log-only mode, which is
// also how tests run it.
type Publisher struct {
	writerMessages  *kafka.Writer
	writerDictation *kafka.Writer
	principal       string
	topicMessages   string
	topicDictation  string
	enabled         bool
	metrics         *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers        []string
	TopicMessages  string
	TopicDictation string
	Principal      string
	Enabled        bool
}

// New creates a new Kafka event publisher with separate topics for
// transcript messages and dictation results.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics

	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{
			enabled: false,
			metrics: m,
		}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:      cfg.Principal,
			topicMessages:  cfg.TopicMessages,
			topicDictation: cfg.TopicDictation,
			enabled:        false,
			metrics:        m,
		}
	}

	// Longer dial timeout for DNS resolution in Kubernetes
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	writerMessages := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicMessages,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	writerDictation := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicDictation,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicMessages", cfg.TopicMessages).
		Str("topicDictation", cfg.TopicDictation).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerMessages:  writerMessages,
		writerDictation: writerDictation,
		principal:       cfg.Principal,
		topicMessages:   cfg.TopicMessages,
		topicDictation:  cfg.TopicDictation,
		enabled:         true,
		metrics:         m,
	}
}

// PublishMessage publishes a transcript message event.
func (p *Publisher) PublishMessage(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerMessages, p.topicMessages, "message", key, event)
}

// PublishDictation publishes a dictation partial or final event.
func (p *Publisher) PublishDictation(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerDictation, p.topicDictation, "dictation", key, event)
}

func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventType)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerMessages != nil {
		if e := p.writerMessages.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing messages writer")
			err = e
		}
	}
	if p.writerDictation != nil {
		if e := p.writerDictation.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing dictation writer")
			err = e
		}
	}
	return err
}
