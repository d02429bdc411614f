// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServiceConfig identifies this controller instance.
type ServiceConfig struct {
	Principal string
}

// ChatConfig holds the remote chat endpoint settings.
type ChatConfig struct {
	BaseURL string
	UserID  string
	Timeout time.Duration
}

// DictationConfig holds speech-recognition settings.
type DictationConfig struct {
	Provider       string // mock, google
	LanguageCode   string
	SampleRateHz   int
	InterimResults bool
}

// PlaybackConfig holds speech-synthesis settings.
type PlaybackConfig struct {
	LanguageCode   string
	Rate           float64
	PreferredVoice string
}

// RendererConfig holds markup rendering settings.
type RendererConfig struct {
	ExcludeFences bool
}

// EventsConfig holds Kafka publishing settings.
type EventsConfig struct {
	Enabled        bool
	Brokers        []string
	TopicMessages  string
	TopicDictation string
	Principal      string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string
	HTTPAddr  string
}

// Configuration is the full controller configuration.
type Configuration struct {
	Service       ServiceConfig
	Chat          ChatConfig
	Dictation     DictationConfig
	Playback      PlaybackConfig
	Renderer      RendererConfig
	Events        EventsConfig
	Observability ObservabilityConfig
}

// Load reads configuration from the environment, after best-effort
// loading of a local .env file.
func Load() *Configuration {
	_ = godotenv.Load()

	return &Configuration{
		Service: ServiceConfig{
			Principal: envOrDefault("SERVICE_PRINCIPAL", "ai-chat-console"),
		},
		Chat: ChatConfig{
			BaseURL: envOrDefault("CHAT_API_BASE", "http://localhost:8000/api"),
			UserID:  envOrDefault("CHAT_USER_ID", ""),
			Timeout: envDuration("CHAT_TIMEOUT", 30*time.Second),
		},
		Dictation: DictationConfig{
			Provider:       envOrDefault("DICTATION_PROVIDER", "mock"),
			LanguageCode:   envOrDefault("DICTATION_LANGUAGE_CODE", "en-US"),
			SampleRateHz:   envInt("DICTATION_SAMPLE_RATE_HZ", 16000),
			InterimResults: envBool("DICTATION_INTERIM_RESULTS", true),
		},
		Playback: PlaybackConfig{
			LanguageCode:   envOrDefault("PLAYBACK_LANGUAGE_CODE", "en-US"),
			Rate:           envFloat("PLAYBACK_RATE", 0.95),
			PreferredVoice: envOrDefault("PLAYBACK_PREFERRED_VOICE", "Google"),
		},
		Renderer: RendererConfig{
			ExcludeFences: envBool("RENDERER_EXCLUDE_FENCES", false),
		},
		Events: EventsConfig{
			Enabled:        envBool("KAFKA_ENABLED", false),
			Brokers:        envList("KAFKA_BROKERS", nil),
			TopicMessages:  envOrDefault("KAFKA_TOPIC_MESSAGES", "conversation.messages"),
			TopicDictation: envOrDefault("KAFKA_TOPIC_DICTATION", "dictation.transcripts"),
			Principal:      envOrDefault("SERVICE_PRINCIPAL", "ai-chat-console"),
		},
		Observability: ObservabilityConfig{
			LogLevel:  envOrDefault("LOG_LEVEL", "info"),
			LogFormat: envOrDefault("LOG_FORMAT", "console"),
			HTTPAddr:  envOrDefault("OBS_HTTP_ADDR", ":9090"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
