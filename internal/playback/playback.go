// Package playback wraps text-to-speech synthesis behind a capability
// port and guarantees at most one utterance plays at a time.
package playback

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"ai-chat-console/internal/models"
	"ai-chat-console/internal/observability/logging"
	"ai-chat-console/internal/observability/metrics"
)

// Voice describes one synthesis voice exposed by the platform.
type Voice struct {
	Name    string
	Locale  string
	Default bool
}

// Utterance is one synthesis request. An empty Voice leaves the
// choice to the synthesizer.
type Utterance struct {
	Text   string
	Locale string
	Voice  string
	Rate   float64
}

// Synthesizer is the capability port over platform speech synthesis.
type Synthesizer interface {
	// Voices enumerates the available voices.
	Voices() []Voice

	// Speak begins synthesis of the utterance.
	Speak(u Utterance) error

	// Cancel stops the in-flight utterance immediately, if any.
	Cancel()
}

// Config holds playback parameters.
type Config struct {
	Locale            string  // e.g. "en-US"
	Rate              float64 // e.g. 0.95
	PreferredProvider string  // substring matched against voice names, e.g. "Google"
}

// DefaultConfig returns the playback parameters the original UI used.
func DefaultConfig() Config {
	return Config{
		Locale:            "en-US",
		Rate:              0.95,
		PreferredProvider: "Google",
	}
}

// Controller selects a voice per invocation and enforces the
// at-most-one-active invariant by cancelling before speaking.
type Controller struct {
	mu      sync.Mutex
	synth   Synthesizer
	cfg     Config
	active  bool
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewController creates a playback controller over the synthesizer.
func NewController(synth Synthesizer, cfg Config) *Controller {
	return &Controller{
		synth:   synth,
		cfg:     cfg,
		metrics: metrics.DefaultMetrics,
		logger:  logging.WithComponent("playback"),
	}
}

// Speak cancels any active utterance and begins synthesis of text
// with the preferred voice for the configured locale.
func (c *Controller) Speak(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	preempted := c.active
	c.synth.Cancel()

	u := Utterance{
		Text:   text,
		Locale: c.cfg.Locale,
		Rate:   c.cfg.Rate,
	}
	if voice := selectVoice(c.synth.Voices(), c.cfg.Locale, c.cfg.PreferredProvider); voice != nil {
		u.Voice = voice.Name
	}

	if err := c.synth.Speak(u); err != nil {
		c.active = false
		c.logger.Warn().Err(err).Msg("synthesis failed")
		return err
	}
	c.active = true
	c.metrics.RecordUtterance(preempted)
	return nil
}

// SpeakLatestAssistantReply scans the transcript in reverse for the
// most recent assistant message and speaks it. A transcript with no
// assistant message is a no-op, not an error.
func (c *Controller) SpeakLatestAssistantReply(transcript []models.Message) error {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == models.RoleAssistant {
			return c.Speak(transcript[i].Text)
		}
	}
	return nil
}

// Stop cancels the in-flight utterance, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synth.Cancel()
	c.active = false
}

// Voices enumerates the synthesizer's available voices.
func (c *Controller) Voices() []Voice {
	return c.synth.Voices()
}

// selectVoice applies the preference order: a locale-matching voice
// from the preferred provider, else the first locale-matching voice,
// else nil (synthesizer default).
func selectVoice(voices []Voice, locale, provider string) *Voice {
	lang := locale
	if i := strings.IndexByte(locale, '-'); i > 0 {
		lang = locale[:i]
	}
	var localeMatch *Voice
	for i := range voices {
		if !strings.HasPrefix(voices[i].Locale, lang) {
			continue
		}
		if provider != "" && strings.Contains(voices[i].Name, provider) {
			return &voices[i]
		}
		if localeMatch == nil {
			localeMatch = &voices[i]
		}
	}
	return localeMatch
}
