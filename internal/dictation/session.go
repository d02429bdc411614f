// Package dictation manages a continuous speech-recognition session
// and merges its interim and final results into a single editable
// text buffer.
package dictation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ai-chat-console/internal/dictation/recognizer"
	"ai-chat-console/internal/events"
	"ai-chat-console/internal/models"
	"ai-chat-console/internal/observability/logging"
	"ai-chat-console/internal/observability/metrics"
)

// ErrUnsupported is returned by Start when the platform exposes no
// speech-recognition capability.
var ErrUnsupported = errors.New("speech recognition is not supported on this platform")

// Support is the capability-check port: it reports whether a
// recognition session can be constructed at all. Injected so tests
// never have to probe ambient platform state.
type Support interface {
	HasDictationSupport() bool
}

// SupportFunc adapts a plain function to the Support interface.
type SupportFunc func() bool

// HasDictationSupport implements Support.
func (f SupportFunc) HasDictationSupport() bool { return f() }

// Factory constructs the recognition session. It is invoked at most
// once; the constructed recognizer is reused across start/stop cycles.
type Factory func() (recognizer.Recognizer, error)

// ChangeFunc is notified with the full buffer text after every merge.
type ChangeFunc func(text string)

// Session owns the dictation buffer and drives the recognition
// lifecycle. It implements recognizer.Callback; every callback is
// applied as one atomic state transition under the session mutex, so
// merges never interleave with reads or with each other.
type Session struct {
	support   Support
	factory   Factory
	publisher *events.Publisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	mu        sync.Mutex
	rec       recognizer.Recognizer
	lifecycle *Lifecycle
	buffer    Buffer
	sessionID string
	onChange  ChangeFunc
}

// NewSession creates a dictation session manager. The publisher may
// be a disabled (log-only) publisher.
func NewSession(support Support, factory Factory, publisher *events.Publisher) *Session {
	return &Session{
		support:   support,
		factory:   factory,
		publisher: publisher,
		metrics:   metrics.DefaultMetrics,
		logger:    logging.WithComponent("dictation"),
		lifecycle: NewLifecycle(),
	}
}

// SetOnChange registers a buffer-change notification. The callback
// runs outside the session mutex.
func (s *Session) SetOnChange(cb ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = cb
}

// Start begins a new logical dictation session and transitions to
// LISTENING. The recognizer is constructed on first use and reused
// afterwards. Returns ErrUnsupported when the capability check fails.
func (s *Session) Start(ctx context.Context) error {
	if s.support == nil || !s.support.HasDictationSupport() {
		return ErrUnsupported
	}

	s.mu.Lock()
	if s.rec == nil {
		rec, err := s.factory()
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.rec = rec
	}
	rec := s.rec

	if err := s.lifecycle.BeginListening(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.sessionID = "dict-" + uuid.NewString()
	sessionID := s.sessionID
	s.mu.Unlock()

	if err := rec.Start(ctx, s); err != nil {
		s.lifecycle.Ended()
		return err
	}

	s.metrics.RecordDictationSession()
	s.logger.Info().Str("sessionId", sessionID).Msg("dictation session started")
	return nil
}

// Stop requests termination of the active session. The transition to
// IDLE happens when the recognizer confirms via its end notification.
func (s *Session) Stop() error {
	s.mu.Lock()
	rec := s.rec
	s.mu.Unlock()

	if rec == nil || !s.lifecycle.Listening() {
		return nil
	}
	return rec.Stop()
}

// Listening reports whether a recognition session is active.
func (s *Session) Listening() bool {
	return s.lifecycle.Listening()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.lifecycle.State()
}

// Text returns the full buffer text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Text()
}

// Committed returns the committed zone of the buffer.
func (s *Session) Committed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Committed()
}

// Tentative returns the tentative zone of the buffer.
func (s *Session) Tentative() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Tentative()
}

// SetText replaces the buffer with manually edited text.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	s.buffer.SetText(text)
	s.mu.Unlock()
	s.notify()
}

// Reset clears the buffer. The conversation store calls this when a
// submission consumes the input.
func (s *Session) Reset() {
	s.mu.Lock()
	s.buffer.Reset()
	s.mu.Unlock()
	s.notify()
}

// --- recognizer.Callback implementation ---

// OnResult merges one recognition delivery into the buffer. Results
// arriving after the session ended are ignored; a fresh Start begins
// a new logical session.
func (s *Session) OnResult(finals []string, tentative string) {
	s.mu.Lock()
	if !s.lifecycle.Listening() {
		s.mu.Unlock()
		s.logger.Debug().Msg("recognition result ignored, session not listening")
		return
	}
	s.buffer.Merge(finals, tentative)
	sessionID := s.sessionID
	committed := s.buffer.Committed()
	s.mu.Unlock()

	s.metrics.RecordMerge(len(finals), tentative != "")
	s.publishResult(sessionID, committed, finals, tentative)
	s.notify()
}

// OnError handles a recognizer fault: the session returns to IDLE and
// the buffer is left intact for manual editing.
func (s *Session) OnError(err error) {
	ended := s.lifecycle.Ended()
	s.metrics.RecordRecognizerError()
	s.logger.Warn().Err(err).Bool("ended", ended).Msg("recognizer fault, returning to idle")
}

// OnEnd handles natural or requested end-of-session.
func (s *Session) OnEnd() {
	if s.lifecycle.Ended() {
		s.logger.Info().Msg("dictation session ended")
	}
}

func (s *Session) notify() {
	s.mu.Lock()
	cb := s.onChange
	text := s.buffer.Text()
	s.mu.Unlock()
	if cb != nil {
		cb(text)
	}
}

func (s *Session) publishResult(sessionID, committed string, finals []string, tentative string) {
	ctx := context.Background()
	now := time.Now().UnixMilli()
	if len(finals) > 0 {
		ev := models.DictationFinal{
			EventType: "dictation.transcript.final",
			SessionID: sessionID,
			Text:      committed,
			Segments:  len(finals),
			Timestamp: now,
		}
		if err := s.publisher.PublishDictation(ctx, sessionID, ev); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish final dictation event")
		}
	}
	if tentative != "" {
		ev := models.DictationPartial{
			EventType: "dictation.transcript.partial",
			SessionID: sessionID,
			Text:      tentative,
			Timestamp: now,
		}
		if err := s.publisher.PublishDictation(ctx, sessionID, ev); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish partial dictation event")
		}
	}
}
