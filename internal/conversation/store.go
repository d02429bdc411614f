// Package conversation owns the ordered, append-only transcript and
// reconciles optimistic local appends against the remote endpoint.
package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-console/internal/events"
	"ai-chat-console/internal/models"
	"ai-chat-console/internal/observability/logging"
	"ai-chat-console/internal/observability/metrics"
)

// ApologyText is the fixed user-facing message appended when a send
// fails for any reason.
const ApologyText = "Connection failed. Please try again."

// AnonymousUser is the identity sentinel used when no authenticated
// user is present.
const AnonymousUser = "anonymous"

// ErrPending is returned when Submit is called while a previous
// submission is still in flight. The second submission is dropped,
// not queued.
var ErrPending = errors.New("a submission is already in flight")

// Transport is the request/response boundary the store depends on.
type Transport interface {
	FetchHistory(ctx context.Context, userID string) ([]models.Message, error)
	Send(ctx context.Context, userID, text string) (string, error)
}

// InputBuffer is the external input the store clears when a
// submission consumes it.
type InputBuffer interface {
	Reset()
}

// Store holds the conversation transcript. Messages are created only
// here, appended in submission order, and never mutated or removed
// during a session. The optimistic user append always happens before
// the network call begins, so re-entrant reads see the user's own
// message before the reply.
type Store struct {
	transport Transport
	input     InputBuffer
	publisher *events.Publisher
	userID    string
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	mu       sync.Mutex
	messages []models.Message
	pending  bool
}

// Option configures a Store.
type Option func(*Store)

// WithInput attaches the external input buffer cleared on submit.
func WithInput(input InputBuffer) Option {
	return func(s *Store) { s.input = input }
}

// WithPublisher attaches a transcript event publisher.
func WithPublisher(p *events.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// NewStore creates a conversation store for the given identity. An
// empty userID falls back to the anonymous sentinel; the store never
// fails or blocks when unauthenticated.
func NewStore(transport Transport, userID string, opts ...Option) *Store {
	if userID == "" {
		userID = AnonymousUser
	}
	s := &Store{
		transport: transport,
		userID:    userID,
		metrics:   metrics.DefaultMetrics,
		logger:    logging.WithConversation(userID),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserID returns the identity the store submits under.
func (s *Store) UserID() string { return s.userID }

// Hydrate loads prior history for the current identity. History is
// best-effort: on transport failure the transcript is left empty and
// no error is surfaced.
func (s *Store) Hydrate(ctx context.Context) {
	history, err := s.transport.FetchHistory(ctx, s.userID)
	if err != nil {
		s.metrics.RecordHydrateFailure()
		s.logger.Warn().Err(err).Msg("history unavailable, starting empty")
		return
	}

	s.mu.Lock()
	s.messages = append([]models.Message(nil), history...)
	s.mu.Unlock()

	s.logger.Info().Int("messages", len(history)).Msg("transcript hydrated")
}

// Submit sends one user message through the full round trip: append
// the optimistic user entry, clear the input buffer, await the reply,
// and append either the assistant entry or the fixed apology. Send
// failures are swallowed into the transcript, never rethrown.
//
// A trimmed-empty text is a no-op. A Submit arriving while another is
// pending returns ErrPending without touching the transcript.
func (s *Store) Submit(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		s.metrics.RecordSubmitRejected()
		s.logger.Debug().Msg("submit ignored, one already pending")
		return ErrPending
	}
	s.pending = true
	userMsg := models.NewUserMessage(trimmed)
	s.messages = append(s.messages, userMsg)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	if s.input != nil {
		s.input.Reset()
	}
	s.metrics.RecordSubmit()
	s.metrics.RecordMessageAppended(string(models.RoleUser))
	s.publish(userMsg)

	start := time.Now()
	reply, err := s.transport.Send(ctx, s.userID, trimmed)
	s.metrics.RecordSend(err, time.Since(start).Seconds())

	var assistantMsg models.Message
	if err != nil {
		s.logger.Warn().Err(err).Msg("send failed, appending apology")
		assistantMsg = models.NewAssistantMessage(ApologyText)
	} else {
		assistantMsg = models.NewAssistantMessage(reply)
	}

	s.mu.Lock()
	s.messages = append(s.messages, assistantMsg)
	s.mu.Unlock()

	s.metrics.RecordMessageAppended(string(models.RoleAssistant))
	s.publish(assistantMsg)
	return nil
}

// Transcript returns a copy of the transcript in append order.
func (s *Store) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// Pending reports whether a submission round trip is in flight.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LatestAssistant returns the most recent assistant message, if any.
func (s *Store) LatestAssistant() (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == models.RoleAssistant {
			return s.messages[i], true
		}
	}
	return models.Message{}, false
}

func (s *Store) publish(msg models.Message) {
	if s.publisher == nil {
		return
	}
	ev := models.MessageAppended{
		EventType: "conversation.message.appended",
		UserID:    s.userID,
		MessageID: msg.ID,
		Role:      msg.Role,
		Text:      msg.Text,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.publisher.PublishMessage(context.Background(), s.userID, ev); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish message event")
	}
}
