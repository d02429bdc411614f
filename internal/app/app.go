// Package app wires the controller's components together.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-console/internal/config"
	"ai-chat-console/internal/conversation"
	"ai-chat-console/internal/dictation"
	"ai-chat-console/internal/dictation/recognizer"
	googlerec "ai-chat-console/internal/dictation/recognizer/google"
	"ai-chat-console/internal/dictation/recognizer/mock"
	"ai-chat-console/internal/events"
	"ai-chat-console/internal/markup"
	"ai-chat-console/internal/observability"
	"ai-chat-console/internal/observability/logging"
	"ai-chat-console/internal/playback"
	"ai-chat-console/internal/transport"
)

// Application holds the wired controller components.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration

	Transport *transport.Client
	Publisher *events.Publisher
	Store     *conversation.Store
	Dictation *dictation.Session
	Playback  *playback.Controller
	Renderer  markup.Renderer
	Obs       *observability.Server
}

// New constructs a new Application from the provided configuration
// and the platform synthesizer supplied by the front end.
func New(cfg *config.Configuration, synth playback.Synthesizer) *Application {
	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     cfg.Observability.LogFormat,
		TimeFormat: time.RFC3339,
	})

	a := &Application{
		StartupTime: time.Now(),
		Logger:      logging.WithComponent("application"),
		Cfg:         cfg,
	}

	a.Publisher = events.New(&events.Config{
		Enabled:        cfg.Events.Enabled,
		Brokers:        cfg.Events.Brokers,
		TopicMessages:  cfg.Events.TopicMessages,
		TopicDictation: cfg.Events.TopicDictation,
		Principal:      cfg.Events.Principal,
	})

	a.Transport = transport.NewClient(cfg.Chat.BaseURL, cfg.Chat.Timeout)

	a.Dictation = dictation.NewSession(
		supportFor(cfg.Dictation),
		recognizerFactory(cfg.Dictation),
		a.Publisher,
	)

	a.Store = conversation.NewStore(a.Transport, cfg.Chat.UserID,
		conversation.WithInput(a.Dictation),
		conversation.WithPublisher(a.Publisher),
	)

	a.Playback = playback.NewController(synth, playback.Config{
		Locale:            cfg.Playback.LanguageCode,
		Rate:              cfg.Playback.Rate,
		PreferredProvider: cfg.Playback.PreferredVoice,
	})

	a.Renderer = markup.Renderer{ExcludeFences: cfg.Renderer.ExcludeFences}

	a.Obs = observability.NewServer(cfg.Observability.HTTPAddr, a.Store)

	a.Logger.Info().
		Str("apiBase", cfg.Chat.BaseURL).
		Str("userId", a.Store.UserID()).
		Str("dictationProvider", cfg.Dictation.Provider).
		Msg("chat console application created")
	return a
}

// Close releases resources held by the application.
func (a *Application) Close() error {
	return a.Publisher.Close()
}

// supportFor returns the capability check for the configured
// recognition provider: the mock is always available, Google only
// when credentials are present.
func supportFor(cfg config.DictationConfig) dictation.Support {
	return dictation.SupportFunc(func() bool {
		switch cfg.Provider {
		case "mock":
			return true
		case "google":
			return os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
		default:
			return false
		}
	})
}

func recognizerFactory(cfg config.DictationConfig) dictation.Factory {
	return func() (recognizer.Recognizer, error) {
		switch cfg.Provider {
		case "mock":
			return mock.New(), nil
		case "google":
			return googlerec.New(context.Background(), googlerec.Config{
				LanguageCode:   cfg.LanguageCode,
				SampleRateHz:   int32(cfg.SampleRateHz),
				InterimResults: cfg.InterimResults,
			})
		default:
			return nil, fmt.Errorf("unknown dictation provider: %s", cfg.Provider)
		}
	}
}
