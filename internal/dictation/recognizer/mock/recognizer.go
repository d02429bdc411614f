// Package mock provides a scripted recognizer for development and
// demos without a microphone or cloud credentials. It simulates
// realistic continuous recognition: progressive tentative guesses
// followed by exactly one final segment per utterance.
package mock

import (
	"context"
	"sync"
	"time"

	"ai-chat-console/internal/dictation/recognizer"
)

// ScriptedUtterance is one simulated utterance with its progressive
// tentative guesses and the final transcript.
type ScriptedUtterance struct {
	Tentatives []string
	Final      string
}

// DefaultUtterances provides sample utterances for simulation.
var DefaultUtterances = []ScriptedUtterance{
	{
		Tentatives: []string{"explain", "explain binary", "explain binary search"},
		Final:      "explain binary search to me",
	},
	{
		Tentatives: []string{"give me", "give me five quiz"},
		Final:      "give me five quiz questions about photosynthesis",
	},
	{
		Tentatives: []string{"summarize", "summarize this chapter"},
		Final:      "summarize this chapter simply",
	},
}

// Recognizer implements recognizer.Recognizer with scripted results.
// A single instance is reused across start/stop cycles; each Start
// plays the next utterance in the script.
type Recognizer struct {
	mu       sync.Mutex
	cb       recognizer.Callback
	script   []ScriptedUtterance
	next     int
	interval time.Duration
	stop     chan struct{}
	running  bool
}

// New creates a mock recognizer playing the default script.
func New() *Recognizer {
	return NewScripted(DefaultUtterances, 150*time.Millisecond)
}

// NewScripted creates a mock recognizer with a custom script and
// delivery interval.
func NewScripted(script []ScriptedUtterance, interval time.Duration) *Recognizer {
	return &Recognizer{
		script:   script,
		interval: interval,
	}
}

// Start begins playing the next scripted utterance.
func (r *Recognizer) Start(ctx context.Context, cb recognizer.Callback) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.cb = cb
	r.running = true
	r.stop = make(chan struct{})
	utt := r.script[r.next%len(r.script)]
	r.next++
	stop := r.stop
	r.mu.Unlock()

	go r.play(ctx, cb, utt, stop)
	return nil
}

// Stop requests termination; the end notification is delivered
// asynchronously by the playing goroutine.
func (r *Recognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		close(r.stop)
		r.running = false
	}
	return nil
}

func (r *Recognizer) play(ctx context.Context, cb recognizer.Callback, utt ScriptedUtterance, stop chan struct{}) {
	defer func() {
		r.mu.Lock()
		if r.stop == stop {
			r.running = false
		}
		r.mu.Unlock()
		cb.OnEnd()
	}()

	for _, tentative := range utt.Tentatives {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-time.After(r.interval):
		}
		cb.OnResult(nil, tentative)
	}

	select {
	case <-stop:
		return
	case <-ctx.Done():
		return
	case <-time.After(r.interval):
	}
	cb.OnResult([]string{utt.Final}, "")
}
