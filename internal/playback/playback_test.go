package playback

import (
	"testing"

	"ai-chat-console/internal/models"
)

// testSynth records synthesis calls in order.
type testSynth struct {
	voices []Voice
	calls  []string // "cancel" or "speak:<voice>:<text>"
}

func (s *testSynth) Voices() []Voice { return s.voices }

func (s *testSynth) Speak(u Utterance) error {
	s.calls = append(s.calls, "speak:"+u.Voice+":"+u.Text)
	return nil
}

func (s *testSynth) Cancel() {
	s.calls = append(s.calls, "cancel")
}

func TestController_AtMostOneUtterance(t *testing.T) {
	synth := &testSynth{}
	c := NewController(synth, DefaultConfig())

	if err := c.Speak("first"); err != nil {
		t.Fatalf("speak: %v", err)
	}
	if err := c.Speak("second"); err != nil {
		t.Fatalf("speak: %v", err)
	}

	// Every speak is preceded by a cancel, so at most one utterance
	// is ever audible.
	want := []string{"cancel", "speak::first", "cancel", "speak::second"}
	if len(synth.calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), synth.calls)
	}
	for i := range want {
		if synth.calls[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], synth.calls[i])
		}
	}
}

func TestController_VoicePreferenceOrder(t *testing.T) {
	voices := []Voice{
		{Name: "Amelie", Locale: "fr-FR"},
		{Name: "Samantha", Locale: "en-US"},
		{Name: "Google UK English", Locale: "en-GB"},
	}

	// Locale match from the preferred provider wins.
	synth := &testSynth{voices: voices}
	c := NewController(synth, Config{Locale: "en-US", Rate: 0.95, PreferredProvider: "Google"})
	_ = c.Speak("hi")
	if synth.calls[1] != "speak:Google UK English:hi" {
		t.Errorf("expected preferred provider voice, got %q", synth.calls[1])
	}

	// Without a provider match, the first locale match is used.
	synth = &testSynth{voices: voices[:2]}
	c = NewController(synth, Config{Locale: "en-US", Rate: 0.95, PreferredProvider: "Google"})
	_ = c.Speak("hi")
	if synth.calls[1] != "speak:Samantha:hi" {
		t.Errorf("expected first locale match, got %q", synth.calls[1])
	}

	// No locale match at all: leave the choice to the synthesizer.
	synth = &testSynth{voices: voices[:1]}
	c = NewController(synth, Config{Locale: "en-US", Rate: 0.95, PreferredProvider: "Google"})
	_ = c.Speak("hi")
	if synth.calls[1] != "speak::hi" {
		t.Errorf("expected synthesizer default voice, got %q", synth.calls[1])
	}
}

func TestController_SpeakLatestAssistantReply(t *testing.T) {
	synth := &testSynth{}
	c := NewController(synth, DefaultConfig())

	transcript := []models.Message{
		{Role: models.RoleAssistant, Text: "older reply"},
		{Role: models.RoleUser, Text: "question"},
		{Role: models.RoleAssistant, Text: "latest reply"},
		{Role: models.RoleUser, Text: "unanswered"},
	}

	if err := c.SpeakLatestAssistantReply(transcript); err != nil {
		t.Fatalf("speak latest: %v", err)
	}
	if synth.calls[1] != "speak::latest reply" {
		t.Errorf("expected latest assistant reply, got %q", synth.calls[1])
	}
}

func TestController_SpeakLatestAssistantReply_NoAssistantIsNoop(t *testing.T) {
	synth := &testSynth{}
	c := NewController(synth, DefaultConfig())

	transcript := []models.Message{
		{Role: models.RoleUser, Text: "hello?"},
	}

	if err := c.SpeakLatestAssistantReply(transcript); err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if len(synth.calls) != 0 {
		t.Errorf("expected no synthesis calls, got %v", synth.calls)
	}
}
