package dictation

import (
	"context"
	"errors"
	"testing"

	"ai-chat-console/internal/dictation/recognizer"
	"ai-chat-console/internal/events"
)

// testRecognizer implements recognizer.Recognizer for testing.
// End notifications are delivered manually by the test.
type testRecognizer struct {
	started int
	stopped int
	cb      recognizer.Callback
}

func (r *testRecognizer) Start(ctx context.Context, cb recognizer.Callback) error {
	r.started++
	r.cb = cb
	return nil
}

func (r *testRecognizer) Stop() error {
	r.stopped++
	return nil
}

func newTestSession(rec recognizer.Recognizer) (*Session, *int) {
	constructed := 0
	factory := func() (recognizer.Recognizer, error) {
		constructed++
		return rec, nil
	}
	supported := SupportFunc(func() bool { return true })
	return NewSession(supported, factory, events.New(&events.Config{Enabled: false})), &constructed
}

func TestSession_StartUnsupported(t *testing.T) {
	s := NewSession(SupportFunc(func() bool { return false }), func() (recognizer.Recognizer, error) {
		t.Fatal("factory must not run when unsupported")
		return nil, nil
	}, events.New(&events.Config{Enabled: false}))

	if err := s.Start(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if s.Listening() {
		t.Error("session must stay idle when unsupported")
	}
}

func TestSession_RecognizerConstructedOnceAcrossCycles(t *testing.T) {
	rec := &testRecognizer{}
	s, constructed := newTestSession(rec)
	ctx := context.Background()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("first start: %v", err)
	}
	rec.cb.OnEnd()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("second start: %v", err)
	}

	if *constructed != 1 {
		t.Errorf("expected 1 construction, got %d", *constructed)
	}
	if rec.started != 2 {
		t.Errorf("expected 2 recognizer starts, got %d", rec.started)
	}
}

func TestSession_StopConfirmedAsynchronously(t *testing.T) {
	rec := &testRecognizer{}
	s, _ := newTestSession(rec)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	// The stop call alone does not transition to idle.
	if !s.Listening() {
		t.Error("expected session to remain listening until end notification")
	}

	rec.cb.OnEnd()
	if s.Listening() {
		t.Error("expected idle after end notification")
	}
}

func TestSession_ResultsMergeIntoBuffer(t *testing.T) {
	rec := &testRecognizer{}
	s, _ := newTestSession(rec)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	rec.cb.OnResult(nil, "hel")
	rec.cb.OnResult(nil, "hello wor")
	rec.cb.OnResult([]string{"hello world"}, "")

	if s.Text() != "hello world" {
		t.Errorf("expected 'hello world', got %q", s.Text())
	}
	if s.Tentative() != "" {
		t.Errorf("expected empty tentative, got %q", s.Tentative())
	}
}

func TestSession_ResultsIgnoredAfterEnd(t *testing.T) {
	rec := &testRecognizer{}
	s, _ := newTestSession(rec)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	rec.cb.OnResult([]string{"kept"}, "")
	rec.cb.OnEnd()
	rec.cb.OnResult([]string{"dropped"}, "late")

	if s.Text() != "kept" {
		t.Errorf("expected stale results to be ignored, got %q", s.Text())
	}
}

func TestSession_ErrorReturnsToIdleBufferIntact(t *testing.T) {
	rec := &testRecognizer{}
	s, _ := newTestSession(rec)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	rec.cb.OnResult([]string{"partial dictation"}, "still tent")
	rec.cb.OnError(errors.New("network"))

	if s.Listening() {
		t.Error("expected idle after recognizer fault")
	}
	if s.Text() != "partial dictation still tent" {
		t.Errorf("buffer must survive faults for manual editing, got %q", s.Text())
	}
}

func TestSession_FactoryErrorSurfaced(t *testing.T) {
	wantErr := errors.New("no device")
	s := NewSession(SupportFunc(func() bool { return true }), func() (recognizer.Recognizer, error) {
		return nil, wantErr
	}, events.New(&events.Config{Enabled: false}))

	if err := s.Start(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("expected factory error, got %v", err)
	}
	if s.Listening() {
		t.Error("session must stay idle after factory failure")
	}
}

func TestSession_OnChangeNotified(t *testing.T) {
	rec := &testRecognizer{}
	s, _ := newTestSession(rec)
	var last string
	s.SetOnChange(func(text string) { last = text })

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	rec.cb.OnResult([]string{"hi"}, "there")

	if last != "hi there" {
		t.Errorf("expected change notification 'hi there', got %q", last)
	}
}
