package dictation

import "testing"

func TestLifecycle_InitialState(t *testing.T) {
	lc := NewLifecycle()

	if lc.State() != StateIdle {
		t.Errorf("expected StateIdle, got %v", lc.State())
	}
	if lc.Listening() {
		t.Error("expected Listening to be false")
	}
}

func TestLifecycle_BeginListening(t *testing.T) {
	lc := NewLifecycle()

	if err := lc.BeginListening(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lc.State() != StateListening {
		t.Errorf("expected StateListening, got %v", lc.State())
	}
}

func TestLifecycle_BeginListening_OnlyOnce(t *testing.T) {
	lc := NewLifecycle()

	if err := lc.BeginListening(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lc.BeginListening(); err != ErrAlreadyListening {
		t.Errorf("expected ErrAlreadyListening, got %v", err)
	}
}

func TestLifecycle_Ended(t *testing.T) {
	lc := NewLifecycle()
	_ = lc.BeginListening()

	if !lc.Ended() {
		t.Error("expected transition to idle")
	}
	if lc.State() != StateIdle {
		t.Errorf("expected StateIdle, got %v", lc.State())
	}

	// Idempotent.
	if lc.Ended() {
		t.Error("expected no transition when already idle")
	}
}

func TestState_String(t *testing.T) {
	if StateIdle.String() != "IDLE" || StateListening.String() != "LISTENING" {
		t.Errorf("unexpected state names: %v %v", StateIdle, StateListening)
	}
	if State(99).String() != "UNKNOWN(99)" {
		t.Errorf("unexpected unknown name: %v", State(99))
	}
}
