package dictation

import "testing"

func TestBuffer_MergeFinalsJoinCommitted(t *testing.T) {
	var b Buffer

	b.Merge([]string{"hello"}, "wor")
	if b.Committed() != "hello" {
		t.Errorf("expected committed 'hello', got %q", b.Committed())
	}
	if b.Tentative() != "wor" {
		t.Errorf("expected tentative 'wor', got %q", b.Tentative())
	}
	if b.Text() != "hello wor" {
		t.Errorf("expected text 'hello wor', got %q", b.Text())
	}
}

func TestBuffer_TentativeReplacedWholesale(t *testing.T) {
	var b Buffer

	b.Merge(nil, "hel")
	b.Merge(nil, "hello wor")
	b.Merge(nil, "hello world")

	if b.Committed() != "" {
		t.Errorf("committed zone must stay untouched without finals, got %q", b.Committed())
	}
	if b.Text() != "hello world" {
		t.Errorf("expected last tentative only, got %q", b.Text())
	}
}

func TestBuffer_FinalClearsSupersededTentative(t *testing.T) {
	var b Buffer

	b.Merge(nil, "hello wor")
	b.Merge([]string{"hello world"}, "")

	if b.Committed() != "hello world" {
		t.Errorf("expected committed 'hello world', got %q", b.Committed())
	}
	if b.Tentative() != "" {
		t.Errorf("expected empty tentative, got %q", b.Tentative())
	}
}

func TestBuffer_MergeReplaySemantics(t *testing.T) {
	// Replaying a delivery sequence yields all finals in arrival
	// order plus the last tentative as suffix.
	events := []struct {
		finals    []string
		tentative string
	}{
		{nil, "i"},
		{nil, "i want"},
		{[]string{"I want to cancel"}, ""},
		{nil, "my sub"},
		{[]string{"my", "subscription"}, "plea"},
	}

	var b Buffer
	for _, ev := range events {
		b.Merge(ev.finals, ev.tentative)
	}

	if b.Committed() != "I want to cancel my subscription" {
		t.Errorf("unexpected committed zone: %q", b.Committed())
	}
	if b.Text() != "I want to cancel my subscription plea" {
		t.Errorf("unexpected buffer text: %q", b.Text())
	}
}

func TestBuffer_SetTextCountsAsCommitted(t *testing.T) {
	var b Buffer
	b.Merge([]string{"dictated"}, "tent")

	b.SetText("edited by hand")
	if b.Committed() != "edited by hand" || b.Tentative() != "" {
		t.Errorf("expected manual edit to replace both zones, got %q / %q", b.Committed(), b.Tentative())
	}
}

func TestBuffer_Reset(t *testing.T) {
	var b Buffer
	b.Merge([]string{"a"}, "b")
	b.Reset()
	if b.Text() != "" {
		t.Errorf("expected empty buffer after reset, got %q", b.Text())
	}
}
