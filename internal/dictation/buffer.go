package dictation

import "strings"

// Buffer is the editable dictation text, split into two zones: the
// committed prefix holds finalized speech segments already merged in,
// and the tentative suffix holds the most recent still-revisable
// interim guess. The tentative zone is replaced wholesale on every
// interim update; the committed zone is never retroactively altered
// once a final result arrives.
//
// Buffer is not safe for concurrent use; the Session serializes
// access to it.
type Buffer struct {
	committed string
	tentative string
}

// Merge applies one recognition delivery: newly-final segments are
// space-joined onto the committed zone, then the tentative zone is
// replaced by the new tentative segment. When no final segment
// arrived, only the tentative zone changes. This ordering prevents
// tentative text from being durably committed before the recognizer
// confirms it, and prevents re-appending already-committed text.
func (b *Buffer) Merge(finals []string, tentative string) {
	if len(finals) > 0 {
		joined := strings.Join(finals, " ")
		b.committed = strings.TrimSpace(b.committed + " " + joined)
	}
	b.tentative = tentative
}

// Text returns the full buffer: committed zone plus tentative suffix.
func (b *Buffer) Text() string {
	if b.tentative == "" {
		return b.committed
	}
	if b.committed == "" {
		return b.tentative
	}
	return b.committed + " " + b.tentative
}

// Committed returns the committed zone.
func (b *Buffer) Committed() string { return b.committed }

// Tentative returns the tentative zone.
func (b *Buffer) Tentative() string { return b.tentative }

// SetText replaces the buffer with manually edited text. Edited text
// counts as committed; any tentative suffix is discarded.
func (b *Buffer) SetText(text string) {
	b.committed = text
	b.tentative = ""
}

// Reset clears both zones.
func (b *Buffer) Reset() {
	b.committed = ""
	b.tentative = ""
}
