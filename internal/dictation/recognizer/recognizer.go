// Package recognizer defines the capability port over a continuous
// speech-recognition session.
package recognizer

import "context"

// Callback receives recognition results from the provider.
//
// Each OnResult delivery carries the segments that became final since
// the previous delivery (possibly none) and at most one trailing
// tentative segment, which remains revisable until confirmed.
type Callback interface {
	OnResult(finals []string, tentative string)

	// OnError is called when the recognizer reports a fault.
	OnError(err error)

	// OnEnd is called when the session terminates, whether requested
	// via Stop or ended naturally by the provider.
	OnEnd()
}

// Recognizer is a continuous speech-recognition session. A single
// instance is constructed lazily and reused across start/stop cycles.
type Recognizer interface {
	// Start begins a recognition session delivering results to cb.
	Start(ctx context.Context, cb Callback) error

	// Stop requests session termination. Termination is confirmed
	// asynchronously through the callback's OnEnd, not by this call.
	Stop() error
}
