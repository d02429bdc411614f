// Package google provides a Google Cloud Speech-to-Text recognizer.
package google

import (
	"context"
	"errors"
	"io"
	"sync"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"

	"ai-chat-console/internal/dictation/recognizer"
)

// Config holds streaming recognition parameters.
type Config struct {
	LanguageCode   string
	SampleRateHz   int32
	InterimResults bool
}

// Recognizer implements recognizer.Recognizer using Google Cloud
// Speech-to-Text streaming recognition. Audio is fed by the embedder
// through SendAudio.
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
type Recognizer struct {
	client *speech.Client
	cfg    Config

	mu     sync.Mutex
	stream speechpb.Speech_StreamingRecognizeClient
	cb     recognizer.Callback
}

// New creates a new Google recognizer.
func New(ctx context.Context, cfg Config) (*Recognizer, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Recognizer{client: c, cfg: cfg}, nil
}

// Start opens a streaming session, sends the recognition config as
// the first message, and begins listening for results.
func (r *Recognizer) Start(ctx context.Context, cb recognizer.Callback) error {
	stream, err := r.client.StreamingRecognize(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.stream = stream
	r.cb = cb
	r.mu.Unlock()

	err = stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config: &speechpb.RecognitionConfig{
					Encoding:        speechpb.RecognitionConfig_LINEAR16,
					SampleRateHertz: r.cfg.SampleRateHz,
					LanguageCode:    r.cfg.LanguageCode,
				},
				InterimResults: r.cfg.InterimResults,
			},
		},
	})
	if err != nil {
		return err
	}

	go r.listen(stream, cb)
	return nil
}

// SendAudio sends LINEAR16 audio bytes into the active stream.
func (r *Recognizer) SendAudio(audio []byte) error {
	r.mu.Lock()
	stream := r.stream
	r.mu.Unlock()
	if stream == nil {
		return errors.New("recognizer not started")
	}
	return stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
			AudioContent: audio,
		},
	})
}

// Stop half-closes the stream; the end notification arrives through
// the listen loop once the server finishes responding.
func (r *Recognizer) Stop() error {
	r.mu.Lock()
	stream := r.stream
	r.mu.Unlock()
	if stream == nil {
		return nil
	}
	return stream.CloseSend()
}

// listen receives responses and maps each one to a single result
// delivery: final alternatives in arrival order plus the combined
// interim text as the tentative segment.
func (r *Recognizer) listen(stream speechpb.Speech_StreamingRecognizeClient, cb recognizer.Callback) {
	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				cb.OnEnd()
			} else {
				cb.OnError(err)
				cb.OnEnd()
			}
			return
		}

		var finals []string
		var tentative string
		for _, res := range resp.Results {
			if len(res.Alternatives) == 0 {
				continue
			}
			text := res.Alternatives[0].Transcript
			if res.IsFinal {
				finals = append(finals, text)
			} else {
				tentative += text
			}
		}
		if len(finals) > 0 || tentative != "" {
			cb.OnResult(finals, tentative)
		}
	}
}

// Close releases the underlying client.
func (r *Recognizer) Close() error {
	return r.client.Close()
}
