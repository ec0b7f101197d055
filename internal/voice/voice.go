// Package voice turns push-to-talk recordings into text. Transcription is optional:
// without a provider the voice control is disabled and typed chat keeps working.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrUnsupported is returned when no speech recognition is configured.
var ErrUnsupported = errors.New("voice: speech recognition is not available")

// Transcriber produces the final transcript of one utterance.
type Transcriber interface {
	// Available reports whether push-to-talk should be offered at all.
	Available() bool
	Transcribe(ctx context.Context) (string, error)
}

// AudioSource supplies one recorded utterance.
type AudioSource interface {
	// Open returns the recording and a file name whose extension names its format.
	Open() (io.ReadCloser, string, error)
}

// Unsupported is the Transcriber used when voice is disabled.
type Unsupported struct{}

func (Unsupported) Available() bool { return false }

func (Unsupported) Transcribe(context.Context) (string, error) {
	return "", ErrUnsupported
}

// ClipSource reads a recording from a file, e.g. one written by an external recorder.
type ClipSource struct {
	Path string
}

func (c ClipSource) Open() (io.ReadCloser, string, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("voice: no recording at %s", c.Path)
		}
		return nil, "", fmt.Errorf("voice: %w", err)
	}
	return f, c.Path, nil
}

// WithTimeout bounds every transcription by d. A zero d returns tr unchanged.
func WithTimeout(tr Transcriber, d time.Duration) Transcriber {
	if d <= 0 {
		return tr
	}
	return timeout{Transcriber: tr, d: d}
}

type timeout struct {
	Transcriber
	d time.Duration
}

func (t timeout) Transcribe(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.Transcriber.Transcribe(ctx)
}
