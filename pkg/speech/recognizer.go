package speech

import (
	"context"
	"errors"
	"strings"
)

// DefaultLanguage is the single language the voice engine is configured with.
const DefaultLanguage = "pt-BR"

// Common errors.
var (
	// ErrNoSpeech is reported when a session ends without recognizing anything.
	ErrNoSpeech = errors.New("no speech detected")

	// ErrUnavailable is returned by Start when the engine cannot run in this environment.
	ErrUnavailable = errors.New("speech recognition is not available")
)

// Config mirrors the knobs of a continuous dictation engine.
type Config struct {
	Language       string
	Continuous     bool // Keep listening after the first final result.
	InterimResults bool // Report in-progress hypotheses, not only final segments.
}

// DefaultConfig returns the dictation settings used for note entry.
func DefaultConfig() Config {
	return Config{
		Language:       DefaultLanguage,
		Continuous:     true,
		InterimResults: true,
	}
}

// Handlers receive session output. Both may be called from a goroutine other than the caller's.
type Handlers struct {
	OnResult func(transcript string)
	OnError  func(err error)
}

// Session is a handle on one running recognition.
type Session interface {
	// Stop asks the engine to stop. It does not wait; no callbacks follow once Done is closed.
	Stop()
	// Done is closed when the session has fully ended.
	Done() <-chan struct{}
}

// Recognizer is a speech-to-text engine.
type Recognizer interface {
	// Available reports whether the engine can run in this environment.
	Available() bool
	// Start begins a new session.
	Start(ctx context.Context, cfg Config, h Handlers) (Session, error)
}

// Segment is one recognized piece of speech.
type Segment struct {
	Text  string
	Final bool
}

// Cumulative joins segments in arrival order.
func Cumulative(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Unavailable is a Recognizer for environments without speech support.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Start(context.Context, Config, Handlers) (Session, error) {
	return nil, ErrUnavailable
}
