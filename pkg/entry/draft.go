package entry

import (
	"errors"
	"strings"
)

// Common errors.
var (
	// ErrEmptyContent rejects a submission whose draft is empty or whitespace only.
	ErrEmptyContent = errors.New("note content cannot be empty")

	// ErrSpeechUnavailable is returned when recording is requested without a usable recognizer.
	ErrSpeechUnavailable = errors.New("speech recognition is not available")

	// ErrRecordingNotAllowed is returned when recording is requested while a typed draft is open.
	ErrRecordingNotAllowed = errors.New("recording can only start from onboarding")
)

// Phase is the UI phase of the note being composed.
type Phase int

const (
	// PhaseOnboarding offers the two entry modes; there is no draft yet.
	PhaseOnboarding Phase = iota
	// PhaseEditing is free-text composition, including editing a finished transcript.
	PhaseEditing
	// PhaseRecording is live voice capture.
	PhaseRecording
)

func (p Phase) String() string {
	switch p {
	case PhaseOnboarding:
		return "onboarding"
	case PhaseEditing:
		return "editing"
	case PhaseRecording:
		return "recording"
	default:
		return "unknown"
	}
}

// Draft is the transient, unsaved note in progress.
type Draft struct {
	Content   string
	Recording bool
}

// Result is the outcome of validating a Draft.
type Result struct {
	Content string // Trimmed content, set when valid.
	Err     error
}

// Valid reports whether the draft can be submitted.
func (r Result) Valid() bool { return r.Err == nil }

// Validate checks that the draft holds at least one non-blank character.
func Validate(d Draft) Result {
	content := strings.TrimSpace(d.Content)
	if content == "" {
		return Result{Err: ErrEmptyContent}
	}
	return Result{Content: content}
}

// State is a read-only view of the controller.
type State struct {
	Phase Phase
	Draft Draft
}
