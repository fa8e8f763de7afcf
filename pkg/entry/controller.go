// Package entry implements the note-entry state machine: onboarding, typing or
// dictating a draft, and submitting it to whoever owns the notes.
package entry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/speech"
)

// Option configures a Controller.
type Option func(*Controller)

// WithRecognizer sets the speech engine used by StartRecording.
func WithRecognizer(r speech.Recognizer) Option {
	return func(c *Controller) {
		c.recognizer = r
	}
}

// WithNotifier sets where user-facing notices go.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithLogger sets the logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLanguage sets the recognition language.
func WithLanguage(lang string) Option {
	return func(c *Controller) {
		if lang != "" {
			c.speechConfig.Language = lang
		}
	}
}

// WithSave replaces the creation callback with one that can fail. When it returns an
// error the draft is kept, no success notice is shown and Submit returns the error.
func WithSave(fn func(content string) error) Option {
	return func(c *Controller) {
		c.save = fn
	}
}

// WithOnChange registers a callback invoked after every state change,
// including changes driven by the speech engine.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// Controller manages the lifecycle of composing one note.
//
// It holds at most one speech session. Starting a new one, stopping, submitting,
// cancelling, engine errors and the engine finishing on its own all release the
// current session before anything else,
// and each session is tagged with a generation so late callbacks from a replaced
// session are dropped.
//
// Callbacks (the save callback, the notifier, onChange) are never invoked while the
// controller's lock is held.
type Controller struct {
	save          func(content string) error
	recognizer    speech.Recognizer
	notifier      Notifier
	logger        *slog.Logger
	speechConfig  speech.Config
	onChange      func(State)

	mu         sync.Mutex
	phase      Phase
	draft      Draft
	session    speech.Session
	generation uint64
}

// New creates a Controller in the onboarding phase.
// onNoteCreated is invoked exactly once per successful submission with the trimmed content.
func New(onNoteCreated func(content string), opts ...Option) *Controller {
	c := &Controller{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		speechConfig:  speech.DefaultConfig(),
		phase:         PhaseOnboarding,
	}
	if onNoteCreated != nil {
		c.save = func(content string) error {
			onNoteCreated(content)
			return nil
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Logger: c.logger}
	}
	return c
}

// Snapshot returns the current phase and draft.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{Phase: c.phase, Draft: c.draft}
}

// StartEditing switches from onboarding to manual text entry.
func (c *Controller) StartEditing() {
	c.mu.Lock()
	if c.phase != PhaseOnboarding {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseEditing
	st := c.stateLocked()
	c.mu.Unlock()

	c.changed(st)
}

// SetContent replaces the draft text while editing.
// Clearing the text returns to onboarding. Input is ignored while recording,
// where the transcript owns the draft.
func (c *Controller) SetContent(text string) {
	c.mu.Lock()
	if c.phase != PhaseEditing {
		c.mu.Unlock()
		return
	}
	c.draft.Content = text
	if text == "" {
		c.phase = PhaseOnboarding
	}
	st := c.stateLocked()
	c.mu.Unlock()

	c.changed(st)
}

// StartRecording begins live voice capture from onboarding, or restarts it while
// recording. A typed draft is never handed to the engine: from editing it returns
// ErrRecordingNotAllowed and nothing changes.
//
// Without a usable recognizer a warning is shown, the phase is left unchanged and
// ErrSpeechUnavailable is returned.
func (c *Controller) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == PhaseEditing {
		c.mu.Unlock()
		c.logger.Debug("recording refused while editing")
		return ErrRecordingNotAllowed
	}
	c.mu.Unlock()

	if c.recognizer == nil || !c.recognizer.Available() {
		c.logger.Warn("speech recognition unavailable")
		c.notify(Notice{Level: LevelWarning, Message: MsgSpeechUnsupported, Err: ErrSpeechUnavailable})
		return ErrSpeechUnavailable
	}

	c.mu.Lock()
	if c.phase == PhaseEditing {
		c.mu.Unlock()
		return ErrRecordingNotAllowed
	}
	prev := c.detachLocked()
	gen := c.generation
	c.phase = PhaseRecording
	c.draft.Recording = true
	st := c.stateLocked()
	c.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}

	sess, err := c.recognizer.Start(ctx, c.speechConfig, speech.Handlers{
		OnResult: func(transcript string) { c.handleResult(gen, transcript) },
		OnError:  func(err error) { c.handleError(gen, err) },
	})
	if err != nil {
		c.mu.Lock()
		if c.generation == gen {
			c.phase, c.draft.Recording = c.phaseAfterRecordingLocked(), false
		}
		st = c.stateLocked()
		c.mu.Unlock()

		c.logger.Error("failed to start recording", "error", err)
		c.notify(Notice{Level: LevelError, Message: MsgRecordingFailed, Err: err})
		c.changed(st)
		return fmt.Errorf("failed to start recording: %w", err)
	}

	c.mu.Lock()
	current := c.generation == gen && c.phase == PhaseRecording
	if current {
		c.session = sess
	}
	c.mu.Unlock()

	if !current {
		// Stopped, submitted or failed while the engine was starting.
		sess.Stop()
		return nil
	}

	lifecycle.Go(ctx, func(context.Context) error {
		<-sess.Done()
		c.handleEnded(gen)
		return nil
	})

	c.logger.Debug("recording started", "language", c.speechConfig.Language)
	c.changed(st)
	return nil
}

// StopRecording ends voice capture and keeps the transcript as an editable draft.
// It does not wait for the engine to wind down.
func (c *Controller) StopRecording() {
	c.mu.Lock()
	if c.phase != PhaseRecording {
		c.mu.Unlock()
		return
	}
	sess := c.detachLocked()
	c.phase = PhaseEditing
	c.draft.Recording = false
	st := c.stateLocked()
	c.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}
	c.logger.Debug("recording stopped", "chars", len(st.Draft.Content))
	c.changed(st)
}

// Submit validates the draft and, when valid, hands the trimmed content to the save
// callback, resets the draft and returns to onboarding. An invalid draft is rejected
// with ErrEmptyContent and the phase is left as it was. A failed save keeps the draft
// in the editor.
func (c *Controller) Submit() error {
	c.mu.Lock()
	res := Validate(c.draft)
	if !res.Valid() {
		c.mu.Unlock()
		c.notify(Notice{Level: LevelError, Message: MsgEmptyContent, Err: res.Err})
		return res.Err
	}
	sess := c.detachLocked()
	gen := c.generation
	if c.phase == PhaseRecording {
		c.phase = PhaseEditing
	}
	c.draft.Recording = false
	c.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}

	if c.save != nil {
		if err := c.save(res.Content); err != nil {
			c.mu.Lock()
			st := c.stateLocked()
			c.mu.Unlock()

			c.logger.Error("failed to save note", "error", err)
			c.notify(Notice{Level: LevelError, Message: MsgSaveFailed, Err: err})
			c.changed(st)
			return fmt.Errorf("failed to save note: %w", err)
		}
	}

	c.mu.Lock()
	if c.generation == gen {
		c.draft = Draft{}
		c.phase = PhaseOnboarding
	}
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(Notice{Level: LevelSuccess, Message: MsgNoteCreated})
	c.changed(st)
	return nil
}

// Cancel discards the draft, stops any recording and returns to onboarding.
func (c *Controller) Cancel() {
	c.mu.Lock()
	sess := c.detachLocked()
	c.draft = Draft{}
	c.phase = PhaseOnboarding
	st := c.stateLocked()
	c.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}
	c.changed(st)
}

// Close tears down any running session.
func (c *Controller) Close() {
	c.mu.Lock()
	sess := c.detachLocked()
	if c.phase == PhaseRecording {
		c.phase = c.phaseAfterRecordingLocked()
	}
	c.draft.Recording = false
	c.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}
}

// handleResult applies a cumulative transcript: it replaces the draft, never appends to it.
func (c *Controller) handleResult(gen uint64, transcript string) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhaseRecording {
		c.mu.Unlock()
		return
	}
	c.draft.Content = transcript
	st := c.stateLocked()
	c.mu.Unlock()

	c.changed(st)
}

// handleError ends the session on an engine failure, keeping whatever was transcribed.
func (c *Controller) handleError(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	sess := c.detachLocked()
	if c.phase == PhaseRecording {
		c.phase = c.phaseAfterRecordingLocked()
	}
	c.draft.Recording = false
	st := c.stateLocked()
	c.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}
	c.logger.Error("speech engine error", "error", err)
	c.notify(Notice{Level: LevelError, Message: MsgRecordingFailed, Err: err})
	c.changed(st)
}

// handleEnded moves on when the engine finishes by itself, keeping the transcript.
func (c *Controller) handleEnded(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhaseRecording {
		c.mu.Unlock()
		return
	}
	c.detachLocked()
	c.phase = c.phaseAfterRecordingLocked()
	c.draft.Recording = false
	st := c.stateLocked()
	c.mu.Unlock()

	c.logger.Debug("recording ended", "chars", len(st.Draft.Content))
	c.changed(st)
}

// detachLocked releases the current session handle and invalidates its callbacks.
// The caller stops the returned session after unlocking.
func (c *Controller) detachLocked() speech.Session {
	sess := c.session
	c.session = nil
	c.generation++
	return sess
}

func (c *Controller) phaseAfterRecordingLocked() Phase {
	if c.draft.Content == "" {
		return PhaseOnboarding
	}
	return PhaseEditing
}

func (c *Controller) notify(n Notice) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}

func (c *Controller) changed(st State) {
	if c.onChange != nil {
		c.onChange(st)
	}
}
