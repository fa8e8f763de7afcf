package speech

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/lifecycle"
)

// emitFunc hands a recognized segment to the session.
type emitFunc func(Segment)

// session runs an engine loop on its own goroutine and turns segments into cumulative transcripts.
type session struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *session) Stop() { s.cancel() }

func (s *session) Done() <-chan struct{} { return s.done }

// startSession runs loop until it returns or the session is stopped.
//
// Interim segments replace the previous interim segment; final segments are kept.
// Without cfg.InterimResults only final segments are reported, and without
// cfg.Continuous the session ends after its first final segment.
func startSession(ctx context.Context, cfg Config, h Handlers, loop func(ctx context.Context, emit emitFunc) error) Session {
	runCtx, cancel := context.WithCancel(ctx)
	s := &session{cancel: cancel, done: make(chan struct{})}

	var segments []Segment
	emit := func(seg Segment) {
		if runCtx.Err() != nil {
			return
		}
		if n := len(segments); n > 0 && !segments[n-1].Final {
			segments = segments[:n-1]
		}
		segments = append(segments, seg)
		if !seg.Final && !cfg.InterimResults {
			return
		}
		if h.OnResult != nil {
			h.OnResult(Cumulative(segments))
		}
		if seg.Final && !cfg.Continuous {
			cancel()
		}
	}

	fail := func(err error) {
		if h.OnError != nil && err != nil {
			h.OnError(err)
		}
	}

	lifecycle.Go(runCtx, func(ctx context.Context) (err error) {
		defer close(s.done)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("speech engine panic: %v", r)
				fail(err)
			}
		}()

		err = loop(ctx, emit)
		switch {
		case errors.Is(err, context.Canceled) || ctx.Err() != nil:
			return nil
		case err != nil:
			fail(err)
			return nil
		case len(segments) == 0:
			fail(ErrNoSpeech)
		}
		return nil
	})
	return s
}
