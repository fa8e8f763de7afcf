package speech_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/jot/pkg/speech"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder collects session callbacks.
type recorder struct {
	mu      sync.Mutex
	results []string
	errs    []error
}

func (r *recorder) handlers() speech.Handlers {
	return speech.Handlers{
		OnResult: func(s string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.results = append(r.results, s)
		},
		OnError: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
	}
}

func (r *recorder) snapshot() ([]string, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.results...), append([]error(nil), r.errs...)
}

func waitDone(t *testing.T, s speech.Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end")
	}
}

func TestScripted_CumulativeTranscript(t *testing.T) {
	rec := &recorder{}
	rz := &speech.Scripted{Segments: []speech.Segment{
		{Text: "ola"},
		{Text: "ola mundo", Final: true},
	}}

	s, err := rz.Start(context.Background(), speech.DefaultConfig(), rec.handlers())
	require.NoError(t, err)
	waitDone(t, s)

	results, errs := rec.snapshot()
	assert.Equal(t, []string{"ola", "ola mundo"}, results)
	assert.Empty(t, errs)
}

func TestScripted_InterimSegmentsAreReplaced(t *testing.T) {
	rec := &recorder{}
	rz := &speech.Scripted{Segments: []speech.Segment{
		{Text: "bom ", Final: true},
		{Text: "di"},
		{Text: "dia"},
		{Text: "dia!", Final: true},
	}}

	s, err := rz.Start(context.Background(), speech.DefaultConfig(), rec.handlers())
	require.NoError(t, err)
	waitDone(t, s)

	results, _ := rec.snapshot()
	assert.Equal(t, []string{"bom ", "bom di", "bom dia", "bom dia!"}, results)
}

func TestScripted_FinalOnlyWithoutInterimResults(t *testing.T) {
	rec := &recorder{}
	rz := &speech.Scripted{Segments: []speech.Segment{
		{Text: "hel"},
		{Text: "hello ", Final: true},
		{Text: "wor"},
		{Text: "world", Final: true},
	}}

	cfg := speech.DefaultConfig()
	cfg.InterimResults = false
	s, err := rz.Start(context.Background(), cfg, rec.handlers())
	require.NoError(t, err)
	waitDone(t, s)

	results, _ := rec.snapshot()
	assert.Equal(t, []string{"hello ", "hello world"}, results)
}

func TestScripted_SingleShotStopsAfterFirstFinal(t *testing.T) {
	rec := &recorder{}
	rz := &speech.Scripted{Segments: []speech.Segment{
		{Text: "one ", Final: true},
		{Text: "two ", Final: true},
	}}

	cfg := speech.DefaultConfig()
	cfg.Continuous = false
	s, err := rz.Start(context.Background(), cfg, rec.handlers())
	require.NoError(t, err)
	waitDone(t, s)

	results, errs := rec.snapshot()
	assert.Equal(t, []string{"one "}, results)
	assert.Empty(t, errs)
}

func TestScripted_StopEndsSession(t *testing.T) {
	rec := &recorder{}
	rz := &speech.Scripted{
		Segments: []speech.Segment{{Text: "a ", Final: true}, {Text: "b ", Final: true}},
		Delay:    time.Hour,
	}

	s, err := rz.Start(context.Background(), speech.DefaultConfig(), rec.handlers())
	require.NoError(t, err)
	s.Stop()
	waitDone(t, s)

	results, errs := rec.snapshot()
	assert.Empty(t, results)
	assert.Empty(t, errs, "stopping is not an engine error")
}

func TestScripted_Errors(t *testing.T) {
	t.Run("No Speech", func(t *testing.T) {
		rec := &recorder{}
		s, err := (&speech.Scripted{}).Start(context.Background(), speech.DefaultConfig(), rec.handlers())
		require.NoError(t, err)
		waitDone(t, s)

		_, errs := rec.snapshot()
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], speech.ErrNoSpeech)
	})

	t.Run("Engine Failure After Results", func(t *testing.T) {
		rec := &recorder{}
		network := errors.New("network")
		rz := &speech.Scripted{Segments: []speech.Segment{{Text: "partial", Final: true}}, Err: network}

		s, err := rz.Start(context.Background(), speech.DefaultConfig(), rec.handlers())
		require.NoError(t, err)
		waitDone(t, s)

		results, errs := rec.snapshot()
		assert.Equal(t, []string{"partial"}, results)
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], network)
	})
}

func TestParseScript(t *testing.T) {
	segments, err := speech.ParseScript(strings.NewReader("~ ola\nola mundo\n\n~ tudo\ntudo bem\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []speech.Segment{
		{Text: "ola"},
		{Text: "ola mundo ", Final: true},
		{Text: "tudo"},
		{Text: "tudo bem ", Final: true},
	}, segments)
}

func TestUnavailable(t *testing.T) {
	var rz speech.Recognizer = speech.Unavailable{}
	assert.False(t, rz.Available())
	_, err := rz.Start(context.Background(), speech.DefaultConfig(), speech.Handlers{})
	assert.ErrorIs(t, err, speech.ErrUnavailable)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := speech.NewGemini(context.Background(), speech.GeminiConfig{})
	assert.Error(t, err)
}
