package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/entry"
	"github.com/aretw0/jot/pkg/speech"
)

func memoryStore(t *testing.T) *core.Store {
	t.Helper()
	store := core.NewStore(memory.NewSlot())
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func TestRunHeadless_Text(t *testing.T) {
	store := memoryStore(t)
	var errOut bytes.Buffer

	note, err := runHeadless(context.Background(), store, speech.Unavailable{},
		headlessRequest{Text: "  comprar pão\n"}, &errOut)
	require.NoError(t, err)

	assert.Equal(t, "comprar pão", note.Content)
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, errOut.String())
}

// failingSlot loads fine but refuses every write.
type failingSlot struct{}

func (failingSlot) Initialize(context.Context) error     { return nil }
func (failingSlot) Read(context.Context) ([]byte, error) { return nil, core.ErrSlotEmpty }
func (failingSlot) Write(context.Context, []byte) error  { return errors.New("disk full") }

func TestRunHeadless_SaveFailure(t *testing.T) {
	store := core.NewStore(failingSlot{})
	require.NoError(t, store.Initialize(context.Background()))
	var errOut bytes.Buffer

	_, err := runHeadless(context.Background(), store, speech.Unavailable{},
		headlessRequest{Text: "não pode sumir"}, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, errOut.String(), entry.MsgSaveFailed)
	assert.NotContains(t, errOut.String(), entry.MsgNoteCreated)
	assert.Equal(t, 0, store.Len())
}

func TestRunHeadless_BlankText(t *testing.T) {
	store := memoryStore(t)
	var errOut bytes.Buffer

	_, err := runHeadless(context.Background(), store, speech.Unavailable{},
		headlessRequest{Text: "   "}, &errOut)
	assert.ErrorIs(t, err, entry.ErrEmptyContent)
	assert.Equal(t, 0, store.Len())
}

func TestRunHeadless_RecordScript(t *testing.T) {
	store := memoryStore(t)
	rec := &speech.Scripted{Segments: []speech.Segment{
		{Text: "lembrar "},
		{Text: "lembrar de regar ", Final: true},
		{Text: "as plantas ", Final: true},
	}}

	note, err := runHeadless(context.Background(), store, rec,
		headlessRequest{Record: true}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "lembrar de regar as plantas", note.Content)
}

func TestRunHeadless_RecordUnavailable(t *testing.T) {
	store := memoryStore(t)
	var errOut bytes.Buffer

	_, err := runHeadless(context.Background(), store, speech.Unavailable{},
		headlessRequest{Record: true}, &errOut)
	assert.ErrorIs(t, err, entry.ErrSpeechUnavailable)
	assert.Contains(t, errOut.String(), entry.MsgSpeechUnsupported)
	assert.Equal(t, 0, store.Len())
}

func TestBuildRecognizer(t *testing.T) {
	t.Cleanup(func() { newScript, newAudio = "", "" })

	t.Run("No Source", func(t *testing.T) {
		newScript, newAudio = "", ""
		rec, err := buildRecognizer(context.Background(), config.Config{})
		require.NoError(t, err)
		assert.False(t, rec.Available())
	})

	t.Run("Script", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dictation.txt")
		require.NoError(t, os.WriteFile(path, []byte("~ olá\nolá mundo\n"), 0644))
		newScript, newAudio = path, ""

		rec, err := buildRecognizer(context.Background(), config.Config{})
		require.NoError(t, err)
		require.IsType(t, &speech.Scripted{}, rec)
		assert.Equal(t, []speech.Segment{{Text: "olá"}, {Text: "olá mundo ", Final: true}}, rec.(*speech.Scripted).Segments)
	})

	t.Run("Audio Without Key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		newScript, newAudio = "", "memo.wav"

		rec, err := buildRecognizer(context.Background(), config.Config{})
		require.NoError(t, err)
		assert.False(t, rec.Available())
	})
}
