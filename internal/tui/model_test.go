package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/entry"
	"github.com/aretw0/jot/pkg/speech"
)

type harness struct {
	t      *testing.T
	m      Model
	bridge *Bridge
	ctrl   *entry.Controller

	mu      sync.Mutex
	created []string
}

func newHarness(t *testing.T, opts ...entry.Option) *harness {
	t.Helper()
	h := &harness{t: t, bridge: NewBridge()}
	opts = append(opts, entry.WithOnChange(h.bridge.OnChange), entry.WithNotifier(h.bridge))
	h.ctrl = entry.New(func(content string) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.created = append(h.created, content)
	}, opts...)
	t.Cleanup(h.ctrl.Close)
	h.m = New(context.Background(), h.ctrl, h.bridge)
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) press(k string) tea.Cmd {
	h.t.Helper()
	switch k {
	case "ctrl+s":
		return h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	case "ctrl+r":
		return h.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	case "ctrl+c":
		return h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	case "esc":
		return h.send(tea.KeyMsg{Type: tea.KeyEsc})
	default:
		return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

// deliverNotice feeds the next pending notice into the model.
func (h *harness) deliverNotice() entry.Notice {
	h.t.Helper()
	select {
	case n := <-h.bridge.notices:
		h.send(noticeMsg(n))
		got, ok := h.m.Notice()
		require.True(h.t, ok)
		return got
	case <-time.After(time.Second):
		h.t.Fatal("no notice delivered")
		return entry.Notice{}
	}
}

func (h *harness) createdNotes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.created...)
}

func TestModel_TypeAndSubmit(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, entry.PhaseOnboarding, h.m.State().Phase)
	assert.Contains(t, h.m.View(), "utilize apenas texto")

	h.press("t")
	require.Equal(t, entry.PhaseEditing, h.m.State().Phase)

	h.press("  comprar pão  ")
	assert.Equal(t, "  comprar pão  ", h.m.State().Draft.Content)

	h.press("ctrl+s")
	assert.Equal(t, []string{"comprar pão"}, h.createdNotes())
	assert.Equal(t, entry.PhaseOnboarding, h.m.State().Phase)
	assert.Empty(t, h.m.State().Draft.Content)

	n := h.deliverNotice()
	assert.Equal(t, entry.LevelSuccess, n.Level)
	assert.Contains(t, h.m.View(), entry.MsgNoteCreated)
}

func TestModel_LettersAreTypedWhileEditing(t *testing.T) {
	h := newHarness(t)
	h.press("t")
	h.press("q")
	h.press("r")

	assert.Equal(t, entry.PhaseEditing, h.m.State().Phase)
	assert.Equal(t, "qr", h.m.State().Draft.Content)
}

func TestModel_SubmitBlankIsRejected(t *testing.T) {
	h := newHarness(t)
	h.press("t")
	h.press("   ")

	h.press("ctrl+s")
	assert.Empty(t, h.createdNotes())
	assert.Equal(t, entry.PhaseEditing, h.m.State().Phase)

	n := h.deliverNotice()
	assert.Equal(t, entry.LevelError, n.Level)
	assert.Equal(t, entry.MsgEmptyContent, n.Message)
}

func TestModel_CancelDiscardsDraft(t *testing.T) {
	h := newHarness(t)
	h.press("t")
	h.press("rascunho")

	h.press("esc")
	assert.Equal(t, entry.PhaseOnboarding, h.m.State().Phase)
	assert.Empty(t, h.m.State().Draft.Content)
	assert.Empty(t, h.createdNotes())
}

func TestModel_RecordWithoutEngine(t *testing.T) {
	h := newHarness(t)

	h.press("r")
	assert.Equal(t, entry.PhaseOnboarding, h.m.State().Phase)

	n := h.deliverNotice()
	assert.Equal(t, entry.LevelWarning, n.Level)
	assert.Equal(t, entry.MsgSpeechUnsupported, n.Message)
}

func TestModel_RecordingEndsIntoEditor(t *testing.T) {
	engine := &speech.Scripted{
		Delay: 30 * time.Millisecond,
		Segments: []speech.Segment{
			{Text: "olá "},
			{Text: "olá mundo ", Final: true},
		},
	}
	h := newHarness(t, entry.WithRecognizer(engine))

	h.press("r")
	require.Equal(t, entry.PhaseRecording, h.m.State().Phase)
	assert.Contains(t, h.m.View(), "gravando")

	require.Eventually(t, func() bool {
		st := h.ctrl.Snapshot()
		return st.Phase == entry.PhaseEditing && st.Draft.Content == "olá mundo "
	}, 2*time.Second, 5*time.Millisecond)

	h.send(changedMsg{})
	assert.Equal(t, entry.PhaseEditing, h.m.State().Phase)
	assert.Equal(t, "olá mundo ", h.m.textarea.Value())

	h.press("ctrl+s")
	assert.Equal(t, []string{"olá mundo"}, h.createdNotes())
}

func TestModel_StopRecording(t *testing.T) {
	engine := &speech.Scripted{
		Delay:    time.Hour,
		Segments: []speech.Segment{{Text: "nunca", Final: true}},
	}
	h := newHarness(t, entry.WithRecognizer(engine))

	h.press("r")
	require.Equal(t, entry.PhaseRecording, h.m.State().Phase)

	h.press("ctrl+r")
	assert.Equal(t, entry.PhaseEditing, h.m.State().Phase)
	assert.False(t, h.m.State().Draft.Recording)
}

func TestModel_CtrlRWhileEditingKeepsText(t *testing.T) {
	engine := &speech.Scripted{Segments: []speech.Segment{{Text: "voz", Final: true}}}
	h := newHarness(t, entry.WithRecognizer(engine))

	h.press("t")
	h.press("texto digitado")
	h.press("ctrl+r")

	assert.Equal(t, entry.PhaseEditing, h.m.State().Phase)
	assert.Equal(t, "texto digitado", h.m.State().Draft.Content)
	assert.Equal(t, "texto digitado", h.m.textarea.Value())
}

func TestModel_SaveFailureKeepsDraft(t *testing.T) {
	h := newHarness(t, entry.WithSave(func(string) error {
		return errors.New("disk full")
	}))

	h.press("t")
	h.press("nota importante")
	h.press("ctrl+s")

	assert.Equal(t, entry.PhaseEditing, h.m.State().Phase)
	assert.Equal(t, "nota importante", h.m.textarea.Value())

	n := h.deliverNotice()
	assert.Equal(t, entry.LevelError, n.Level)
	assert.Equal(t, entry.MsgSaveFailed, n.Message)
	assert.Empty(t, h.bridge.notices, "no success notice may follow")
	assert.NotContains(t, h.m.View(), entry.MsgNoteCreated)
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)

	cmd := h.press("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.m.View())
}

func TestBridge_Coalesces(t *testing.T) {
	b := NewBridge()
	b.OnChange(entry.State{})
	b.OnChange(entry.State{Phase: entry.PhaseEditing})

	assert.Len(t, b.changed, 1)
	assert.Equal(t, changedMsg{}, b.waitForChange()())
}
