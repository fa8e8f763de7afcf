package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/jot/pkg/entry"
)

const noticeBuffer = 16

// changedMsg tells the model the controller moved on its own (speech engine callbacks).
type changedMsg struct{}

// noticeMsg carries a notice raised by the controller.
type noticeMsg entry.Notice

// Bridge carries controller callbacks, which may fire on engine goroutines,
// into the Bubble Tea update loop.
//
// Wire it before building the controller:
//
//	b := tui.NewBridge()
//	ctrl := entry.New(onCreated, entry.WithOnChange(b.OnChange), entry.WithNotifier(b))
type Bridge struct {
	changed chan struct{}
	notices chan entry.Notice
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{
		changed: make(chan struct{}, 1),
		notices: make(chan entry.Notice, noticeBuffer),
	}
}

// OnChange coalesces state changes: the model re-reads the snapshot anyway.
func (b *Bridge) OnChange(entry.State) {
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

// Notify implements entry.Notifier. Notices beyond the buffer are dropped.
func (b *Bridge) Notify(n entry.Notice) {
	select {
	case b.notices <- n:
	default:
	}
}

func (b *Bridge) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-b.changed
		return changedMsg{}
	}
}

func (b *Bridge) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-b.notices)
	}
}
