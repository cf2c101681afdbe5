// Package tui runs the terminal feed viewer on top of a state container.
package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Message represents an event flowing into the UI loop.
// Messages come from terminal input, timers, or background goroutines.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// TickMsg is sent on each tick when the app has a tick rate.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// QueueFlushMsg triggers a state queue flush in the update loop.
type QueueFlushMsg struct{}

func (QueueFlushMsg) isMessage() {}

// InvalidateMsg requests a render pass.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// ReloadMsg asks the app to refetch feed data.
type ReloadMsg struct{}

func (ReloadMsg) isMessage() {}

// keyMsg converts a tcell key event.
func keyMsg(ev *tcell.EventKey) KeyMsg {
	return KeyMsg{Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}
}
