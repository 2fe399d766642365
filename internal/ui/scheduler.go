package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scrollTickInterval paces auto-scroll while a drag sits in an edge zone.
const scrollTickInterval = 50 * time.Millisecond

// scrollTickMsg fires one pending auto-scroll callback.
type scrollTickMsg struct{}

// tickTask is a cancellable callback scheduled for the next scroll tick. The
// scroller holds it as its [selection.TaskHandle]; Cancel keeps an
// already-emitted tick from running the callback.
type tickTask struct {
	fn        func()
	cancelled bool
}

func (t *tickTask) Cancel() { t.cancelled = true }

// schedule queues fn for the next scroll tick. Only one callback is ever
// pending: the scroller reschedules from inside its own tick, so a new
// schedule call replaces a callback that has already run.
func (m *Model) schedule(fn func()) *tickTask {
	t := &tickTask{fn: fn}
	m.pendingTick = t
	return t
}

// armScrollCmd emits a single tea.Tick for the pending callback. Update
// handlers call it after any event that may have scheduled a tick; it is a
// no-op when nothing is pending or a tick is already in flight.
func (m *Model) armScrollCmd() tea.Cmd {
	if m.pendingTick == nil || m.tickArmed {
		return nil
	}
	m.tickArmed = true
	return tea.Tick(scrollTickInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{}
	})
}

// runScrollTick runs the pending callback, which may schedule the next one.
func (m *Model) runScrollTick() tea.Cmd {
	m.tickArmed = false
	t := m.pendingTick
	m.pendingTick = nil
	if t != nil && !t.cancelled {
		t.fn()
	}
	return m.armScrollCmd()
}
