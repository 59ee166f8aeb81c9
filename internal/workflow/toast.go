package workflow

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 3 * time.Second

// ToastKind is the tone of a toast.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// ToastExpiredMsg is delivered when a toast timer fires. Only the timer of
// the most recent Show for the same owner hides the toast.
type ToastExpiredMsg struct {
	Owner string
	Seq   int
}

// Toast is a single-slot transient message. Show replaces the current
// message and restarts the timer.
type Toast struct {
	Owner    string
	Duration time.Duration

	visible bool
	message string
	kind    ToastKind
	seq     int
	stopped bool
}

// NewToast returns a hidden toast for owner.
func NewToast(owner string) Toast {
	return Toast{Owner: owner, Duration: DefaultToastDuration}
}

// Show displays message and returns the command that will expire it.
func (t *Toast) Show(message string, kind ToastKind) tea.Cmd {
	if t.stopped {
		return nil
	}
	t.seq++
	t.visible = true
	t.message = message
	t.kind = kind

	d := t.Duration
	if d <= 0 {
		d = DefaultToastDuration
	}
	owner, seq := t.Owner, t.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Owner: owner, Seq: seq}
	})
}

// Expire hides the toast if msg belongs to its latest timer.
func (t *Toast) Expire(msg ToastExpiredMsg) bool {
	if msg.Owner != t.Owner || msg.Seq != t.seq || !t.visible {
		return false
	}
	t.visible = false
	t.message = ""
	return true
}

// Dismiss hides the toast and invalidates its pending timer.
func (t *Toast) Dismiss() {
	t.seq++
	t.visible = false
	t.message = ""
}

// Stop dismisses the toast for good. Later Show calls are ignored.
func (t *Toast) Stop() {
	t.Dismiss()
	t.stopped = true
}

func (t Toast) Visible() bool   { return t.visible }
func (t Toast) Message() string { return t.message }
func (t Toast) Kind() ToastKind { return t.kind }
func (t Toast) IsError() bool   { return t.kind == ToastError }
