package workflow

// Toggle is a two-state approval control. Activate flips the shown value
// into a pending state; Confirm keeps it and Reject rolls it back.
type Toggle struct {
	value   bool
	prev    bool
	pending bool
}

// NewToggle seeds the toggle with the server's status.
func NewToggle(initial bool) Toggle {
	return Toggle{value: initial, prev: initial}
}

// Activate flips the value and returns it. It refuses while a change is
// still pending.
func (t *Toggle) Activate() (bool, bool) {
	if t.pending {
		return t.value, false
	}
	t.prev = t.value
	t.value = !t.value
	t.pending = true
	return t.value, true
}

// Confirm accepts the pending value.
func (t *Toggle) Confirm() {
	t.prev = t.value
	t.pending = false
}

// Reject restores the value shown before Activate.
func (t *Toggle) Reject() {
	t.value = t.prev
	t.pending = false
}

func (t Toggle) On() bool      { return t.value }
func (t Toggle) Pending() bool { return t.pending }
