package workflow

import (
	"strconv"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// SlotPhase is the state of one dashboard counter.
type SlotPhase int

const (
	SlotPending SlotPhase = iota
	SlotReady
	SlotFailed
)

// Slot is one counter on the dashboard.
type Slot struct {
	Key   string
	Label string
	Phase SlotPhase
	Value int64
	Err   error
}

// Display renders the slot value, a placeholder, or an error marker.
func (s Slot) Display() string {
	switch s.Phase {
	case SlotReady:
		return strconv.FormatInt(s.Value, 10)
	case SlotFailed:
		return "Error"
	}
	return "…"
}

// CountQuery fetches one total.
type CountQuery struct {
	Key   string
	Label string
	Fetch func() (int64, error)
}

// CountResultMsg carries the outcome of one CountQuery.
type CountResultMsg struct {
	Key   string
	Value int64
	Err   error
}

func (q CountQuery) cmd() tea.Cmd {
	return func() tea.Msg {
		v, err := q.Fetch()
		return CountResultMsg{Key: q.Key, Value: v, Err: err}
	}
}

// Aggregator runs independent count queries and settles each slot on its
// own. A failed query never touches another slot.
type Aggregator struct {
	queries []CountQuery
	slots   map[string]Slot
}

// NewAggregator returns an aggregator with every slot pending.
func NewAggregator(queries ...CountQuery) Aggregator {
	a := Aggregator{queries: queries, slots: make(map[string]Slot, len(queries))}
	for _, q := range queries {
		a.slots[q.Key] = Slot{Key: q.Key, Label: q.Label}
	}
	return a
}

// Start issues every query at once.
func (a *Aggregator) Start() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.queries))
	for _, q := range a.queries {
		a.slots[q.Key] = Slot{Key: q.Key, Label: q.Label}
		cmds = append(cmds, q.cmd())
	}
	return tea.Batch(cmds...)
}

// Apply settles the slot named by msg. Unknown keys are ignored.
func (a *Aggregator) Apply(msg CountResultMsg) bool {
	slot, ok := a.slots[msg.Key]
	if !ok {
		return false
	}
	if msg.Err != nil {
		slot.Phase = SlotFailed
		slot.Err = msg.Err
		slot.Value = 0
	} else {
		slot.Phase = SlotReady
		slot.Value = msg.Value
		slot.Err = nil
	}
	a.slots[msg.Key] = slot
	return true
}

// Slots returns the slots in query order.
func (a Aggregator) Slots() []Slot {
	out := make([]Slot, 0, len(a.queries))
	for _, q := range a.queries {
		out = append(out, a.slots[q.Key])
	}
	return out
}

// Slot returns one slot by key.
func (a Aggregator) Slot(key string) (Slot, bool) {
	s, ok := a.slots[key]
	return s, ok
}

// Settled reports whether no slot is pending.
func (a Aggregator) Settled() bool {
	for _, s := range a.slots {
		if s.Phase == SlotPending {
			return false
		}
	}
	return true
}

// FetchCounts runs every query concurrently outside the event loop and
// waits for all of them. Each slot carries its own outcome.
func FetchCounts(queries ...CountQuery) []Slot {
	agg := NewAggregator(queries...)
	results := make([]CountResultMsg, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q CountQuery) {
			defer wg.Done()
			v, err := q.Fetch()
			results[i] = CountResultMsg{Key: q.Key, Value: v, Err: err}
		}(i, q)
	}
	wg.Wait()
	for _, r := range results {
		agg.Apply(r)
	}
	return agg.Slots()
}
