// Package workflow holds the page-independent state machines shared by every
// resource screen: list loading, search filtering, modals, upload drafts,
// toasts, status toggles, and the dashboard counters.
package workflow

// Phase is the load phase of a list.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	}
	return "idle"
}

// ListState tracks one fetched collection. Mutators always build a new
// slice, so a value copy of a ListState never observes later changes.
type ListState[T any] struct {
	items []T
	phase Phase
	err   string
	idOf  func(T) string
}

// NewListState returns an idle, empty list keyed by idOf.
func NewListState[T any](idOf func(T) string) ListState[T] {
	return ListState[T]{items: []T{}, idOf: idOf}
}

// Begin moves the list to loading. It returns false when a fetch is already
// in flight, in which case the caller must not issue another.
func (s *ListState[T]) Begin() bool {
	if s.phase == PhaseLoading {
		return false
	}
	s.phase = PhaseLoading
	return true
}

// Resolve stores a successful fetch. A nil result is an empty list.
func (s *ListState[T]) Resolve(items []T) {
	next := make([]T, len(items))
	copy(next, items)
	s.items = next
	s.phase = PhaseLoaded
	s.err = ""
}

// Fail records a failed fetch and keeps the previous items.
func (s *ListState[T]) Fail(message string) {
	s.phase = PhaseError
	s.err = message
}

func (s ListState[T]) Phase() Phase { return s.phase }

// Err returns the last fetch error, or "".
func (s ListState[T]) Err() string { return s.err }

func (s ListState[T]) Len() int { return len(s.items) }

// Items returns a copy of the current items.
func (s ListState[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Prepend puts item first without contacting the server.
func (s *ListState[T]) Prepend(item T) {
	next := make([]T, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)
	s.items = next
}

// Insert puts item at index, clamped to the list bounds.
func (s *ListState[T]) Insert(index int, item T) {
	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	next := make([]T, 0, len(s.items)+1)
	next = append(next, s.items[:index]...)
	next = append(next, item)
	next = append(next, s.items[index:]...)
	s.items = next
}

// RemoveByID drops every item with id and returns the first one removed and
// its former index.
func (s *ListState[T]) RemoveByID(id string) (T, int, bool) {
	var (
		removed T
		at      = -1
	)
	next := make([]T, 0, len(s.items))
	for i, item := range s.items {
		if s.idOf(item) == id {
			if at < 0 {
				removed, at = item, i
			}
			continue
		}
		next = append(next, item)
	}
	if at < 0 {
		return removed, -1, false
	}
	s.items = next
	return removed, at, true
}

// Update replaces the item with id by fn(item).
func (s *ListState[T]) Update(id string, fn func(T) T) bool {
	for i, item := range s.items {
		if s.idOf(item) != id {
			continue
		}
		next := make([]T, len(s.items))
		copy(next, s.items)
		next[i] = fn(item)
		s.items = next
		return true
	}
	return false
}

// Find returns the item with id.
func (s ListState[T]) Find(id string) (T, bool) {
	for _, item := range s.items {
		if s.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
