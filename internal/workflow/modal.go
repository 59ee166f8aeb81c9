package workflow

// ModalState is which modal, if any, a page shows.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalDetail
	ModalCreate
)

// Modal allows at most one of the detail and create modals to be open.
type Modal[T any] struct {
	state   ModalState
	payload T
}

// OpenDetail shows rec, replacing an open create modal.
func (m *Modal[T]) OpenDetail(rec T) {
	m.state = ModalDetail
	m.payload = rec
}

// OpenCreate shows the create modal, replacing an open detail modal.
func (m *Modal[T]) OpenCreate() {
	var zero T
	m.state = ModalCreate
	m.payload = zero
}

// Close hides any modal and clears the payload. It does not cancel a
// submission already in flight.
func (m *Modal[T]) Close() {
	var zero T
	m.state = ModalClosed
	m.payload = zero
}

func (m Modal[T]) State() ModalState { return m.state }

func (m Modal[T]) IsOpen() bool { return m.state != ModalClosed }

// Payload returns the record of an open detail modal.
func (m Modal[T]) Payload() (T, bool) {
	return m.payload, m.state == ModalDetail
}
