package texture

// Set holds one GL handle per library slot. Failed slots hold 0.
type Set struct {
	Handles []uint32
	current int
}

// Current returns the handle of the selected slot.
func (s *Set) Current() uint32 {
	if len(s.Handles) == 0 {
		return 0
	}
	return s.Handles[s.current]
}

// Index returns the selected slot.
func (s *Set) Index() int {
	return s.current
}

// Cycle selects the next slot, wrapping around.
func (s *Set) Cycle() int {
	if len(s.Handles) > 0 {
		s.current = (s.current + 1) % len(s.Handles)
	}
	return s.current
}
