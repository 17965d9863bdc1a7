package paint

import "github.com/Faultbox/relief-editor/internal/relief"

// History keeps pre-stroke raster snapshots for undo.
// A snapshot is taken lazily on the first pixel a stroke actually touches,
// so clicks outside the raster do not fill the stack.
type History struct {
	depth   int
	stack   [][]byte
	open    bool
	pending bool
}

// NewHistory returns a history holding at most depth strokes. Depth 0 disables undo.
func NewHistory(depth int) *History {
	return &History{depth: depth}
}

// Begin opens a stroke.
func (h *History) Begin() {
	h.open = true
	h.pending = true
}

// Touch records the raster state before the first write of the open stroke.
// Writes outside a stroke are recorded as single-pixel strokes.
func (h *History) Touch(r *relief.Raster) {
	if h.depth <= 0 {
		return
	}
	if h.open && !h.pending {
		return
	}
	h.stack = append(h.stack, r.Snapshot())
	if len(h.stack) > h.depth {
		h.stack = h.stack[len(h.stack)-h.depth:]
	}
	h.pending = false
}

// End closes the open stroke.
func (h *History) End() {
	h.open = false
	h.pending = false
}

// Undo restores the most recent snapshot into r.
func (h *History) Undo(r *relief.Raster) bool {
	if r == nil || len(h.stack) == 0 {
		return false
	}
	last := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	r.Restore(last)
	return true
}

// Len returns the number of undoable strokes.
func (h *History) Len() int {
	return len(h.stack)
}

// Clear drops all snapshots.
func (h *History) Clear() {
	h.stack = nil
	h.open = false
	h.pending = false
}
