// Package paint maps pointer input on the 2D panel onto the relief raster.
package paint

import (
	"github.com/Faultbox/relief-editor/internal/relief"
)

// MinScale is the smallest zoom factor the panel accepts.
const MinScale = 0.25

// Button identifies the pointer button behind a press or release.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Surface is the paint panel state: pan, zoom, brush and selection.
type Surface struct {
	CenterX, CenterY float32
	Scale            float32
	Change           int

	SelectedX, SelectedY int

	painting bool
	panning  bool
	lastX    int
	lastY    int

	history *History
	dirty   bool
}

// NewSurface returns a surface at the given zoom and brush delta.
func NewSurface(scale float32, change, undoDepth int) *Surface {
	if scale < MinScale {
		scale = MinScale
	}
	return &Surface{
		Scale:     scale,
		Change:    change,
		SelectedX: -1,
		SelectedY: -1,
		history:   NewHistory(undoDepth),
		dirty:     true,
	}
}

// ToImage maps panel pixel coordinates to raster coordinates.
// The division result is truncated toward zero, so points up to one raster
// pixel left of or above the image still map to row or column 0.
func (s *Surface) ToImage(sx, sy int) (int, int) {
	x := int((float32(sx) - s.CenterX) / s.Scale)
	y := int((float32(sy) - s.CenterY) / s.Scale)
	return x, y
}

// PaintAt applies the brush at a panel position.
func (s *Surface) PaintAt(r *relief.Raster, sx, sy int) bool {
	if r == nil {
		return false
	}
	x, y := s.ToImage(sx, sy)
	return s.apply(r, x, y, s.Change)
}

// PaintSelected applies dv at the current selection. During a primary
// stroke the edit joins that stroke's undo entry.
func (s *Surface) PaintSelected(r *relief.Raster, dv int) bool {
	if r == nil || !relief.InBounds(s.SelectedX, s.SelectedY) {
		return false
	}
	if s.painting {
		return s.apply(r, s.SelectedX, s.SelectedY, dv)
	}
	s.history.Begin()
	ok := s.apply(r, s.SelectedX, s.SelectedY, dv)
	s.history.End()
	return ok
}

func (s *Surface) apply(r *relief.Raster, x, y, dv int) bool {
	if !relief.InBounds(x, y) {
		return false
	}
	s.history.Touch(r)
	if r.Apply(x, y, dv) {
		s.dirty = true
		return true
	}
	return false
}

// Press handles a button press at panel coordinates.
// Primary paints once and starts a stroke; secondary starts panning.
func (s *Surface) Press(r *relief.Raster, b Button, sx, sy int) {
	switch b {
	case ButtonPrimary:
		s.painting = true
		s.history.Begin()
		s.PaintAt(r, sx, sy)
	case ButtonSecondary:
		s.panning = true
		s.lastX, s.lastY = sx, sy
	}
	s.selectAt(sx, sy)
}

// Release ends the stroke or pan started by b.
func (s *Surface) Release(b Button) {
	switch b {
	case ButtonPrimary:
		s.painting = false
		s.history.End()
	case ButtonSecondary:
		s.panning = false
	}
}

// Move handles pointer motion. Painting repeats per event without
// interpolating between positions, so fast drags leave gaps.
func (s *Surface) Move(r *relief.Raster, sx, sy int) {
	switch {
	case s.panning:
		s.CenterX += float32(sx - s.lastX)
		s.CenterY += float32(sy - s.lastY)
		s.lastX, s.lastY = sx, sy
		s.dirty = true
	case s.painting:
		s.PaintAt(r, sx, sy)
	}
	s.selectAt(sx, sy)
}

// Leave clears the selection when the pointer leaves the window.
func (s *Surface) Leave() {
	s.SelectedX, s.SelectedY = -1, -1
	s.dirty = true
}

func (s *Surface) selectAt(sx, sy int) {
	x, y := s.ToImage(sx, sy)
	if x != s.SelectedX || y != s.SelectedY {
		s.SelectedX, s.SelectedY = x, y
		s.dirty = true
	}
}

// Selection returns the selected raster cell and whether it is inside the raster.
func (s *Surface) Selection() (x, y int, ok bool) {
	return s.SelectedX, s.SelectedY, relief.InBounds(s.SelectedX, s.SelectedY)
}

// AddScale adjusts zoom additively, never below MinScale.
func (s *Surface) AddScale(d float32) {
	s.Scale += d
	if s.Scale < MinScale {
		s.Scale = MinScale
	}
	s.dirty = true
}

// AddChange adjusts the brush delta. Positive deltas darken pixels, which
// raises terrain. There is no bound.
func (s *Surface) AddChange(d int) {
	s.Change += d
	s.dirty = true
}

// Undo reverts the most recent stroke on r.
func (s *Surface) Undo(r *relief.Raster) bool {
	if s.history.Undo(r) {
		s.dirty = true
		return true
	}
	return false
}

// Reset drops undo history, used when the raster is replaced.
func (s *Surface) Reset() {
	s.painting = false
	s.panning = false
	s.history.Clear()
	s.dirty = true
}

// Dragging reports whether a stroke or pan is in progress.
func (s *Surface) Dragging() bool {
	return s.painting || s.panning
}

// MarkDirty forces the next panel compose.
func (s *Surface) MarkDirty() {
	s.dirty = true
}

// TakeDirty reports and clears the redraw flag.
func (s *Surface) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}
