package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/relief-editor/internal/engine/input"
)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.Scancode(sdl.SCANCODE_W):      input.KeyW,
	sdl.Scancode(sdl.SCANCODE_A):      input.KeyA,
	sdl.Scancode(sdl.SCANCODE_S):      input.KeyS,
	sdl.Scancode(sdl.SCANCODE_D):      input.KeyD,
	sdl.Scancode(sdl.SCANCODE_E):      input.KeyE,
	sdl.Scancode(sdl.SCANCODE_C):      input.KeyC,
	sdl.Scancode(sdl.SCANCODE_N):      input.KeyN,
	sdl.Scancode(sdl.SCANCODE_O):      input.KeyO,
	sdl.Scancode(sdl.SCANCODE_Q):      input.KeyQ,
	sdl.Scancode(sdl.SCANCODE_R):      input.KeyR,
	sdl.Scancode(sdl.SCANCODE_Z):      input.KeyZ,
	sdl.Scancode(sdl.SCANCODE_EQUALS): input.KeyEquals,
	sdl.Scancode(sdl.SCANCODE_MINUS):  input.KeyMinus,
	sdl.Scancode(sdl.SCANCODE_SPACE):  input.KeySpace,
	sdl.Scancode(sdl.SCANCODE_ESCAPE): input.KeyEscape,
	sdl.Scancode(sdl.SCANCODE_F1):     input.KeyF1,
	sdl.Scancode(sdl.SCANCODE_F2):     input.KeyF2,
	sdl.Scancode(sdl.SCANCODE_F12):    input.KeyF12,
}

func modifiers(state uint32) input.Mod {
	var m input.Mod
	if state&uint32(sdl.KMOD_SHIFT) != 0 {
		m |= input.ModShift
	}
	if state&uint32(sdl.KMOD_CTRL) != 0 || state&uint32(sdl.KMOD_GUI) != 0 {
		m |= input.ModCtrl
	}
	if state&uint32(sdl.KMOD_ALT) != 0 {
		m |= input.ModAlt
	}
	return m
}

func button(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	}
	return input.ButtonNone
}

// Poll drains the SDL queue into q. Unbound keys are dropped.
func (w *Window) Poll(q *input.Queue) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			q.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if ev, ok := windowEvent(e); ok {
				q.Push(ev)
			}

		case *sdl.KeyboardEvent:
			key, ok := scancodes[e.Keysym.Scancode]
			if !ok {
				continue
			}
			ev := input.Event{
				Type:   input.EventKeyDown,
				Key:    key,
				Repeat: e.Repeat != 0,
				Mod:    modifiers(uint32(e.Keysym.Mod)),
			}
			if e.Type == sdl.KEYUP {
				ev.Type = input.EventKeyUp
			}
			q.Push(ev)

		case *sdl.MouseMotionEvent:
			q.Push(input.Event{
				Type: input.EventMouseMove,
				X:    int(e.X),
				Y:    int(e.Y),
				XRel: int(e.XRel),
				YRel: int(e.YRel),
				Mod:  modifiers(uint32(sdl.GetModState())),
			})

		case *sdl.MouseButtonEvent:
			ev := input.Event{
				Type:   input.EventMouseDown,
				X:      int(e.X),
				Y:      int(e.Y),
				Button: button(e.Button),
				Mod:    modifiers(uint32(sdl.GetModState())),
			}
			if e.Type == sdl.MOUSEBUTTONUP {
				ev.Type = input.EventMouseUp
			}
			q.Push(ev)

		case *sdl.MouseWheelEvent:
			dy := int(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			if dy == 0 {
				continue
			}
			x, y, _ := sdl.GetMouseState()
			q.Push(input.Event{
				Type:  input.EventMouseWheel,
				X:     int(x),
				Y:     int(y),
				Wheel: dy,
				Mod:   modifiers(uint32(sdl.GetModState())),
			})
		}
	}
}

func windowEvent(e *sdl.WindowEvent) (input.Event, bool) {
	switch e.Event {
	case sdl.WINDOWEVENT_SHOWN:
		return input.Event{Type: input.EventWindowShown}, true
	case sdl.WINDOWEVENT_HIDDEN:
		return input.Event{Type: input.EventWindowHidden}, true
	case sdl.WINDOWEVENT_MINIMIZED:
		return input.Event{Type: input.EventWindowMinimized}, true
	case sdl.WINDOWEVENT_RESTORED:
		return input.Event{Type: input.EventWindowRestored}, true
	case sdl.WINDOWEVENT_SIZE_CHANGED:
		return input.Event{Type: input.EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
	case sdl.WINDOWEVENT_LEAVE:
		return input.Event{Type: input.EventMouseLeave}, true
	case sdl.WINDOWEVENT_CLOSE:
		return input.Event{Type: input.EventWindowClose}, true
	}
	return input.Event{}, false
}
