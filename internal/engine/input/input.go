// Package input defines the window-system independent events the editor consumes.
package input

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
	EventMouseLeave
	EventWindowShown
	EventWindowHidden
	EventWindowMinimized
	EventWindowRestored
	EventWindowResize
	EventWindowClose
)

// Key is a physical key the editor binds.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyE
	KeyC
	KeyN
	KeyO
	KeyQ
	KeyR
	KeyZ
	KeyEquals
	KeyMinus
	KeySpace
	KeyEscape
	KeyF1
	KeyF2
	KeyF12
)

// Mod is a bit set of held modifier keys.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether every bit of m2 is set in m.
func (m Mod) Has(m2 Mod) bool {
	return m&m2 == m2
}

// Button is a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event is a processed input or window event. Only the fields relevant
// to Type are set.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool
	Mod    Mod

	X, Y       int
	XRel, YRel int
	Button     Button
	Wheel      int

	Width, Height int
}

// Queue collects the events of one frame.
type Queue struct {
	events []Event
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Push appends e.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Events returns the queued events.
func (q *Queue) Events() []Event {
	return q.events
}

// Reset empties the queue, keeping its storage.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}
