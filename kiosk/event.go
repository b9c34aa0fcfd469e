/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

// EventKind identifies an input the kiosk reacts to.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	KeyDown
	TouchStart
	Resize
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case KeyDown:
		return "keydown"
	case TouchStart:
		return "touchstart"
	case Resize:
		return "resize"
	default:
		return "unknown"
	}
}

// Area is the part of the display a pointer event landed on.
type Area int

const (
	AreaNone Area = iota
	AreaLogo
	AreaQuestions
)

// KeyEnter is the key name that starts a round from the logo.
const KeyEnter = "Enter"

// Event is a single input delivered to the Machine.
type Event struct {
	Kind     EventKind
	Key      string
	Target   Area
	Viewport Size
}

// activity reports whether the event counts towards keeping the kiosk awake.
func (e Event) activity() bool {
	switch e.Kind {
	case PointerDown, PointerMove, KeyDown, TouchStart:
		return true
	}

	return false
}
