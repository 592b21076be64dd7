package input

import (
	"fmt"

	"github.com/roach88/quanta/internal/geom"
)

// Kind names an event variant.
type Kind string

const (
	KindPointerDown Kind = "pointer_down"
	KindPointerUp   Kind = "pointer_up"
	KindPointerMove Kind = "pointer_move"
	KindWheel       Kind = "wheel"
	KindTouchStart  Kind = "touch_start"
	KindTouchMove   Kind = "touch_move"
	KindTouchEnd    Kind = "touch_end"
	KindKeyDown     Kind = "key_down"
	KindKeyUp       Kind = "key_up"
)

// Event is a sealed interface over the normalized input variants.
// Only the types in this file implement it.
type Event interface {
	Kind() Kind
	inputEvent()
}

// PointerDown is a mouse button press.
type PointerDown struct {
	Pos    geom.Vec2
	Button Button
}

// PointerUp is a mouse button release.
type PointerUp struct {
	Pos    geom.Vec2
	Button Button
}

// PointerMove reports the pointer position and the buttons held while moving.
type PointerMove struct {
	Pos     geom.Vec2
	Buttons []Button
}

// Wheel is a scroll-wheel event.
type Wheel struct {
	Pos     geom.Vec2
	Buttons []Button
	Delta   geom.Vec2
}

// TouchStart lists every active touch point after a touch began.
type TouchStart struct {
	Touches []geom.Vec2
}

// TouchMove lists every active touch point after movement.
type TouchMove struct {
	Touches []geom.Vec2
}

// TouchEnd lists the touch points that remain after a touch ended.
type TouchEnd struct {
	Touches []geom.Vec2
}

// Modifiers are the flags attached to a keyboard event.
type Modifiers struct {
	Repeat bool
	Alt    bool
	Shift  bool
	Ctrl   bool
	Meta   bool
}

// KeyDown is a key press. Code is the legacy numeric key code (27 = Escape),
// Key the NFC-normalized key label.
type KeyDown struct {
	Code uint32
	Key  string
	Mods Modifiers
}

// KeyUp is a key release.
type KeyUp struct {
	Code uint32
	Key  string
	Mods Modifiers
}

func (PointerDown) Kind() Kind { return KindPointerDown }
func (PointerUp) Kind() Kind   { return KindPointerUp }
func (PointerMove) Kind() Kind { return KindPointerMove }
func (Wheel) Kind() Kind       { return KindWheel }
func (TouchStart) Kind() Kind  { return KindTouchStart }
func (TouchMove) Kind() Kind   { return KindTouchMove }
func (TouchEnd) Kind() Kind    { return KindTouchEnd }
func (KeyDown) Kind() Kind     { return KindKeyDown }
func (KeyUp) Kind() Kind       { return KindKeyUp }

func (PointerDown) inputEvent() {}
func (PointerUp) inputEvent()   {}
func (PointerMove) inputEvent() {}
func (Wheel) inputEvent()       {}
func (TouchStart) inputEvent()  {}
func (TouchMove) inputEvent()   {}
func (TouchEnd) inputEvent()    {}
func (KeyDown) inputEvent()     {}
func (KeyUp) inputEvent()       {}

// Describe renders an event as a short stable string for logs and traces.
//
// Examples:
//
//	key_down:27
//	pointer_up:left@(10, 20)
//	touch_end:2
func Describe(ev Event) string {
	switch e := ev.(type) {
	case PointerDown:
		return fmt.Sprintf("%s:%s@%s", e.Kind(), e.Button, e.Pos)
	case PointerUp:
		return fmt.Sprintf("%s:%s@%s", e.Kind(), e.Button, e.Pos)
	case PointerMove:
		return fmt.Sprintf("%s@%s", e.Kind(), e.Pos)
	case Wheel:
		return fmt.Sprintf("%s@%s", e.Kind(), e.Pos)
	case TouchStart:
		return fmt.Sprintf("%s:%d", e.Kind(), len(e.Touches))
	case TouchMove:
		return fmt.Sprintf("%s:%d", e.Kind(), len(e.Touches))
	case TouchEnd:
		return fmt.Sprintf("%s:%d", e.Kind(), len(e.Touches))
	case KeyDown:
		return fmt.Sprintf("%s:%d", e.Kind(), e.Code)
	case KeyUp:
		return fmt.Sprintf("%s:%d", e.Kind(), e.Code)
	case nil:
		return "<nil>"
	default:
		return string(ev.Kind())
	}
}
