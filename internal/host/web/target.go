//go:build js && wasm

package web

import (
	"syscall/js"

	"github.com/roach88/quanta/internal/geom"
	"github.com/roach88/quanta/internal/input"
)

// Target is a DOM event target. Listeners are never removed.
type Target struct {
	el js.Value
}

// NewTarget wraps a DOM element or the document.
func NewTarget(el js.Value) Target {
	return Target{el: el}
}

// Listen implements input.Source.
func (t Target) Listen(eventType string, fn func(input.Raw)) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn(toRaw(eventType, args[0]))
		return nil
	})
	// Kept for the life of the page, so never released.
	t.el.Call("addEventListener", eventType, cb, map[string]any{"passive": false})
}

func toRaw(eventType string, e js.Value) input.Raw {
	r := input.Raw{
		Type:    eventType,
		Prevent: func() { e.Call("preventDefault") },
	}

	switch eventType {
	case input.RawMouseDown, input.RawMouseUp, input.RawMouseMove, input.RawWheel:
		r.ClientX = e.Get("clientX").Float()
		r.ClientY = e.Get("clientY").Float()
		r.Button = int16(e.Get("button").Int())
		r.Buttons = uint16(e.Get("buttons").Int())
		if eventType == input.RawWheel {
			r.DeltaX = e.Get("deltaX").Float()
			r.DeltaY = e.Get("deltaY").Float()
		}

	case input.RawTouchStart, input.RawTouchMove, input.RawTouchEnd:
		list := e.Get("touches")
		n := list.Get("length").Int()
		r.Touches = make([]geom.Vec2, n)
		for i := 0; i < n; i++ {
			t := list.Call("item", i)
			r.Touches[i] = geom.V(t.Get("clientX").Float(), t.Get("clientY").Float())
		}

	case input.RawKeyDown, input.RawKeyUp:
		r.KeyCode = uint32(e.Get("keyCode").Int())
		r.Key = e.Get("key").String()
		r.Repeat = e.Get("repeat").Bool()
		r.Alt = e.Get("altKey").Bool()
		r.Shift = e.Get("shiftKey").Bool()
		r.Ctrl = e.Get("ctrlKey").Bool()
		r.Meta = e.Get("metaKey").Bool()
	}
	return r
}
