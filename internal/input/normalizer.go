package input

import (
	"errors"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/quanta/internal/geom"
)

// Raw event type names, as delivered by the host.
const (
	RawContextMenu = "contextmenu"
	RawMouseDown   = "mousedown"
	RawMouseUp     = "mouseup"
	RawMouseMove   = "mousemove"
	RawWheel       = "wheel"
	RawTouchStart  = "touchstart"
	RawTouchMove   = "touchmove"
	RawTouchEnd    = "touchend"
	RawKeyDown     = "keydown"
	RawKeyUp       = "keyup"
)

// Raw is a host input event before normalization. Only the fields relevant to
// Type are meaningful. Positions are in logical (CSS) pixels.
type Raw struct {
	Type string

	ClientX, ClientY float64
	Button           int16
	Buttons          uint16
	DeltaX, DeltaY   float64

	Touches []geom.Vec2

	KeyCode uint32
	Key     string
	Repeat  bool
	Alt     bool
	Shift   bool
	Ctrl    bool
	Meta    bool

	// Prevent suppresses the host's default action. May be nil.
	Prevent func()
}

// PreventDefault suppresses the host default action for this event.
func (r Raw) PreventDefault() {
	if r.Prevent != nil {
		r.Prevent()
	}
}

// Source is a host event target. Listen subscribes fn for the lifetime of the
// process; there is no way to unsubscribe.
type Source interface {
	Listen(eventType string, fn func(Raw))
}

// ErrAlreadyInstalled is returned when Install is called twice.
var ErrAlreadyInstalled = errors.New("input: listeners already installed")

// Normalizer converts raw host events into Events on a Queue.
type Normalizer struct {
	queue     *Queue
	ratio     func() float64
	logger    *slog.Logger
	installed bool
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithLogger sets the logger used for dropped-event diagnostics.
func WithLogger(l *slog.Logger) NormalizerOption {
	return func(n *Normalizer) {
		n.logger = l
	}
}

// NewNormalizer creates a normalizer appending to q. ratio returns the current
// device pixel ratio; it is read for every event.
func NewNormalizer(q *Queue, ratio func() float64, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		queue:  q,
		ratio:  ratio,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Install subscribes one listener per raw source. Pointer, wheel, touch and
// context-menu listeners go on pointer, keyboard listeners on keys (the
// browser host passes the canvas and the document).
//
// Listeners live for the whole process. Calling Install again returns
// ErrAlreadyInstalled and installs nothing.
func (n *Normalizer) Install(pointer, keys Source) error {
	if n.installed {
		return ErrAlreadyInstalled
	}
	n.installed = true

	pointer.Listen(RawContextMenu, func(r Raw) { r.PreventDefault() })
	pointer.Listen(RawMouseDown, n.handle)
	pointer.Listen(RawMouseUp, n.handle)
	pointer.Listen(RawMouseMove, n.handle)
	pointer.Listen(RawWheel, n.handle)
	pointer.Listen(RawTouchStart, n.handle)
	pointer.Listen(RawTouchMove, n.handle)
	pointer.Listen(RawTouchEnd, n.handle)
	keys.Listen(RawKeyDown, n.handle)
	keys.Listen(RawKeyUp, n.handle)

	n.logger.Debug("input listeners installed")
	return nil
}

func (n *Normalizer) handle(r Raw) {
	ev, ok := n.Normalize(r)
	if !ok {
		return
	}
	n.queue.Push(ev)
}

// Normalize converts one raw event. It reports false when no Event is
// produced: unknown types and pointer buttons outside the code table.
// Touch events have their default action suppressed here.
func (n *Normalizer) Normalize(r Raw) (Event, bool) {
	ratio := n.ratio()
	pos := geom.V(r.ClientX*ratio, r.ClientY*ratio)

	switch r.Type {
	case RawMouseDown:
		b, ok := FromCode(r.Button)
		if !ok {
			n.logger.Debug("dropping pointer event", "type", r.Type, "button", r.Button)
			return nil, false
		}
		return PointerDown{Pos: pos, Button: b}, true

	case RawMouseUp:
		b, ok := FromCode(r.Button)
		if !ok {
			n.logger.Debug("dropping pointer event", "type", r.Type, "button", r.Button)
			return nil, false
		}
		return PointerUp{Pos: pos, Button: b}, true

	case RawMouseMove:
		return PointerMove{Pos: pos, Buttons: FromBitmask(r.Buttons)}, true

	case RawWheel:
		return Wheel{
			Pos:     pos,
			Buttons: FromBitmask(r.Buttons),
			Delta:   geom.V(r.DeltaX, r.DeltaY),
		}, true

	case RawTouchStart:
		r.PreventDefault()
		return TouchStart{Touches: scaleTouches(r.Touches, ratio)}, true

	case RawTouchMove:
		r.PreventDefault()
		return TouchMove{Touches: scaleTouches(r.Touches, ratio)}, true

	case RawTouchEnd:
		r.PreventDefault()
		return TouchEnd{Touches: scaleTouches(r.Touches, ratio)}, true

	case RawKeyDown:
		return KeyDown{Code: r.KeyCode, Key: norm.NFC.String(r.Key), Mods: modifiers(r)}, true

	case RawKeyUp:
		return KeyUp{Code: r.KeyCode, Key: norm.NFC.String(r.Key), Mods: modifiers(r)}, true

	default:
		return nil, false
	}
}

func scaleTouches(touches []geom.Vec2, ratio float64) []geom.Vec2 {
	out := make([]geom.Vec2, len(touches))
	for i, t := range touches {
		out[i] = t.Scale(ratio)
	}
	return out
}

func modifiers(r Raw) Modifiers {
	return Modifiers{
		Repeat: r.Repeat,
		Alt:    r.Alt,
		Shift:  r.Shift,
		Ctrl:   r.Ctrl,
		Meta:   r.Meta,
	}
}
