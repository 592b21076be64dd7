//go:build js && wasm

package web

import (
	"syscall/js"

	"github.com/roach88/quanta/internal/driver"
)

// Host drives frames with requestAnimationFrame.
type Host struct{}

// Now implements driver.Host.
func (Host) Now() float64 {
	return js.Global().Get("Date").Call("now").Float() / 1e3
}

// RequestFrame implements driver.Host.
func (Host) RequestFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	window().Call("requestAnimationFrame", cb)
}

// Metrics implements driver.Host. The font size is the root element's
// computed font-size.
func (Host) Metrics() driver.Metrics {
	m := driver.Metrics{
		FontSizePx:       driver.FallbackFontSizePx,
		DevicePixelRatio: window().Get("devicePixelRatio").Float(),
	}
	style := window().Call("getComputedStyle", document().Get("documentElement"))
	if style.Truthy() {
		m.FontSizePx = driver.ParseFontSize(style.Call("getPropertyValue", "font-size").String())
	}
	return m
}
