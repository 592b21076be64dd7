//go:build js && wasm

package web

import (
	"errors"
	"fmt"
	"image"
	"syscall/js"

	"github.com/roach88/quanta/internal/geom"
)

// Canvas is a full-window 2-D canvas sized in device pixels.
type Canvas struct {
	el     js.Value
	ctx    js.Value
	size   geom.Vec2
	images map[image.Image]js.Value
}

// NewCanvas creates the canvas, appends it to the body and keeps it sized to
// the window.
func NewCanvas() (*Canvas, error) {
	el := document().Call("createElement", "canvas")
	if !el.Truthy() {
		return nil, errors.New("create canvas element")
	}
	ctx := el.Call("getContext", "2d")
	if !ctx.Truthy() {
		return nil, errors.New("no 2d canvas context")
	}

	c := &Canvas{el: el, ctx: ctx, images: make(map[image.Image]js.Value)}
	c.resize()

	onResize := js.FuncOf(func(js.Value, []js.Value) any {
		c.resize()
		return nil
	})
	window().Call("addEventListener", "resize", onResize)

	document().Get("body").Call("appendChild", el)
	return c, nil
}

func (c *Canvas) resize() {
	ratio := window().Get("devicePixelRatio").Float()
	w := window().Get("innerWidth").Float()
	h := window().Get("innerHeight").Float()

	c.el.Set("width", int(w*ratio))
	c.el.Set("height", int(h*ratio))
	c.el.Call("setAttribute", "style", fmt.Sprintf("width: %gpx; height: %gpx;", w, h))

	c.ctx.Set("textAlign", "center")
	c.ctx.Set("textBaseline", "middle")
	c.size = geom.V(w*ratio, h*ratio)
}

// Element returns the canvas element, the pointer input target.
func (c *Canvas) Element() js.Value {
	return c.el
}

// Context2D returns the rendering context for game drawing code.
func (c *Canvas) Context2D() js.Value {
	return c.ctx
}

// ResetTransform implements surface.Surface.
func (c *Canvas) ResetTransform() {
	c.ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)
}

// Size implements surface.Surface.
func (c *Canvas) Size() geom.Vec2 {
	return c.size
}

// DrawImage implements surface.ImageDrawer. Each distinct image is uploaded
// to an offscreen canvas once.
func (c *Canvas) DrawImage(img image.Image, src image.Rectangle, dst, size geom.Vec2) {
	off, ok := c.images[img]
	if !ok {
		off = upload(img)
		c.images[img] = off
	}
	b := img.Bounds()
	c.ctx.Call("drawImage", off,
		src.Min.X-b.Min.X, src.Min.Y-b.Min.Y, src.Dx(), src.Dy(),
		dst.X, dst.Y, size.X, size.Y)
}

func upload(img image.Image) js.Value {
	pix, w, h := imageDataPix(img)

	data := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(data, pix)
	imgData := js.Global().Get("ImageData").New(data, w, h)

	off := document().Call("createElement", "canvas")
	off.Set("width", w)
	off.Set("height", h)
	off.Call("getContext", "2d").Call("putImageData", imgData, 0, 0)
	return off
}
