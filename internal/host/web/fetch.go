//go:build js && wasm

package web

import (
	"context"
	"fmt"
	"syscall/js"
)

// Fetcher loads assets with window.fetch, relative to the page.
type Fetcher struct{}

// Fetch implements asset.Fetcher.
func (Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := await(window().Call("fetch", url))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if !resp.Get("ok").Bool() {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.Get("status").Int())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := await(resp.Call("arrayBuffer"))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	arr := js.Global().Get("Uint8Array").New(buf)
	b := make([]byte, arr.Get("length").Int())
	js.CopyBytesToGo(b, arr)
	return b, nil
}
