//go:build js && wasm

package web

import (
	"context"
)

// LocalStorage is a storage.Backend over window.localStorage. Writes are
// synchronous.
type LocalStorage struct{}

// Load implements storage.Backend.
func (LocalStorage) Load(_ context.Context, key string) (b []byte, ok bool, err error) {
	err = catchJS(func() {
		v := window().Get("localStorage").Call("getItem", key)
		if v.IsNull() {
			return
		}
		b, ok = []byte(v.String()), true
	})
	return b, ok, err
}

// Save implements storage.Backend.
func (LocalStorage) Save(_ context.Context, key string, value []byte) error {
	return catchJS(func() {
		window().Get("localStorage").Call("setItem", key, string(value))
	})
}
