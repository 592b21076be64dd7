//go:build js && wasm

package web

import (
	"fmt"
	"syscall/js"
)

func window() js.Value   { return js.Global() }
func document() js.Value { return js.Global().Get("document") }

// await blocks the calling goroutine until p settles. It must not be called
// from a JS callback.
func await(p js.Value) (js.Value, error) {
	type result struct {
		v   js.Value
		err error
	}
	ch := make(chan result, 1)

	var then, catch js.Func
	then = js.FuncOf(func(_ js.Value, args []js.Value) any {
		ch <- result{v: args[0]}
		then.Release()
		catch.Release()
		return nil
	})
	catch = js.FuncOf(func(_ js.Value, args []js.Value) any {
		ch <- result{err: jsError(args[0])}
		then.Release()
		catch.Release()
		return nil
	})
	p.Call("then", then).Call("catch", catch)

	r := <-ch
	return r.v, r.err
}

func jsError(v js.Value) error {
	if v.Type() == js.TypeObject && v.Get("message").Type() == js.TypeString {
		return fmt.Errorf("js: %s", v.Get("message").String())
	}
	return fmt.Errorf("js: %s", v.String())
}

// catchJS converts a JS exception raised inside fn into an error.
func catchJS(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}
