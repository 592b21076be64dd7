//go:build js && wasm

package web

import (
	"fmt"

	"github.com/roach88/quanta/internal/diag"
)

// ErrorGlobal is the window property the page polls to show a failure.
const ErrorGlobal = "$_GAME_ERROR"

// ErrorSink publishes failures on window.$_GAME_ERROR and the console.
type ErrorSink struct{}

// Report implements diag.Sink.
func (ErrorSink) Report(r diag.Report) {
	msg := r.Message
	if len(r.Stack) > 0 {
		msg = fmt.Sprintf("%s\n\n%s", r.Message, r.Stack)
	}
	window().Set(ErrorGlobal, msg)
	window().Get("console").Call("error", msg)
}
