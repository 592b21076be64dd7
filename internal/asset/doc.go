// Package asset loads images and sounds without blocking the frame loop.
//
// Every load returns a *Pending immediately. A goroutine fetches and decodes
// the bytes and settles the Pending exactly once. Consumers poll Ready every
// frame; "not ready yet" is a normal state, not an error. A failed load
// settles the Pending with an error, is logged and is reported to the
// Loader's OnError hook. It never aborts the run.
package asset
