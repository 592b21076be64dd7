// Package web is the browser host, built for GOOS=js GOARCH=wasm.
//
// Frames are driven by requestAnimationFrame, input comes from DOM listeners
// on the canvas and the document, drawing goes to a full-window 2-D canvas,
// audio to WebAudio and the persisted value to localStorage. Uncaught
// failures are published on window.$_GAME_ERROR for the page to show.
package web
