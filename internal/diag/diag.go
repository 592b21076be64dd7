// Package diag reports uncaught failures to a host-visible channel.
//
// A Sink is configured once at startup and handed to the driver; there is no
// global hook. Guard wraps every host entry point: when the wrapped function
// panics, the failure is reported and the panic continues. The run is never
// resumed after a report.
package diag

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/roach88/quanta/internal/engine"
)

// Report describes one uncaught failure.
type Report struct {
	// Message is the panic value rendered as text.
	Message string

	// Code is the RuntimeError code, empty for other panics.
	Code engine.RuntimeErrorCode

	// Stack is the goroutine stack at the point of recovery.
	Stack string
}

// NewReport builds a Report from a recovered panic value.
func NewReport(recovered any, stack []byte) Report {
	r := Report{
		Message: fmt.Sprint(recovered),
		Stack:   string(stack),
	}
	if re, ok := engine.AsRuntimeError(recovered); ok {
		r.Code = re.Code
	}
	return r
}

// Sink receives failure reports.
type Sink interface {
	Report(Report)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Report)

func (f SinkFunc) Report(r Report) { f(r) }

// SlogSink logs reports at Error.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Report(r Report) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	attrs := []any{"message", r.Message}
	if r.Code != "" {
		attrs = append(attrs, "code", string(r.Code))
	}
	l.Error("uncaught failure", attrs...)
}

// WriterSink writes the message and stack to W, as a terminal would show it.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Report(r Report) {
	fmt.Fprintf(s.W, "panic: %s\n\n%s", r.Message, r.Stack)
}

// Multi forwards each report to every sink in order.
type Multi []Sink

func (m Multi) Report(r Report) {
	for _, s := range m {
		s.Report(r)
	}
}

// Recorder keeps reports in memory. Used by the headless host and tests.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Recorder) Report(rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

// Reports returns the recorded reports.
func (r *Recorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.reports...)
}

// Guard runs fn. If fn panics, the failure is reported to sink and the panic
// is re-raised with its original value.
func Guard(sink Sink, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if sink != nil {
			sink.Report(NewReport(r, debug.Stack()))
		}
		panic(r)
	}()
	fn()
}
