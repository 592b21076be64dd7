package trace

import (
	"fmt"
	"strings"
	"sync"

	"github.com/roach88/quanta/internal/engine"
)

// Recorder collects machine steps. Pass Observe to engine.WithObserver.
type Recorder struct {
	mu    sync.Mutex
	steps []engine.Step
	notes []note
}

// note is an out-of-band line (storage write, fatal error) attached to the
// frame it happened in.
type note struct {
	frame int64
	after int
	text  string
}

// Observe records one step.
func (r *Recorder) Observe(s engine.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, s)
}

// Note attaches a free-form line after the steps recorded so far.
func (r *Recorder) Note(frame int64, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{frame: frame, after: len(r.steps), text: fmt.Sprintf(format, args...)})
}

// Steps returns the recorded steps.
func (r *Recorder) Steps() []engine.Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.Step(nil), r.steps...)
}

// Hooks returns "<state>.<hook>" for every step, the form scenario
// expectations use.
func (r *Recorder) Hooks() []string {
	steps := r.Steps()
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.State + "." + s.Hook
	}
	return out
}

// Entries converts the trace to canonical-JSON-ready values.
func (r *Recorder) Entries() []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]any, 0, len(r.steps)+len(r.notes))
	ni := 0
	flush := func(upTo int) {
		for ni < len(r.notes) && r.notes[ni].after <= upTo {
			n := r.notes[ni]
			out = append(out, map[string]any{"frame": n.frame, "note": n.text})
			ni++
		}
	}
	for i, s := range r.steps {
		flush(i)
		entry := map[string]any{
			"depth":  s.Depth,
			"frame":  s.Frame,
			"hook":   s.Hook,
			"result": s.Result,
			"state":  s.State,
		}
		if s.Event != "" {
			entry["event"] = s.Event
		}
		out = append(out, entry)
	}
	flush(len(r.steps))
	return out
}

// MarshalCanonical encodes the trace as canonical JSON.
func (r *Recorder) MarshalCanonical() ([]byte, error) {
	return MarshalCanonical(r.Entries())
}

// Text renders the trace one line per entry for terminals.
func (r *Recorder) Text() string {
	var b strings.Builder
	for _, e := range r.Entries() {
		m := e.(map[string]any)
		if n, ok := m["note"]; ok {
			fmt.Fprintf(&b, "frame %d  # %s\n", m["frame"], n)
			continue
		}
		fmt.Fprintf(&b, "frame %d  %s.%s", m["frame"], m["state"], m["hook"])
		if ev, ok := m["event"]; ok {
			fmt.Fprintf(&b, "(%s)", ev)
		}
		fmt.Fprintf(&b, " -> %s  depth=%d\n", m["result"], m["depth"])
	}
	return b.String()
}
