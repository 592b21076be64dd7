package harness

import (
	"fmt"

	"github.com/roach88/quanta/internal/diag"
	"github.com/roach88/quanta/internal/engine"
	"github.com/roach88/quanta/internal/trace"
)

// Result represents the outcome of running a scenario.
type Result struct {
	// Name is the scenario name.
	Name string

	// Pass indicates overall test success.
	// True if every expectation holds.
	Pass bool

	// Trace holds every hook call in order, plus save and fatal notes.
	Trace *trace.Recorder

	// Display is the display the run used after defaults.
	Display Display

	// Frames is the number of frames dispatched after mount.
	Frames int64

	// Stack is the state names bottom to top at the end of the run.
	Stack []string

	// Storage is the persisted value at the end of the run.
	Storage Value

	// Saves counts successful storage writes.
	Saves int

	// Fatal is the RuntimeError code (or panic message) that ended the run.
	Fatal string

	// Assets is the number of images the scenario loaded.
	Assets int

	// AssetFailures lists the URLs that failed to load, sorted.
	AssetFailures []string

	// Reports are the failures the diagnostic sink received.
	Reports []diag.Report

	// Errors contains failed expectations.
	// Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult(name string, rec *trace.Recorder) *Result {
	return &Result{
		Name:  name,
		Pass:  true,
		Trace: rec,
	}
}

// AddError adds an error message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) setFatal(recovered any) {
	if re, ok := engine.AsRuntimeError(recovered); ok {
		r.Fatal = string(re.Code)
		return
	}
	r.Fatal = fmt.Sprint(recovered)
}

// Snapshot is the golden form of a result: scenario name, final stack,
// fatal code and trace.
func (r *Result) Snapshot() map[string]any {
	stack := r.Stack
	if stack == nil {
		stack = []string{}
	}
	snap := map[string]any{
		"scenario": r.Name,
		"stack":    stack,
		"trace":    r.Trace.Entries(),
	}
	if r.Fatal != "" {
		snap["fatal"] = r.Fatal
	}
	return snap
}
