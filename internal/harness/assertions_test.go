package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quanta/internal/engine"
	"github.com/roach88/quanta/internal/trace"
)

func resultWithHooks(hooks ...[2]string) *Result {
	rec := &trace.Recorder{}
	for _, h := range hooks {
		rec.Observe(engine.Step{State: h[0], Hook: h[1], Result: "none", Depth: 1})
	}
	return NewResult("t", rec)
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     "stack",
		Expected: "[a]",
		Actual:   "[b]",
		Trace:    []string{"a.on_pushed"},
	}
	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: stack")
	assert.Contains(t, msg, "Expected: [a]")
	assert.Contains(t, msg, "Actual: [b]")
	assert.Contains(t, msg, "[1] a.on_pushed")
}

func TestEvaluate_EmptyExpectPasses(t *testing.T) {
	r := resultWithHooks([2]string{"a", engine.HookPushed})
	assert.Empty(t, evaluate(r, Expect{}))
}

func TestEvaluate_Hooks(t *testing.T) {
	r := resultWithHooks([2]string{"a", engine.HookPushed}, [2]string{"a", engine.HookUpdate})

	assert.Empty(t, evaluate(r, Expect{Hooks: []string{"a.on_pushed", "a.on_update"}}))

	errs := evaluate(r, Expect{Hooks: []string{"a.on_update", "a.on_pushed"}})
	require.Len(t, errs, 1)
	var ae *AssertionError
	require.ErrorAs(t, errs[0], &ae)
	assert.Equal(t, "hooks", ae.Type)
}

func TestEvaluate_Storage(t *testing.T) {
	r := resultWithHooks()
	r.Storage = map[string]any{"score": float64(10), "name": "ann"}

	assert.Empty(t, evaluate(r, Expect{Storage: map[string]any{"name": "ann", "score": 10}}))
	assert.Len(t, evaluate(r, Expect{Storage: map[string]any{"score": 11}}), 1)
}

func TestEvaluate_Fatal(t *testing.T) {
	r := resultWithHooks()
	r.Fatal = "BORROW_CONFLICT"

	errs := evaluate(r, Expect{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Expected: no fatal error")

	assert.Empty(t, evaluate(r, Expect{Fatal: "BORROW_CONFLICT"}))
}

func TestResult_Snapshot(t *testing.T) {
	r := resultWithHooks([2]string{"a", engine.HookPushed})
	r.Fatal = "POPPED_LAST_STATE"

	b, err := trace.MarshalCanonical(r.Snapshot())
	require.NoError(t, err)
	assert.Equal(t,
		`{"fatal":"POPPED_LAST_STATE","scenario":"t","stack":[],"trace":[{"depth":1,"frame":0,"hook":"on_pushed","result":"none","state":"a"}]}`,
		string(b))
}
