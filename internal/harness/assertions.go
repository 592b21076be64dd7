package harness

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an expectation fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string   // Expectation name for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Trace    []string // Hook sequence for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, hook := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, hook)
		}
	}

	return buf.String()
}

// evaluate checks every non-empty expectation against the result.
func evaluate(r *Result, e Expect) []error {
	var errs []error
	hooks := r.Trace.Hooks()

	if e.Hooks != nil && !slices.Equal(hooks, e.Hooks) {
		errs = append(errs, &AssertionError{
			Type:     "hooks",
			Expected: strings.Join(e.Hooks, ", "),
			Actual:   strings.Join(hooks, ", "),
			Trace:    hooks,
		})
	}

	if e.Stack != nil && !slices.Equal(r.Stack, e.Stack) {
		errs = append(errs, &AssertionError{
			Type:     "stack",
			Expected: fmt.Sprintf("%v", e.Stack),
			Actual:   fmt.Sprintf("%v", r.Stack),
			Trace:    hooks,
		})
	}

	if e.Storage != nil {
		if err := assertStorage(r.Storage, e.Storage); err != nil {
			errs = append(errs, err)
		}
	}

	if e.Fatal != r.Fatal {
		expected, actual := e.Fatal, r.Fatal
		if expected == "" {
			expected = "no fatal error"
		}
		if actual == "" {
			actual = "no fatal error"
		}
		errs = append(errs, &AssertionError{
			Type:     "fatal",
			Expected: expected,
			Actual:   actual,
			Trace:    hooks,
		})
	}

	return errs
}

// assertStorage compares by JSON encoding, the form the value is persisted
// in, so YAML integers match decoded JSON numbers.
func assertStorage(actual, expected map[string]any) error {
	a, err := json.Marshal(actual)
	if err != nil {
		return fmt.Errorf("storage: encode actual value: %w", err)
	}
	e, err := json.Marshal(expected)
	if err != nil {
		return fmt.Errorf("storage: encode expected value: %w", err)
	}
	if string(a) != string(e) {
		return &AssertionError{
			Type:     "storage",
			Expected: string(e),
			Actual:   string(a),
		}
	}
	return nil
}
