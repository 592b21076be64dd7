package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// RuntimeError is the panic value for invariant violations detected while the
// runtime runs. These are not recoverable locally: the runtime panics with a
// *RuntimeError, the diagnostic sink reports it and the run ends.
//
// Runtime errors include:
//   - Popping the last state without a Push replacement
//   - Borrowing a resource that is already borrowed higher in the call chain
//   - Using a Context after the hook that received it returned
//   - Missing rendering or audio subsystem at startup
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodePoppedLastState indicates a Pop emptied the stack and the popped
	// state's OnPopped did not return Push.
	ErrCodePoppedLastState RuntimeErrorCode = "POPPED_LAST_STATE"

	// ErrCodeBorrowConflict indicates a second exclusive borrow of a resource
	// while the first is still held.
	ErrCodeBorrowConflict RuntimeErrorCode = "BORROW_CONFLICT"

	// ErrCodeContextExpired indicates a Context was used after its hook returned.
	ErrCodeContextExpired RuntimeErrorCode = "CONTEXT_EXPIRED"

	// ErrCodeSubsystemUnavailable indicates the surface or audio subsystem
	// could not be acquired at startup.
	ErrCodeSubsystemUnavailable RuntimeErrorCode = "SUBSYSTEM_UNAVAILABLE"

	// ErrCodeAlreadyMounted indicates a second mount of the same runtime.
	ErrCodeAlreadyMounted RuntimeErrorCode = "ALREADY_MOUNTED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + e.Details[k]
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(parts, ", "))
}

// HasCode reports whether err is, or wraps, a RuntimeError with the given code.
func HasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// AsRuntimeError extracts a *RuntimeError from a recovered panic value.
func AsRuntimeError(recovered any) (*RuntimeError, bool) {
	err, ok := recovered.(error)
	if !ok {
		return nil, false
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// NewPoppedLastStateError creates the error raised when the bottom state is
// popped without a replacement.
func NewPoppedLastStateError(state string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodePoppedLastState,
		Message: "popped the last state",
		Details: map[string]string{"state": state},
	}
}

// NewBorrowConflictError creates the error raised on a re-entrant borrow.
func NewBorrowConflictError(resource string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeBorrowConflict,
		Message: fmt.Sprintf("%s is already borrowed", resource),
		Details: map[string]string{"resource": resource},
	}
}

// NewContextExpiredError creates the error raised when a retained Context is used.
func NewContextExpiredError(op string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeContextExpired,
		Message: "context used after its hook returned",
		Details: map[string]string{"op": op},
	}
}

// NewSubsystemUnavailableError creates the startup error for a missing subsystem.
func NewSubsystemUnavailableError(subsystem string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeSubsystemUnavailable,
		Message: fmt.Sprintf("%s subsystem unavailable", subsystem),
		Details: map[string]string{"subsystem": subsystem},
	}
}
