package cpfuture

import (
	"errors"
	"fmt"
	"strings"
)

// Error is an opaque structured error carrying a context/code identity plus
// an informational message. Two Errors are equal, per [Error.Is], when their
// Context and Code match; Message is informational only and excluded from
// equality.
type Error struct {
	Context uint64
	Code    uint64
	Message string
}

// contextFuture identifies the (context, code) pairs this package reserves
// for itself.
const contextFuture uint64 = 0xcffe

var (
	// Cancelled is published into a promise that lost the race against a
	// [CancellationHandle.Cancel] call bound to it.
	Cancelled = Error{Context: contextFuture, Code: 1, Message: "cpfuture: cancelled"}

	// LifetimeExpired is published when a continuation's Options.Owner no
	// longer exists at the time its LifetimeMonitor is pinned.
	LifetimeExpired = Error{Context: contextFuture, Code: 2, Message: "cpfuture: owner no longer alive"}

	// InvalidArgument is published by combinators given arguments that
	// violate their documented contract, e.g. Any with no futures.
	InvalidArgument = Error{Context: contextFuture, Code: 3, Message: "cpfuture: invalid argument"}
)

// Error implements the standard error interface, so an Error composes with
// errors.Is/errors.As when it ends up wrapped inside a Go error chain (for
// instance, via [Convert] or a user continuation that returns (U, error)).
func (e Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cpfuture: error(context=%#x, code=%d)", e.Context, e.Code)
	}
	return e.Message
}

// Is reports whether target is an Error with the same (Context, Code) pair.
// Message is deliberately excluded.
func (e Error) Is(target error) bool {
	var other Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Context == other.Context && e.Code == other.Code
}

// PanicError wraps a value recovered from a panicking continuation body.
// Publishing a PanicError instead of letting the panic unwind the scheduler
// goroutine keeps one bad continuation from crashing the whole pool.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e PanicError) Error() string {
	return fmt.Sprintf("cpfuture: continuation panicked: %v", e.Value)
}

// Unwrap returns the recovered value if it is itself an error, enabling
// errors.Is/errors.As to see through a panic(err) to the original error.
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// toError adapts user-supplied or panic-recovered values of unknown
// provenance into the library's Error currency, used wherever a
// continuation boundary must guarantee it always has an Error, not a bare
// Go error, to publish.
func toError(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}
	return Error{Context: contextFuture, Code: 0, Message: err.Error()}
}

// CombinedError aggregates every rejection observed while settling a group
// of futures, for diagnostic purposes. AllWithMode's Full mode uses it to
// build the Message of the Error it finally publishes when more than one
// input rejected; the published Error's own Context/Code identity still
// comes from whichever rejection was observed first, so errors.Is matching
// against a well-known sentinel is unaffected by how many siblings failed.
type CombinedError struct {
	Errors []error
}

// Error implements the error interface, joining every aggregated error's
// message so a caller inspecting it (e.g. via a rejected Error's Message
// field) can see every rejection, not just the one that won identity.
func (e *CombinedError) Error() string {
	if len(e.Errors) == 0 {
		return "cpfuture: no errors"
	}
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("cpfuture: %d error(s): %s", len(e.Errors), strings.Join(parts, "; "))
}

// Unwrap supports errors.Is/errors.As against any of the aggregated errors.
func (e *CombinedError) Unwrap() []error {
	return e.Errors
}
