// Package errors provides structured error handling for the statebind library.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSubscription indicates a store subscription or unsubscribe failure.
	KindSubscription
	// KindAsyncInit indicates an asynchronous state initializer failure.
	KindAsyncInit
	// KindPatch indicates a shape violation in a patchable record update.
	KindPatch
	// KindDispatch indicates a failure while scheduling onto the UI thread.
	KindDispatch
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindSubscription:
		return "subscription"
	case KindAsyncInit:
		return "async-init"
	case KindPatch:
		return "patch"
	case KindDispatch:
		return "dispatch"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BindError represents a structured error in the statebind library.
type BindError struct {
	// Op is the operation that failed (e.g., "binding.Patchable.SetItem").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component names the owning component or source, if known.
	Component string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "binding.unsubscribe").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the statebind library.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BindError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
