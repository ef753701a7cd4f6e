// Package errors provides structured error handling for the overlay engine.
//
// Engine operations that can fail under normal conditions (import, export,
// instantiating an unregistered widget type) return *OverlayError values.
// Diagnostics that must never interrupt rendering (invalid positions,
// validation issues found in debug builds) are routed through the global
// [ErrorHandler] instead.
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
	// KindValidation indicates a structurally invalid configuration.
	KindValidation
	// KindResolve indicates a position or binding that could not be resolved.
	KindResolve
	// KindRegistry indicates a widget registry failure.
	KindRegistry
	// KindImport indicates a preset or configuration import failure.
	KindImport
	// KindExport indicates a preset or configuration export failure.
	KindExport
	// KindStorage indicates a preset storage failure.
	KindStorage
	// KindCollision indicates a failure in the deferred collision pass.
	KindCollision
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindResolve:
		return "resolve"
	case KindRegistry:
		return "registry"
	case KindImport:
		return "import"
	case KindExport:
		return "export"
	case KindStorage:
		return "storage"
	case KindCollision:
		return "collision"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// OverlayError represents a structured error raised by the engine.
type OverlayError struct {
	// Op is the operation that failed (e.g., "preset.Import").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// WidgetID is the widget involved, if any.
	WidgetID string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *OverlayError) Error() string {
	if e.WidgetID != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.WidgetID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *OverlayError) Unwrap() error {
	return e.Err
}

// New returns an OverlayError for op wrapping err.
func New(op string, kind ErrorKind, err error) *OverlayError {
	return &OverlayError{Op: op, Kind: kind, Err: err}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "overlay.CollisionPass").
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

// Issue is a single validation or lint finding carried by an IssueReport.
type Issue struct {
	WidgetID string
	Code     string
	Message  string
	Severity string
}

// IssueReport groups the findings of one validation or lint run so handlers
// can print them together.
type IssueReport struct {
	// ConfigID is the configuration the issues belong to.
	ConfigID string
	// Source names the producer ("validate" or "lint").
	Source string
	Issues []Issue
	// Timestamp is when the report was produced.
	Timestamp time.Time
}

// Count returns the number of issues with the given severity.
func (r *IssueReport) Count(severity string) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *OverlayError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleIssues is called with grouped validation or lint findings.
	HandleIssues(report *IssueReport)
}
