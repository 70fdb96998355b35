// Package diag provides error reporting for the compiler's semantic
// core: severities, the spec's error taxonomy, and a collector that
// lets compilation continue past a single bad declaration so multiple
// errors can be surfaced per translation unit.
package diag

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/HugoDaniel/gocc/internal/token"
)

// Severity is the level of a diagnostic.
type Severity uint8

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Code enumerates the error taxonomy from spec.md §7.
type Code string

const (
	InvalidTypeSpec    Code = "InvalidTypeSpec"
	IncompleteType     Code = "IncompleteType"
	TypeMismatch       Code = "TypeMismatch"
	NotConstant        Code = "NotConstant"
	ConstantArithmetic Code = "ConstantArithmetic"
	DuplicateMember    Code = "DuplicateMember"
)

// Diagnostic is a single reported message.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Loc      token.Location
}

func (d Diagnostic) String() string {
	if d.Code != "" {
		return fmt.Sprintf("%s: %s: [%s] %s", d.Loc, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Loc, d.Severity, d.Message)
}

// Error implements the error interface so a Diagnostic can be returned
// directly from a constructor that fails.
func (d Diagnostic) Error() string {
	return d.String()
}

// CodedError wraps a diag.Code with a causal chain, for internal
// evaluator/registry failures that want both a matchable Code and a
// human-readable cause (e.g. "division by zero" under a cast).
func CodedError(code Code, loc token.Location, format string, args ...interface{}) error {
	base := Diagnostic{Severity: Error, Code: code, Loc: loc, Message: fmt.Sprintf(format, args...)}
	return errors.WithStack(base)
}

// Wrap attaches a diag.Code to an existing error's causal chain.
func Wrap(err error, code Code, loc token.Location, message string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, Diagnostic{Severity: Error, Code: code, Loc: loc, Message: message}.String())
}

// CodeOf extracts the Code from an error, if any Diagnostic appears in
// its cause chain.
func CodeOf(err error) (Code, bool) {
	var d Diagnostic
	for err != nil {
		if dd, ok := err.(Diagnostic); ok {
			d = dd
			return d.Code, true
		}
		cause := errors.Cause(err)
		if cause == err {
			break
		}
		err = cause
	}
	return "", false
}

// Reporter collects diagnostics during one translation unit's
// compilation instead of aborting on the first error, per spec.md §7's
// "continue parsing/checking when possible" policy.
type Reporter struct {
	items []Diagnostic
}

// NewReporter creates an empty collector.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Errorf records an error-severity diagnostic.
func (r *Reporter) Errorf(loc token.Location, code Code, format string, args ...interface{}) {
	r.items = append(r.items, Diagnostic{Severity: Error, Code: code, Loc: loc, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning-severity diagnostic.
func (r *Reporter) Warnf(loc token.Location, code Code, format string, args ...interface{}) {
	r.items = append(r.items, Diagnostic{Severity: Warning, Code: code, Loc: loc, Message: fmt.Sprintf(format, args...)})
}

// Report records an already-built error, extracting a Diagnostic from
// its cause chain when present, else wrapping it as a generic error.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	if d, ok := err.(Diagnostic); ok {
		r.items = append(r.items, d)
		return
	}
	r.items = append(r.items, Diagnostic{Severity: Error, Message: err.Error()})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far, in report order.
func (r *Reporter) All() []Diagnostic {
	return r.items
}

// Reset clears every recorded diagnostic.
func (r *Reporter) Reset() {
	r.items = r.items[:0]
}
