package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where at the host/VM boundary the error occurred
type Phase string

const (
	PhaseLifecycle Phase = "lifecycle" // state creation and teardown
	PhaseMarshal   Phase = "marshal"   // Go to native conversion
	PhaseNative    Phase = "native"    // calls into the Lua C API
	PhaseHost      Phase = "host"      // handle lookup and host callbacks
	PhaseSession   Phase = "session"   // per-state worker goroutines
)

// Kind categorizes the error
type Kind string

const (
	KindAllocation        Kind = "allocation"
	KindEmbeddedNUL       Kind = "embedded_nul"
	KindClosed            Kind = "closed"
	KindContractViolation Kind = "contract_violation"
	KindInvalidEnum       Kind = "invalid_enum"
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used at the boundary
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the boundary operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// AllocationFailed reports that the native allocator could not provide a state
func AllocationFailed(op string) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindAllocation,
		Op:     op,
		Detail: "native allocator returned no state",
	}
}

// EmbeddedNUL reports host text that cannot cross a NUL-terminated boundary
func EmbeddedNUL(op, arg string, offset int) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindEmbeddedNUL,
		Op:     op,
		Path:   []string{arg},
		Detail: fmt.Sprintf("NUL byte at offset %d", offset),
		Value:  offset,
	}
}

// Closed reports use of a state after it was closed
func Closed(op string) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindClosed,
		Op:     op,
		Detail: "state is closed",
	}
}

// ContractViolation reports a call made outside the context the native API requires
func ContractViolation(op, detail string) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindContractViolation,
		Op:     op,
		Detail: detail,
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, value any, enumType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnum,
		Detail: fmt.Sprintf("invalid enum value %v for %s", value, enumType),
		Value:  value,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what string, id any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %v not found", what, id),
		Value:  id,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
