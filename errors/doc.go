// Package errors provides structured error types for the lua-runtime library.
//
// Errors are categorized by Phase (where at the boundary the error occurred)
// and Kind (error category). They describe failures of the boundary layer
// itself: a state that could not be allocated, host text that cannot be
// marshalled, a handle that no longer exists.
//
// Failures inside the Lua VM are NOT represented here. Syntax, runtime,
// memory and handler errors are relayed as engine.Status values with the
// error message left on the Lua stack.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMarshal, errors.KindEmbeddedNUL).
//		Op("PushString").
//		Path("value").
//		Detail("NUL byte at offset %d", 3).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.EmbeddedNUL("DoString", "source", 3)
//	err := errors.NotFound(errors.PhaseHost, "handle", h)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
