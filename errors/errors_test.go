package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseMarshal,
				Kind:   KindEmbeddedNUL,
				Op:     "SetGlobal",
				Path:   []string{"name"},
				Detail: "NUL byte at offset 2",
			},
			contains: []string{"[marshal]", "embedded_nul", "in SetGlobal", "at name", "offset 2"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLifecycle,
				Kind:  KindClosed,
			},
			contains: []string{"[lifecycle]", "closed"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseSession,
				Kind:   KindClosed,
				Detail: "session stopped",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[session]", "closed", "session stopped", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseHost,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Closed("PushNil")

	if !err.Is(&Error{Phase: PhaseLifecycle, Kind: KindClosed}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseHost, Kind: KindClosed}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseLifecycle, Kind: KindAllocation}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseLifecycle, Kind: KindClosed}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseMarshal, KindEmbeddedNUL).
		Op("PushString").
		Path("value").
		Value(3).
		Cause(cause).
		Detail("NUL byte at offset %d", 3).
		Build()

	if err.Phase != PhaseMarshal {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseMarshal)
	}
	if err.Kind != KindEmbeddedNUL {
		t.Errorf("Kind = %v, want %v", err.Kind, KindEmbeddedNUL)
	}
	if err.Op != "PushString" {
		t.Errorf("Op = %q, want PushString", err.Op)
	}
	if len(err.Path) != 1 || err.Path[0] != "value" {
		t.Errorf("Path = %v, want [value]", err.Path)
	}
	if err.Value != 3 {
		t.Errorf("Value = %v, want 3", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "NUL byte at offset 3" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed("NewState")
		if err.Kind != KindAllocation || err.Phase != PhaseLifecycle {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("EmbeddedNUL", func(t *testing.T) {
		err := EmbeddedNUL("DoString", "source", 7)
		if err.Kind != KindEmbeddedNUL {
			t.Errorf("Kind = %v, want %v", err.Kind, KindEmbeddedNUL)
		}
		if err.Value != 7 {
			t.Errorf("Value = %v, want 7", err.Value)
		}
		if !strings.Contains(err.Error(), "source") {
			t.Errorf("message %q should name the argument", err.Error())
		}
	})

	t.Run("ContractViolation", func(t *testing.T) {
		err := ContractViolation("Yield", "not inside a host function")
		if err.Kind != KindContractViolation || err.Phase != PhaseNative {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("InvalidEnum", func(t *testing.T) {
		err := InvalidEnum(PhaseHost, 42, "GCOp")
		if err.Kind != KindInvalidEnum {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidEnum)
		}
		if err.Value != 42 {
			t.Errorf("Value = %v, want 42", err.Value)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseHost, "handle", 9)
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, "9") {
			t.Errorf("Detail = %q, should contain id", err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseSession, KindClosed, cause, "submit")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep the cause reachable")
		}
	})
}
