package engine

import (
	"errors"
	"math"
	"testing"

	rterrors "github.com/wippyai/lua-runtime/errors"
)

func TestPushString_RoundTrip(t *testing.T) {
	s := newTestState(t)

	for _, v := range []string{"", "hello", "héllo wörld", "line\nbreak", "日本語"} {
		got, err := s.PushString(v)
		if err != nil {
			t.Fatalf("PushString(%q): %v", v, err)
		}
		if got != v {
			t.Errorf("PushString returned %q, want %q", got, v)
		}
		if tp := s.Type(-1); tp != TypeString {
			t.Errorf("Type(-1) = %v, want string", tp)
		}
		if back := s.ToString(s.GetTop()); back != v {
			t.Errorf("ToString = %q, want %q", back, v)
		}
	}
}

func TestPushString_EmbeddedNULRejected(t *testing.T) {
	s := newTestState(t)

	_, err := s.PushString("ab\x00cd")
	if err == nil {
		t.Fatal("expected embedded NUL error")
	}
	var be *rterrors.Error
	if !errors.As(err, &be) || be.Kind != rterrors.KindEmbeddedNUL {
		t.Fatalf("error = %v, want embedded_nul", err)
	}
	if be.Value != 2 {
		t.Errorf("offset = %v, want 2", be.Value)
	}
	if top := s.GetTop(); top != 0 {
		t.Fatalf("rejected push changed the stack: top = %d", top)
	}
}

func TestPushNumeric_RoundTrip(t *testing.T) {
	s := newTestState(t)

	for _, v := range []float64{0, 1.5, -2.25, 1e300, math.SmallestNonzeroFloat64} {
		s.PushNumber(v)
		if got := s.ToNumber(-1); got != v {
			t.Errorf("ToNumber = %v, want %v", got, v)
		}
	}
	for _, v := range []int64{0, 1, -1, math.MaxInt32, math.MinInt32, math.MaxInt64} {
		s.PushInteger(v)
		if got := s.ToInteger(-1); got != v {
			t.Errorf("ToInteger = %v, want %v", got, v)
		}
		if tp := s.Type(-1); tp != TypeNumber {
			t.Errorf("Type = %v, want number", tp)
		}
	}
}

func TestNarrowingReads(t *testing.T) {
	s := newTestState(t)

	tests := []struct {
		name    string
		push    func()
		integer int64
		int32   int32
	}{
		{"integral float", func() { s.PushNumber(3.0) }, 3, 3},
		{"positive fraction", func() { s.PushNumber(3.7) }, 0, 3},
		{"negative fraction", func() { s.PushNumber(-3.7) }, 0, -3},
		{"above int32", func() { s.PushInteger(1 << 40) }, 1 << 40, math.MaxInt32},
		{"below int32", func() { s.PushNumber(-1e12) }, -1e12, math.MinInt32},
		{"numeric string", func() { _, _ = s.PushString("42") }, 42, 42},
		{"non numeric", func() { _, _ = s.PushString("abc") }, 0, 0},
		{"nan", func() { s.PushNumber(math.NaN()) }, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.push()
			defer s.Pop(1)
			if got := s.ToInteger(-1); got != tt.integer {
				t.Errorf("ToInteger = %d, want %d", got, tt.integer)
			}
			if got := s.ToInt32(-1); got != tt.int32 {
				t.Errorf("ToInt32 = %d, want %d", got, tt.int32)
			}
		})
	}
}

func TestBooleanAndNil(t *testing.T) {
	s := newTestState(t)

	s.PushBoolean(true)
	s.PushBoolean(false)
	s.PushNil()
	s.PushInteger(0)
	_, _ = s.PushString("")

	want := []struct {
		tp     Type
		truthy bool
	}{
		{TypeBoolean, true},
		{TypeBoolean, false},
		{TypeNil, false},
		{TypeNumber, true},
		{TypeString, true},
	}
	for i, w := range want {
		idx := i + 1
		if tp := s.Type(idx); tp != w.tp {
			t.Errorf("Type(%d) = %v, want %v", idx, tp, w.tp)
		}
		if b := s.ToBoolean(idx); b != w.truthy {
			t.Errorf("ToBoolean(%d) = %v, want %v", idx, b, w.truthy)
		}
	}
}

func TestToString_Coercion(t *testing.T) {
	s := newTestState(t)

	s.PushInteger(12)
	if got := s.ToString(-1); got != "12" {
		t.Errorf("ToString(integer) = %q, want 12", got)
	}
	// lua_tolstring converts the number in place.
	if tp := s.Type(-1); tp != TypeString {
		t.Errorf("after ToString type = %v, want string", tp)
	}

	s.PushBoolean(true)
	if got := s.ToString(-1); got != "" {
		t.Errorf("ToString(boolean) = %q, want empty fallback", got)
	}
	s.NewTable()
	if got := s.ToNumber(-1); got != 0 {
		t.Errorf("ToNumber(table) = %v, want 0", got)
	}
}

func TestGetTop_PushPop(t *testing.T) {
	s := newTestState(t)

	before := s.GetTop()
	s.PushNil()
	if got := s.GetTop(); got != before+1 {
		t.Fatalf("after PushNil top = %d, want %d", got, before+1)
	}
	s.Pop(1)
	if got := s.GetTop(); got != before {
		t.Fatalf("after Pop top = %d, want %d", got, before)
	}
}

func TestSetTop(t *testing.T) {
	s := newTestState(t)

	s.PushInteger(1)
	s.PushInteger(2)
	s.SetTop(5)
	if top := s.GetTop(); top != 5 {
		t.Fatalf("top = %d, want 5", top)
	}
	for i := 3; i <= 5; i++ {
		if tp := s.Type(i); tp != TypeNil {
			t.Errorf("padded slot %d type = %v, want nil", i, tp)
		}
	}

	s.SetTop(1)
	if top := s.GetTop(); top != 1 {
		t.Fatalf("top = %d, want 1", top)
	}
	if tp := s.Type(2); tp != TypeNone {
		t.Errorf("Type above top = %v, want none", tp)
	}

	s.PushInteger(9)
	s.SetTop(-2)
	if top := s.GetTop(); top != 1 {
		t.Fatalf("SetTop(-2) left top = %d, want 1", top)
	}
}

func TestReplace(t *testing.T) {
	s := newTestState(t)

	s.PushInteger(1)
	s.PushInteger(2)
	s.PushInteger(3)
	s.Replace(1)

	if top := s.GetTop(); top != 2 {
		t.Fatalf("top = %d, want 2", top)
	}
	if v := s.ToInteger(1); v != 3 {
		t.Errorf("slot 1 = %d, want 3", v)
	}
	if v := s.ToInteger(2); v != 2 {
		t.Errorf("slot 2 = %d, want 2", v)
	}

	// Replacing the top with itself just pops it.
	s.Replace(-1)
	if top := s.GetTop(); top != 1 {
		t.Fatalf("top = %d, want 1", top)
	}
}

func TestPushValueAndInsert(t *testing.T) {
	s := newTestState(t)

	_, _ = s.PushString("a")
	_, _ = s.PushString("b")
	s.PushValue(1)
	if got := s.ToString(-1); got != "a" {
		t.Fatalf("PushValue(1) = %q, want a", got)
	}

	s.Insert(1)
	got := []string{s.ToString(1), s.ToString(2), s.ToString(3)}
	if got[0] != "a" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("after Insert stack = %v, want [a a b]", got)
	}
}

func TestIndexing_Relative(t *testing.T) {
	s := newTestState(t)

	for i := int64(1); i <= 4; i++ {
		s.PushInteger(i * 10)
	}
	for i := 1; i <= 4; i++ {
		neg := i - 5
		if a, b := s.ToInteger(i), s.ToInteger(neg); a != b {
			t.Errorf("ToInteger(%d)=%d differs from ToInteger(%d)=%d", i, a, neg, b)
		}
		if abs := s.AbsIndex(neg); abs != i {
			t.Errorf("AbsIndex(%d) = %d, want %d", neg, abs, i)
		}
	}
}

func TestTypeName(t *testing.T) {
	s := newTestState(t)

	for _, tp := range []Type{TypeNone, TypeNil, TypeBoolean, TypeNumber, TypeString, TypeTable, TypeFunction, TypeThread} {
		if got := s.TypeName(tp); got != tp.String() {
			t.Errorf("TypeName(%d) = %q, String() = %q", tp, got, tp.String())
		}
	}
}

func TestCheckStack(t *testing.T) {
	s := newTestState(t)

	if !s.CheckStack(1000) {
		t.Fatal("CheckStack(1000) failed")
	}
	for i := 0; i < 1000; i++ {
		s.PushInteger(int64(i))
	}
	if top := s.GetTop(); top != 1000 {
		t.Fatalf("top = %d, want 1000", top)
	}
}
