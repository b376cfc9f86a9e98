package engine

/*
#include "bridge.h"
*/
import "C"

import (
	"math"
)

// PushString pushes v and returns the copy Lua stored. Text containing a NUL
// byte is rejected with errors.KindEmbeddedNUL.
func (s *State) PushString(v string) (string, error) {
	s.check("PushString")
	cs, err := cstring("PushString", "value", v)
	if err != nil {
		return "", err
	}
	defer free(cs)
	s.ensure("PushString", 1)
	return C.GoString(C.lua_pushstring(s.l, cs)), nil
}

func (s *State) PushNumber(v float64) {
	s.check("PushNumber")
	s.ensure("PushNumber", 1)
	C.lua_pushnumber(s.l, C.lua_Number(v))
}

func (s *State) PushInteger(v int64) {
	s.check("PushInteger")
	s.ensure("PushInteger", 1)
	C.lua_pushinteger(s.l, C.lua_Integer(v))
}

func (s *State) PushBoolean(v bool) {
	s.check("PushBoolean")
	s.ensure("PushBoolean", 1)
	b := C.int(0)
	if v {
		b = 1
	}
	C.lua_pushboolean(s.l, b)
}

func (s *State) PushNil() {
	s.check("PushNil")
	s.ensure("PushNil", 1)
	C.lua_pushnil(s.l)
}

// PushValue pushes a copy of the value at idx.
func (s *State) PushValue(idx int) {
	s.check("PushValue")
	s.ensure("PushValue", 1)
	C.lua_pushvalue(s.l, C.int(idx))
}

// ToString reads the value at idx as text. Numbers are converted, and Lua
// replaces the number on the stack with its string form. Values that are
// neither strings nor numbers read as "".
func (s *State) ToString(idx int) string {
	s.check("ToString")
	var n C.size_t
	p := C.lua_tolstring(s.l, C.int(idx), &n)
	if p == nil {
		return ""
	}
	return C.GoStringN(p, C.int(n))
}

// ToNumber reads the value at idx as a float. Non-convertible values read as 0.
func (s *State) ToNumber(idx int) float64 {
	s.check("ToNumber")
	return float64(C.lb_tonumber(s.l, C.int(idx)))
}

// ToInteger reads the value at idx as an integer. Floats without an exact
// integer representation read as 0, following lua_tointeger.
func (s *State) ToInteger(idx int) int64 {
	s.check("ToInteger")
	return int64(C.lb_tointeger(s.l, C.int(idx)))
}

// ToInt32 narrows ToNumber to 32 bits. The fraction is truncated toward
// zero, out-of-range values saturate and NaN reads as 0.
func (s *State) ToInt32(idx int) int32 {
	f := s.ToNumber(idx)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// ToBoolean applies Lua truthiness: only nil and false are false.
func (s *State) ToBoolean(idx int) bool {
	s.check("ToBoolean")
	return C.lua_toboolean(s.l, C.int(idx)) != 0
}

// GetTop returns the index of the top element, which is the stack depth.
func (s *State) GetTop() int {
	s.check("GetTop")
	return int(C.lua_gettop(s.l))
}

// SetTop resizes the stack to n values, padding with nil or discarding.
// A negative n counts from the top.
func (s *State) SetTop(n int) {
	s.check("SetTop")
	if top := s.GetTop(); n > top {
		s.ensure("SetTop", n-top)
	}
	C.lua_settop(s.l, C.int(n))
}

// Pop removes the top n values.
func (s *State) Pop(n int) {
	s.check("Pop")
	C.lb_pop(s.l, C.int(n))
}

// Replace moves the top value into idx and pops it.
func (s *State) Replace(idx int) {
	s.check("Replace")
	C.lb_replace(s.l, C.int(idx))
}

// Insert moves the top value into idx, shifting the values above it up.
func (s *State) Insert(idx int) {
	s.check("Insert")
	C.lb_insert(s.l, C.int(idx))
}

// AbsIndex converts a top-relative index into its base-relative form.
func (s *State) AbsIndex(idx int) int {
	s.check("AbsIndex")
	return int(C.lua_absindex(s.l, C.int(idx)))
}

// CheckStack grows the stack for n extra values and reports success.
func (s *State) CheckStack(n int) bool {
	s.check("CheckStack")
	return C.lua_checkstack(s.l, C.int(n)) != 0
}

// Type returns the type tag at idx, or TypeNone for an empty position.
func (s *State) Type(idx int) Type {
	s.check("Type")
	return Type(C.lua_type(s.l, C.int(idx)))
}

// TypeName returns Lua's own name for t.
func (s *State) TypeName(t Type) string {
	s.check("TypeName")
	return C.GoString(C.lua_typename(s.l, C.int(t)))
}
