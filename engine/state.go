package engine

/*
#cgo pkg-config: lua5.4
#include "bridge.h"
*/
import "C"

import (
	"runtime/cgo"
	"strings"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/lua-runtime/errors"
)

// State is the Engine Handle: it owns exactly one lua_State for its
// lifetime. A State is not safe for concurrent use.
//
// States handed to a GoFunction or returned by NewThread are views onto the
// same VM. They share the owner's lifetime and cannot be closed themselves.
type State struct {
	l      *C.lua_State
	vm     *vm
	thread bool
}

// vm is the lifetime shared by a State and all of its views.
type vm struct {
	main    *C.lua_State
	handles map[cgo.Handle]struct{}
	depth   int // host functions currently on the C stack
	closed  bool
}

// NewState allocates a fresh Lua state. No libraries are opened.
func NewState() (*State, error) {
	l := C.luaL_newstate()
	if l == nil {
		return nil, errors.AllocationFailed("NewState")
	}
	Logger().Debug("lua state created", zap.Uintptr("state", uintptr(unsafe.Pointer(l))))
	return &State{l: l, vm: &vm{main: l, handles: make(map[cgo.Handle]struct{})}}, nil
}

// OpenLibs registers the standard libraries. Lua does not make this
// idempotent; call it at most once per state.
func (s *State) OpenLibs() {
	s.check("OpenLibs")
	C.luaL_openlibs(s.l)
}

// Close releases the Lua state and every host function registered on it.
// All stack values become invalid. Close is idempotent; any other method
// called afterwards panics with an errors.KindClosed error.
func (s *State) Close() {
	if s.thread {
		panic(errors.ContractViolation("Close", "a thread view cannot close its state"))
	}
	if s.vm.closed {
		return
	}
	if s.vm.depth > 0 {
		panic(errors.ContractViolation("Close", "state closed from inside a host function"))
	}
	held := len(s.vm.handles)
	// lua_close runs the finalizers, which release most handles.
	C.lua_close(s.vm.main)
	for h := range s.vm.handles {
		releaseHandle(h)
	}
	Logger().Debug("lua state closed",
		zap.Uintptr("state", uintptr(unsafe.Pointer(s.vm.main))),
		zap.Int("host_functions", held))
	s.vm.handles = nil
	s.vm.closed = true
	s.vm.main = nil
	s.l = nil
}

// Drop closes the state. It lets a State be stored in a resource table.
func (s *State) Drop() {
	if !s.thread {
		s.Close()
	}
}

// Closed reports whether Close has been called.
func (s *State) Closed() bool {
	return s.vm.closed
}

// IsThread reports whether s is a coroutine view rather than the owner.
func (s *State) IsThread() bool {
	return s.thread
}

func (s *State) check(op string) {
	if s.vm.closed {
		panic(errors.Closed(op))
	}
}

// ensure grows the stack so n more values fit. Pushing past the allocated
// stack corrupts memory in an unchecked Lua build.
func (s *State) ensure(op string, n int) {
	if C.lua_checkstack(s.l, C.int(n)) == 0 {
		panic(errors.New(errors.PhaseNative, errors.KindContractViolation).
			Op(op).
			Detail("stack overflow: cannot grow by %d", n).
			Build())
	}
}

// cstring converts host text to a C string. Lua's char* entry points stop
// at the first NUL, so such text is rejected rather than truncated.
// The caller frees the result.
func cstring(op, arg, v string) (*C.char, error) {
	if i := strings.IndexByte(v, 0); i >= 0 {
		return nil, errors.EmbeddedNUL(op, arg, i)
	}
	return C.CString(v), nil
}

func free(p *C.char) {
	C.free(unsafe.Pointer(p))
}
