package engine

/*
#include "bridge.h"
*/
import "C"

import (
	"runtime/cgo"
	"sync"
	"unsafe"
)

// GoFunction is a host function callable from Lua. It receives a view of
// the calling thread with its arguments at positions 1..GetTop() and
// returns how many values on top of the stack are its results, or the
// marker returned by Yield or Raise.
//
// Lua errors must not unwind through a GoFunction. Use Raise to throw, and
// prefer the protected SetField/GetField over operations whose metamethods
// may fail.
type GoFunction func(s *State) int

type hostFunction struct {
	fn GoFunction
	vm *vm
}

// liveHandles holds every handle that has not been released yet. A script
// with the debug library can replace a function's upvalue, so a handle
// coming back from C is only resolved if it is in this set.
var liveHandles sync.Map // cgo.Handle -> struct{}

// PushGoFunction pushes fn as a Lua function. The function stays callable
// while Lua can reach it. Its handle is released when the function is
// collected, or at Close at the latest.
func (s *State) PushGoFunction(fn GoFunction) {
	s.check("PushGoFunction")
	s.ensure("PushGoFunction", 3)
	h := cgo.NewHandle(&hostFunction{fn: fn, vm: s.vm})
	liveHandles.Store(h, struct{}{})
	s.vm.handles[h] = struct{}{}
	C.lb_pushgofunction(s.l, C.uintptr_t(h))
}

// HostFunctions returns how many host functions are still held by the state.
func (s *State) HostFunctions() int {
	return len(s.vm.handles)
}

// Register binds fn to the global name.
func (s *State) Register(name string, fn GoFunction) error {
	s.PushGoFunction(fn)
	if err := s.SetGlobal(name); err != nil {
		s.Pop(1)
		return err
	}
	return nil
}

// Raise throws the value on top of the stack as a Lua error. Like Yield it
// must be returned from a GoFunction.
func (s *State) Raise() int {
	return C.LB_RAISE
}

// RaiseError pushes msg and throws it as a Lua error. NUL bytes in msg are
// kept, since lua_pushlstring is length-aware.
func (s *State) RaiseError(msg string) int {
	s.pushBytes(msg)
	return s.Raise()
}

func (s *State) pushBytes(v string) {
	s.ensure("RaiseError", 1)
	p := C.CBytes([]byte(v))
	defer C.free(p)
	C.lua_pushlstring(s.l, (*C.char)(p), C.size_t(len(v)))
}

func (s *State) call(fn *hostFunction) (ret int) {
	s.vm.depth++
	defer func() {
		s.vm.depth--
		if r := recover(); r != nil {
			Logger().Sugar().Errorf("host function panicked: %v", r)
			ret = raiseMessage(s.l, panicMessage(r))
		}
	}()
	return fn.fn(s)
}

// raiseMessage discards the callback's frame and raises msg. It does not
// grow the stack: the panic being reported may be a failed grow, and a
// cleared C frame always has room for one value.
func raiseMessage(l *C.lua_State, msg string) int {
	C.lua_settop(l, 0)
	p := C.CBytes([]byte(msg))
	defer C.free(p)
	C.lua_pushlstring(l, (*C.char)(p), C.size_t(len(msg)))
	return C.LB_RAISE
}

// invoke resolves h and runs its function on the calling thread.
func invoke(lp unsafe.Pointer, h uintptr) (ret int) {
	l := (*C.lua_State)(lp)
	defer func() {
		if r := recover(); r != nil {
			Logger().Sugar().Errorf("host function dispatch panicked: %v", r)
			ret = raiseMessage(l, panicMessage(r))
		}
	}()
	fn, ok := lookupHostFunction(h)
	if !ok || fn.vm.closed || fn.vm.main != C.lb_mainthread(l) {
		return raiseMessage(l, "invalid host function")
	}
	return stateView(lp, fn).call(fn)
}

func lookupHostFunction(h uintptr) (*hostFunction, bool) {
	if _, ok := liveHandles.Load(cgo.Handle(h)); !ok {
		return nil, false
	}
	fn, ok := cgo.Handle(h).Value().(*hostFunction)
	return fn, ok
}

// releaseHandle runs from the function's finalizer and from Close.
func releaseHandle(h cgo.Handle) {
	if _, ok := liveHandles.LoadAndDelete(h); !ok {
		return
	}
	if fn, ok := h.Value().(*hostFunction); ok {
		delete(fn.vm.handles, h)
	}
	h.Delete()
}

func stateView(l unsafe.Pointer, fn *hostFunction) *State {
	return &State{l: (*C.lua_State)(l), vm: fn.vm, thread: (*C.lua_State)(l) != fn.vm.main}
}
