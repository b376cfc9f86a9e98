package engine

/*
#include "bridge.h"
*/
import "C"

import (
	"github.com/wippyai/lua-runtime/errors"
)

// Resume starts or continues the coroutine running on s with nArgs values
// from its stack. It returns the new status and how many values the
// coroutine left on top: the yielded values for StatusYield, the returned
// values for StatusOK, one error message otherwise.
//
// To start a coroutine push its function and arguments onto an otherwise
// empty thread stack. Before resuming a yielded coroutine, pop the values it
// yielded and push the ones yield should return.
//
// Resume blocks until the coroutine yields, fails or finishes. There is no
// way to interrupt it from the host.
func (s *State) Resume(nArgs int) (Status, int) {
	s.check("Resume")
	var nres C.int
	st := C.lb_resume(s.l, C.int(nArgs), &nres)
	return Status(st), int(nres)
}

// Yield suspends the running coroutine with the top nResults values. It is
// only defined inside a GoFunction, which must return its result:
//
//	func(s *engine.State) int {
//		s.PushInteger(42)
//		return s.Yield(1)
//	}
//
// Lua itself aborts the process on a yield outside a running call, so a
// Yield with no host function active panics with errors.KindContractViolation.
// Yielding from a function that is not running as a coroutine raises a Lua
// error in the caller instead.
func (s *State) Yield(nResults int) int {
	s.check("Yield")
	if s.vm.depth == 0 {
		panic(errors.ContractViolation("Yield", "no host function is running"))
	}
	if nResults < 0 {
		panic(errors.ContractViolation("Yield", "negative result count"))
	}
	return C.LB_YIELD_BASE - nResults
}

// Status returns the thread status: StatusOK for a running or finished
// thread, StatusYield for a suspended coroutine, the error status of a
// coroutine that died with an error.
func (s *State) Status() Status {
	s.check("Status")
	return Status(C.lua_status(s.l))
}

// NewThread creates a coroutine thread sharing this state's globals. The
// thread object is pushed onto s and stays alive while it is reachable
// from Lua; popping it lets the collector reclaim it.
func (s *State) NewThread() *State {
	s.check("NewThread")
	s.ensure("NewThread", 1)
	return &State{l: C.lua_newthread(s.l), vm: s.vm, thread: true}
}

// ToThread returns a view of the thread at idx, or nil when the value is
// not a thread. The view is valid while the thread is reachable.
func (s *State) ToThread(idx int) *State {
	s.check("ToThread")
	l := C.lua_tothread(s.l, C.int(idx))
	if l == nil {
		return nil
	}
	return &State{l: l, vm: s.vm, thread: l != s.vm.main}
}

// XMove pops n values from s and pushes them onto to. Both must belong to
// the same state.
func (s *State) XMove(to *State, n int) {
	s.check("XMove")
	if to.vm != s.vm {
		panic(errors.ContractViolation("XMove", "threads belong to different states"))
	}
	to.ensure("XMove", n)
	C.lua_xmove(s.l, to.l, C.int(n))
}
