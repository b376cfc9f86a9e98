package engine

/*
#include "bridge.h"
*/
import "C"

// GC forwards op to the collector and returns its operation-specific
// result. data is the step size for GCStep, the percentage for GCSetPause
// and GCSetStepMul, the minor multiplier for GCGen and the pause for GCInc;
// 0 keeps Lua's current setting for the mode switches.
func (s *State) GC(op GCOp, data int) int {
	s.check("GC")
	return int(C.lb_gc(s.l, C.int(op), C.int(data)))
}

// MemoryUsage returns the bytes in use by the state.
func (s *State) MemoryUsage() int {
	return s.GC(GCCount, 0)*1024 + s.GC(GCCountB, 0)
}
