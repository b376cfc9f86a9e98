package engine

/*
#include <stdint.h>
#include <lua.h>
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"
)

// lbInvoke is the Go side of the C trampoline behind every GoFunction.
//
//export lbInvoke
func lbInvoke(l *C.lua_State, h C.uintptr_t) C.int {
	return C.int(invoke(unsafe.Pointer(l), uintptr(h)))
}

// lbRelease is called by a host function's finalizer.
//
//export lbRelease
func lbRelease(h C.uintptr_t) {
	releaseHandle(cgo.Handle(h))
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return "host function panic: " + err.Error()
	}
	return fmt.Sprintf("host function panic: %v", r)
}
