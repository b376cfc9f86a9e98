package engine

/*
#include "bridge.h"
*/
import "C"

import (
	"github.com/wippyai/lua-runtime/errors"
)

// Status is the result code of execution and resume operations. Values map
// 1:1 to the Lua constants and are relayed without interpretation.
type Status int

const (
	StatusOK        Status = C.LUA_OK
	StatusYield     Status = C.LUA_YIELD
	StatusErrRun    Status = C.LUA_ERRRUN
	StatusErrSyntax Status = C.LUA_ERRSYNTAX
	StatusErrMem    Status = C.LUA_ERRMEM
	StatusErrErr    Status = C.LUA_ERRERR

	// StatusErrFile is produced by DoFile and LoadFile when Lua cannot
	// open or read the file.
	StatusErrFile Status = C.LUA_ERRFILE
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusYield:
		return "yield"
	case StatusErrRun:
		return "runtime error"
	case StatusErrSyntax:
		return "syntax error"
	case StatusErrMem:
		return "memory error"
	case StatusErrErr:
		return "error in error handler"
	case StatusErrFile:
		return "file error"
	default:
		return "unknown status"
	}
}

// IsError reports whether the status is one of the error classes.
func (s Status) IsError() bool {
	return s != StatusOK && s != StatusYield
}

// ParseStatus validates a host-supplied status code.
func ParseStatus(v int) (Status, error) {
	s := Status(v)
	if s < StatusOK || s > StatusErrFile {
		return 0, errors.InvalidEnum(errors.PhaseHost, v, "Status")
	}
	return s, nil
}

// GCOp selects a garbage-collector action.
type GCOp int

const (
	GCStop       GCOp = C.LUA_GCSTOP
	GCRestart    GCOp = C.LUA_GCRESTART
	GCCollect    GCOp = C.LUA_GCCOLLECT
	GCCount      GCOp = C.LUA_GCCOUNT
	GCCountB     GCOp = C.LUA_GCCOUNTB
	GCStep       GCOp = C.LUA_GCSTEP
	GCSetPause   GCOp = C.LUA_GCSETPAUSE
	GCSetStepMul GCOp = C.LUA_GCSETSTEPMUL

	// GCSetMajorInc was removed in Lua 5.4. It is still forwarded, and Lua
	// answers -1 for an unknown option.
	GCSetMajorInc GCOp = 8

	GCIsRunning GCOp = C.LUA_GCISRUNNING
	GCGen       GCOp = C.LUA_GCGEN
	GCInc       GCOp = C.LUA_GCINC
)

var gcOpNames = [...]string{
	GCStop:        "stop",
	GCRestart:     "restart",
	GCCollect:     "collect",
	GCCount:       "count",
	GCCountB:      "countb",
	GCStep:        "step",
	GCSetPause:    "setpause",
	GCSetStepMul:  "setstepmul",
	GCSetMajorInc: "setmajorinc",
	GCIsRunning:   "isrunning",
	GCGen:         "generational",
	GCInc:         "incremental",
}

// String returns the short name of the operation.
func (op GCOp) String() string {
	if op < 0 || int(op) >= len(gcOpNames) {
		return "unknown"
	}
	return gcOpNames[op]
}

// ParseGCOp validates a host-supplied operation code.
func ParseGCOp(v int) (GCOp, error) {
	if v < 0 || v >= len(gcOpNames) {
		return 0, errors.InvalidEnum(errors.PhaseHost, v, "GCOp")
	}
	return GCOp(v), nil
}

// LookupGCOp resolves an operation by the name String returns.
func LookupGCOp(name string) (GCOp, bool) {
	for i, n := range gcOpNames {
		if n == name {
			return GCOp(i), true
		}
	}
	return 0, false
}

// Type is the runtime type tag of a stack value.
type Type int

const (
	TypeNone          Type = C.LUA_TNONE
	TypeNil           Type = C.LUA_TNIL
	TypeBoolean       Type = C.LUA_TBOOLEAN
	TypeLightUserdata Type = C.LUA_TLIGHTUSERDATA
	TypeNumber        Type = C.LUA_TNUMBER
	TypeString        Type = C.LUA_TSTRING
	TypeTable         Type = C.LUA_TTABLE
	TypeFunction      Type = C.LUA_TFUNCTION
	TypeUserdata      Type = C.LUA_TUSERDATA
	TypeThread        Type = C.LUA_TTHREAD
)

// String matches lua_typename.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "no value"
	case TypeNil:
		return "nil"
	case TypeBoolean:
		return "boolean"
	case TypeLightUserdata, TypeUserdata:
		return "userdata"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	case TypeFunction:
		return "function"
	case TypeThread:
		return "thread"
	default:
		return "unknown"
	}
}

// MultRet asks PCall to keep every result.
const MultRet = C.LUA_MULTRET
