package engine

/*
#include "bridge.h"
*/
import "C"

// DoString compiles src and runs it in the global scope. On failure the
// error message is left on top of the stack for the caller to read.
// The returned error only reports text that cannot be marshalled.
func (s *State) DoString(src string) (Status, error) {
	s.check("DoString")
	cs, err := cstring("DoString", "source", src)
	if err != nil {
		return 0, err
	}
	defer free(cs)
	s.ensure("DoString", 1)
	return Status(C.lb_dostring(s.l, cs)), nil
}

// DoFile is DoString with the source read by Lua from path. The path is not
// validated here; a missing file yields StatusErrFile.
func (s *State) DoFile(path string) (Status, error) {
	s.check("DoFile")
	cs, err := cstring("DoFile", "path", path)
	if err != nil {
		return 0, err
	}
	defer free(cs)
	s.ensure("DoFile", 1)
	return Status(C.lb_dofile(s.l, cs)), nil
}

// LoadString compiles src and pushes the resulting function without running
// it. On failure the error message is pushed instead.
func (s *State) LoadString(src string) (Status, error) {
	s.check("LoadString")
	cs, err := cstring("LoadString", "source", src)
	if err != nil {
		return 0, err
	}
	defer free(cs)
	s.ensure("LoadString", 1)
	return Status(C.luaL_loadstring(s.l, cs)), nil
}

// LoadFile is LoadString with the source read by Lua from path.
func (s *State) LoadFile(path string) (Status, error) {
	s.check("LoadFile")
	cs, err := cstring("LoadFile", "path", path)
	if err != nil {
		return 0, err
	}
	defer free(cs)
	s.ensure("LoadFile", 1)
	return Status(C.lb_loadfile(s.l, cs)), nil
}

// PCall calls the function below the top nArgs values in protected mode,
// leaving nResults values (all of them for MultRet) or the error message.
func (s *State) PCall(nArgs, nResults int) Status {
	s.check("PCall")
	return Status(C.lb_pcall(s.l, C.int(nArgs), C.int(nResults)))
}
