package engine

/*
#include "bridge.h"
*/
import "C"

// SetGlobal pops the top value and binds it to name in the global table.
func (s *State) SetGlobal(name string) error {
	s.check("SetGlobal")
	cs, err := cstring("SetGlobal", "name", name)
	if err != nil {
		return err
	}
	defer free(cs)
	C.lua_setglobal(s.l, cs)
	return nil
}

// GetGlobal pushes the value bound to name, nil when unbound, and returns
// its type.
func (s *State) GetGlobal(name string) (Type, error) {
	s.check("GetGlobal")
	cs, err := cstring("GetGlobal", "name", name)
	if err != nil {
		return TypeNone, err
	}
	defer free(cs)
	s.ensure("GetGlobal", 1)
	return Type(C.lua_getglobal(s.l, cs)), nil
}

// SetField pops the top value and stores it as field k of the table at idx.
//
// The assignment runs in protected mode: indexing a value that is not a
// table (and has no __newindex) returns an error status with the message
// pushed, and the popped value is consumed either way.
func (s *State) SetField(idx int, k string) (Status, error) {
	s.check("SetField")
	cs, err := cstring("SetField", "field", k)
	if err != nil {
		return 0, err
	}
	defer free(cs)
	s.ensure("SetField", 3)
	return Status(C.lb_psetfield(s.l, C.int(idx), cs)), nil
}

// GetField pushes field k of the table at idx and returns its type. Like
// SetField it runs in protected mode; on an error status the pushed value
// is the error message.
func (s *State) GetField(idx int, k string) (Type, Status, error) {
	s.check("GetField")
	cs, err := cstring("GetField", "field", k)
	if err != nil {
		return TypeNone, 0, err
	}
	defer free(cs)
	s.ensure("GetField", 3)
	var tp C.int
	st := C.lb_pgetfield(s.l, C.int(idx), cs, &tp)
	return Type(tp), Status(st), nil
}

// NewTable pushes an empty table.
func (s *State) NewTable() {
	s.check("NewTable")
	s.ensure("NewTable", 1)
	C.lb_newtable(s.l)
}
