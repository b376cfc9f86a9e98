// Package resource maps opaque integer handles to host values.
//
// The runtime hands out a Handle for every Lua state it owns, so callers
// never hold the state itself:
//
//	table := resource.NewTable[*session]()
//	h := table.Insert(s)
//	s, ok := table.Get(h)
//	table.Remove(h) // calls s.Drop()
//
// Handle 0 is never issued. Removed slots are reused, so a stale handle can
// later resolve to a different value; owners must stop using a handle once
// they remove it.
//
// Observers receive EventCreated and EventDropped notifications
// synchronously. Close drops every remaining value.
package resource
