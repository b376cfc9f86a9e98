// Package luaruntime embeds Lua 5.4 in Go through its native C API.
//
// The library mirrors the Lua stack protocol closely instead of hiding it
// behind an object model: values are pushed and read by stack position,
// status codes come back unchanged, and coroutines are resumed explicitly.
//
// # Architecture Overview
//
//	luaruntime/          Package overview
//	├── engine/          cgo binding: one State per lua_State
//	├── runtime/         States behind handles, each on its own session goroutine
//	├── resource/        Handle table used by the runtime
//	├── errors/          Structured error types for boundary failures
//	└── cmd/luahost/     CLI: run chunks, a line protocol, an interactive REPL
//
// # Quick Start
//
// Use the engine directly from a single goroutine:
//
//	s, err := engine.NewState()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//	s.OpenLibs()
//
//	s.PushInteger(5)
//	s.SetGlobal("test")
//	if st, _ := s.DoString("print(test * 2)"); st != engine.StatusOK {
//	    log.Printf("%s: %s", st, s.ToString(-1))
//	}
//
// Or let the runtime own the states and their threads:
//
//	rt := runtime.New(runtime.DefaultConfig())
//	defer rt.Close(ctx)
//	h, _ := rt.Create(ctx)
//	err := rt.Do(ctx, h, func(s *engine.State) error { ... })
//
// # Errors
//
// Lua failures are not Go errors. DoString, DoFile, PCall, Resume and the
// protected field operations return a Status and leave the error value on
// the stack for the caller to read. Go errors are reserved for failures at
// the boundary itself, such as host text with an embedded NUL byte, and
// carry an *errors.Error.
//
// # Building
//
// The engine links against the system Lua 5.4 library through pkg-config
// (package lua5.4). cgo must be enabled.
package luaruntime
