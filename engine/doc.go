// Package engine binds a single Lua 5.4 state through its C API.
//
// The binding mirrors the native stack protocol one-to-one. Values cross the
// boundary by being pushed onto and read from the Lua stack; there is no
// higher-level value type.
//
// # Stack positions
//
// Positive indices count from the bottom of the stack (1 is the first
// element), negative indices from the top (-1 is the top element). Indices
// are passed to Lua unchanged.
//
//	s.PushInteger(5)    // stack: 5
//	s.PushString("hi")  // stack: 5 "hi"
//	s.ToInteger(1)      // 5
//	s.ToString(-1)      // "hi"
//
// # Status codes
//
// DoString, DoFile, LoadString, LoadFile, PCall and Resume return the Lua
// status unchanged. A non-ok status leaves the error message on top of the
// stack; the binding never extracts or converts it:
//
//	st, err := s.DoString("pridnt('hello')")
//	if err != nil {
//	    // source could not be marshalled (embedded NUL)
//	}
//	if st != engine.StatusOK {
//	    msg := s.ToString(-1)
//	    s.Pop(1)
//	}
//
// # Text
//
// Source code, names, paths and pushed strings go through NUL-terminated
// C strings. Text containing a NUL byte is rejected with an
// errors.KindEmbeddedNUL error before Lua is called. Strings read back with
// ToString are length-aware and round-trip exactly.
//
// # Coroutines
//
// Resume runs a coroutine until it yields, fails or returns. Scripts yield
// with coroutine.yield; host functions yield by returning s.Yield(n):
//
//	th := s.NewThread()
//	th.LoadString("local x = coroutine.yield(1, 2) return x * 2")
//	st, n := th.Resume(0)   // StatusYield, 2
//	th.Pop(n)
//	th.PushInteger(21)
//	st, n = th.Resume(1)    // StatusOK, 1; th.ToInteger(-1) == 42
//
// Resume blocks the calling goroutine. Lua offers no interrupt, so there is
// no cancellation or timeout.
//
// # Lifetime
//
// A State owns its lua_State until Close. Calling any method after Close
// panics with an errors.KindClosed error instead of touching freed memory.
//
// # Thread Safety
//
// A State is NOT safe for concurrent use. Separate states are independent
// and may run on different goroutines. Host functions run on the goroutine
// that entered Lua.
package engine
