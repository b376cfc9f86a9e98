// Package runtime hosts Lua states behind opaque handles.
//
// # Quick Start
//
//	ctx := context.Background()
//	rt := runtime.New(runtime.DefaultConfig())
//	defer rt.Close(ctx)
//
//	h, err := rt.Create(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = rt.Do(ctx, h, func(s *engine.State) error {
//	    s.PushInteger(5)
//	    if err := s.SetGlobal("test"); err != nil {
//	        return err
//	    }
//	    st, err := s.DoString("print('Test value: ' .. test)")
//	    if err != nil {
//	        return err
//	    }
//	    if st != engine.StatusOK {
//	        return fmt.Errorf("%s: %s", st, s.ToString(-1))
//	    }
//	    return nil
//	})
//
// # Sessions
//
// A Lua state is not thread safe, and host callbacks must run on the
// thread that entered the engine. Each handle therefore gets a session: a
// goroutine locked to its OS thread that owns the state for its whole
// life. Do and Submit pass a function to that goroutine. Jobs for one
// handle run one at a time, and submitted jobs start in submission order;
// jobs for different handles run in parallel.
//
// The engine has no way to interrupt a running chunk. Contexts bound the
// wait for a session to accept a job or to finish closing, never the job
// itself.
//
// # Host Functions
//
// Functions registered on the Runtime are installed in every state it
// creates afterwards:
//
//	rt.RegisterFunc("", "now", func(s *engine.State) int {
//	    s.PushInteger(time.Now().Unix())
//	    return 1
//	})
//	rt.RegisterFunc("host", "version", versionFn) // host.version()
//
// A job must not call CloseHandle or Close for its own handle; the session
// would wait for itself.
package runtime
