package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/resource"
	"github.com/wippyai/lua-runtime/runtime"
)

func main() {
	var (
		file        = flag.String("file", "", "Lua file to run")
		chunk       = flag.String("e", "", "Lua chunk to run")
		noLibs      = flag.Bool("nolibs", false, "Do not open the standard libraries")
		verbose     = flag.Bool("v", false, "Log state lifecycle to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
		defer log.Sync()
	}
	engine.SetLogger(log.Named("engine"))
	resource.SetLogger(log.Named("resource"))
	runtime.SetLogger(log.Named("runtime"))

	stdinIsTTY := term.IsTerminal(int(os.Stdin.Fd()))
	if *file == "" && *chunk == "" && !*interactive && stdinIsTTY {
		fmt.Fprintln(os.Stderr, "Usage: luahost -file <script.lua> [-nolibs] [-v]")
		fmt.Fprintln(os.Stderr, "       luahost -e '<chunk>'")
		fmt.Fprintln(os.Stderr, "       luahost -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       luahost < commands.txt")
		os.Exit(1)
	}

	ctx := context.Background()
	rt := runtime.New(runtime.Config{OpenLibs: !*noLibs, Logger: log.Named("runtime")})
	defer rt.Close(ctx)

	// host.yield(...) suspends the calling coroutine with its arguments.
	if err := rt.RegisterFunc("host", "yield", func(s *engine.State) int {
		return s.Yield(s.GetTop())
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	h, err := rt.Create(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	code := 0
	switch {
	case *interactive:
		err = runInteractive(rt, h)
	case *file != "" || *chunk != "":
		code, err = runChunk(ctx, rt, h, *file, *chunk, os.Stdout)
	default:
		code, err = runCommands(ctx, rt, h, os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code = 1
	}
	if code != 0 {
		rt.Close(ctx)
		os.Exit(code)
	}
}

// runChunk executes a file or a chunk and reports its status. A failed
// execution leaves the error value on the stack, where it is read for the
// report.
func runChunk(ctx context.Context, rt *runtime.Runtime, h resource.Handle, file, chunk string, out io.Writer) (int, error) {
	var st engine.Status
	err := rt.Do(ctx, h, func(s *engine.State) error {
		var err error
		if file != "" {
			st, err = s.DoFile(file)
		} else {
			st, err = s.DoString(chunk)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "status: %s\n", st)
		if st != engine.StatusOK {
			fmt.Fprintf(out, "error: %s\n", s.ToString(-1))
			s.Pop(1)
		}
		return nil
	})
	if err != nil {
		return 1, fmt.Errorf("run: %w", err)
	}
	if st != engine.StatusOK {
		return 1, nil
	}
	return 0, nil
}
