package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/errors"
	"github.com/wippyai/lua-runtime/resource"
	"github.com/wippyai/lua-runtime/runtime"
)

// shell interprets the line protocol: one engine operation per line,
// named after the State method it calls. The target is the main state or
// the thread selected with newThread.
type shell struct {
	thread *engine.State
}

type command struct {
	args  string // usage hint
	run   func(c *shell, s *engine.State, args []string, rest string) (string, error)
	exact int // required argument count, -1 for free text
}

var commands = map[string]command{
	"openLibs": {"", func(_ *shell, s *engine.State, _ []string, _ string) (string, error) {
		s.OpenLibs()
		return "", nil
	}, 0},
	"doString": {"<chunk>", func(_ *shell, s *engine.State, _ []string, rest string) (string, error) {
		st, err := s.DoString(rest)
		return report(s, st, 0), err
	}, -1},
	"doFile": {"<path>", func(_ *shell, s *engine.State, _ []string, rest string) (string, error) {
		st, err := s.DoFile(rest)
		return report(s, st, 0), err
	}, -1},
	"loadString": {"<chunk>", func(_ *shell, s *engine.State, _ []string, rest string) (string, error) {
		st, err := s.LoadString(rest)
		return report(s, st, 0), err
	}, -1},
	"pcall": {"<nargs> <nresults>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		n, err := ints(args)
		if err != nil {
			return "", err
		}
		return report(s, s.PCall(n[0], n[1]), 0), nil
	}, 2},
	"pushString": {"<text>", func(_ *shell, s *engine.State, _ []string, rest string) (string, error) {
		_, err := s.PushString(rest)
		return "", err
	}, -1},
	"pushNumber": {"<number>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", badArg(args[0], err)
		}
		s.PushNumber(v)
		return "", nil
	}, 1},
	"pushInteger": {"<integer>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return "", badArg(args[0], err)
		}
		s.PushInteger(v)
		return "", nil
	}, 1},
	"pushBoolean": {"<true|false>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		v, err := strconv.ParseBool(args[0])
		if err != nil {
			return "", badArg(args[0], err)
		}
		s.PushBoolean(v)
		return "", nil
	}, 1},
	"pushNil": {"", func(_ *shell, s *engine.State, _ []string, _ string) (string, error) {
		s.PushNil()
		return "", nil
	}, 0},
	"pushValue": {"<index>", indexOp(func(s *engine.State, i int) string { s.PushValue(i); return "" }), 1},
	"newTable": {"", func(_ *shell, s *engine.State, _ []string, _ string) (string, error) {
		s.NewTable()
		return "", nil
	}, 0},
	"setGlobal": {"<name>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		return "", s.SetGlobal(args[0])
	}, 1},
	"getGlobal": {"<name>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		tp, err := s.GetGlobal(args[0])
		return tp.String(), err
	}, 1},
	"setField": {"<index> <key>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return "", badArg(args[0], err)
		}
		st, err := s.SetField(idx, args[1])
		if err != nil || st == engine.StatusOK {
			return "", err
		}
		return report(s, st, 0), nil
	}, 2},
	"getField": {"<index> <key>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return "", badArg(args[0], err)
		}
		tp, st, err := s.GetField(idx, args[1])
		if err != nil || st == engine.StatusOK {
			return tp.String(), err
		}
		return report(s, st, 0), nil
	}, 2},
	"getType": {"<index>", indexOp(func(s *engine.State, i int) string { return s.Type(i).String() }), 1},
	"toString": {"<index>", indexOp(func(s *engine.State, i int) string { return strconv.Quote(s.ToString(i)) }), 1},
	"toNumber": {"<index>", indexOp(func(s *engine.State, i int) string {
		return strconv.FormatFloat(s.ToNumber(i), 'g', -1, 64)
	}), 1},
	"toInteger": {"<index>", indexOp(func(s *engine.State, i int) string { return strconv.FormatInt(s.ToInteger(i), 10) }), 1},
	"toInt32":   {"<index>", indexOp(func(s *engine.State, i int) string { return strconv.Itoa(int(s.ToInt32(i))) }), 1},
	"toBoolean": {"<index>", indexOp(func(s *engine.State, i int) string { return strconv.FormatBool(s.ToBoolean(i)) }), 1},
	"getTop": {"", func(_ *shell, s *engine.State, _ []string, _ string) (string, error) {
		return strconv.Itoa(s.GetTop()), nil
	}, 0},
	"setTop":  {"<index>", indexOp(func(s *engine.State, i int) string { s.SetTop(i); return "" }), 1},
	"pop":     {"<n>", indexOp(func(s *engine.State, n int) string { s.Pop(n); return "" }), 1},
	"replace": {"<index>", indexOp(func(s *engine.State, i int) string { s.Replace(i); return "" }), 1},
	"insert":  {"<index>", indexOp(func(s *engine.State, i int) string { s.Insert(i); return "" }), 1},
	"status": {"", func(_ *shell, s *engine.State, _ []string, _ string) (string, error) {
		return s.Status().String(), nil
	}, 0},
	"resume": {"<nargs>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", badArg(args[0], err)
		}
		if !s.IsThread() {
			return "", errors.InvalidInput(errors.PhaseHost, "resume needs a thread, use newThread first")
		}
		st, nres := s.Resume(n)
		return report(s, st, nres), nil
	}, 1},
	"gc": {"<op> <data>", func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		op, err := parseGCOp(args[0])
		if err != nil {
			return "", err
		}
		data, err := strconv.Atoi(args[1])
		if err != nil {
			return "", badArg(args[1], err)
		}
		return strconv.Itoa(s.GC(op, data)), nil
	}, 2},
	"memory": {"", func(_ *shell, s *engine.State, _ []string, _ string) (string, error) {
		return strconv.Itoa(s.MemoryUsage()) + " bytes", nil
	}, 0},
	"newThread": {"", func(c *shell, s *engine.State, _ []string, _ string) (string, error) {
		c.thread = s.NewThread()
		return "thread selected", nil
	}, 0},
	"main": {"", func(c *shell, _ *engine.State, _ []string, _ string) (string, error) {
		c.thread = nil
		return "main selected", nil
	}, 0},
	"stack": {"", func(_ *shell, s *engine.State, _ []string, _ string) (string, error) {
		return dumpStack(s), nil
	}, 0},
}

// exec runs one protocol line against main, or against the selected
// thread. It returns the text to show for the line.
func (c *shell) exec(main *engine.State, line string) (string, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "help" {
		return strings.Join(commandNames(), " "), nil
	}
	cmd, ok := commands[name]
	if !ok {
		return "", errors.InvalidInput(errors.PhaseHost, fmt.Sprintf("unknown command %q", name))
	}
	args := strings.Fields(rest)
	if cmd.exact >= 0 && len(args) != cmd.exact {
		return "", errors.InvalidInput(errors.PhaseHost, fmt.Sprintf("usage: %s %s", name, cmd.args))
	}

	target := main
	if c.thread != nil {
		target = c.thread
	}
	return cmd.run(c, target, args, rest)
}

// prompt names the current target for display.
func (c *shell) prompt() string {
	if c.thread != nil {
		return "thread> "
	}
	return "lua> "
}

// runCommands reads protocol lines from r until EOF. Blank lines and lines
// starting with # are skipped. The exit code is 1 if any line failed.
func runCommands(ctx context.Context, rt *runtime.Runtime, h resource.Handle, r io.Reader, out io.Writer) (int, error) {
	var c shell
	code := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var text string
		err := rt.Do(ctx, h, func(s *engine.State) error {
			var err error
			text, err = c.exec(s, line)
			return err
		})
		if err != nil {
			fmt.Fprintf(out, "%s: error: %v\n", line, err)
			code = 1
			continue
		}
		if text != "" {
			fmt.Fprintln(out, text)
		}
	}
	return code, sc.Err()
}

// report formats an execution status. Error values stay on the stack.
func report(s *engine.State, st engine.Status, nres int) string {
	var b strings.Builder
	b.WriteString(st.String())
	if st == engine.StatusYield || (st == engine.StatusOK && nres > 0) {
		fmt.Fprintf(&b, " (%d values)", nres)
	}
	if st.IsError() {
		fmt.Fprintf(&b, ": %s", s.ToString(-1))
	}
	return b.String()
}

func dumpStack(s *engine.State) string {
	top := s.GetTop()
	if top == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for i := top; i >= 1; i-- {
		fmt.Fprintf(&b, "%d: %s", i, describe(s, i))
		if i > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// describe renders a value without converting it in place.
func describe(s *engine.State, idx int) string {
	tp := s.Type(idx)
	switch tp {
	case engine.TypeNil:
		return "nil"
	case engine.TypeBoolean:
		return strconv.FormatBool(s.ToBoolean(idx))
	case engine.TypeNumber:
		s.PushValue(idx)
		defer s.Pop(1)
		return "number " + s.ToString(-1)
	case engine.TypeString:
		return "string " + strconv.Quote(s.ToString(idx))
	default:
		return tp.String()
	}
}

func indexOp(fn func(s *engine.State, i int) string) func(*shell, *engine.State, []string, string) (string, error) {
	return func(_ *shell, s *engine.State, args []string, _ string) (string, error) {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return "", badArg(args[0], err)
		}
		return fn(s, i), nil
	}
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, badArg(a, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseGCOp(v string) (engine.GCOp, error) {
	if op, ok := engine.LookupGCOp(v); ok {
		return op, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.InvalidInput(errors.PhaseHost, fmt.Sprintf("unknown gc operation %q", v))
	}
	return engine.ParseGCOp(n)
}

func badArg(v string, err error) error {
	return errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, fmt.Sprintf("bad argument %q", v))
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
