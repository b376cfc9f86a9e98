package runtime

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/errors"
	"github.com/wippyai/lua-runtime/resource"
)

// Runtime owns a set of Lua states, each addressed by an opaque handle and
// driven by its own session goroutine. Runtime is safe for concurrent use;
// jobs for different handles run in parallel.
type Runtime struct {
	cfg      Config
	log      *zap.Logger
	hosts    *HostRegistry
	sessions *resource.Table[*session]
	closed   atomic.Bool
}

func New(cfg Config) *Runtime {
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}
	r := &Runtime{
		cfg:      cfg,
		log:      log,
		hosts:    NewHostRegistry(),
		sessions: resource.NewTable[*session](),
	}
	r.sessions.Subscribe(&lifecycleLogger{log: log})
	return r
}

// RegisterHost registers every function of h. Only states created
// afterwards see them.
func (r *Runtime) RegisterHost(h Host) error {
	return r.hosts.RegisterHost(h)
}

// RegisterFunc registers fn as namespace.name, or as a global when
// namespace is empty.
func (r *Runtime) RegisterFunc(namespace, name string, fn engine.GoFunction) error {
	return r.hosts.RegisterFunc(namespace, name, fn)
}

func (r *Runtime) Hosts() *HostRegistry {
	return r.hosts
}

// Subscribe adds an observer for state creation and closing.
func (r *Runtime) Subscribe(o resource.Observer) {
	r.sessions.Subscribe(o)
}

// Create starts a new state and returns its handle.
func (r *Runtime) Create(ctx context.Context) (resource.Handle, error) {
	if r.closed.Load() {
		return 0, errors.Closed("runtime.Create")
	}

	s, ready := startSession(r.cfg, r.hosts, r.log)
	select {
	case err := <-ready:
		if err != nil {
			return 0, err
		}
	case <-ctx.Done():
		s.Drop()
		return 0, ctx.Err()
	}

	h := r.sessions.Insert(s)
	if h == 0 {
		s.Drop()
		return 0, errors.Closed("runtime.Create")
	}
	return h, nil
}

// Do runs fn against the state behind h on its session goroutine and
// returns fn's error. The State must not be used after fn returns.
//
// ctx bounds only the wait for the session to pick the job up. Once fn has
// started it runs to completion; the engine cannot be interrupted.
func (r *Runtime) Do(ctx context.Context, h resource.Handle, fn func(*engine.State) error) error {
	s, err := r.lookup(h)
	if err != nil {
		return err
	}
	j := job{fn: fn, done: make(chan error, 1)}
	if err := s.send(ctx, j); err != nil {
		return err
	}
	return <-j.done
}

// Submit queues fn for the state behind h without waiting. Jobs submitted
// for one handle start in the order Submit was called; a concurrent Do may
// run between them. The returned channel receives fn's error, or a closed
// error if the state goes away before the job starts.
func (r *Runtime) Submit(h resource.Handle, fn func(*engine.State) error) (<-chan error, error) {
	s, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	j := job{fn: fn, done: make(chan error, 1)}
	s.submit(j)
	return j.done, nil
}

// CloseHandle closes the state behind h once its current job finishes.
// It waits for the close until ctx is done; the handle is invalid either
// way.
func (r *Runtime) CloseHandle(ctx context.Context, h resource.Handle) error {
	s, ok := r.sessions.Remove(h)
	if !ok {
		return errors.NotFound(errors.PhaseHost, "state", h)
	}
	return s.wait(ctx)
}

// Len returns the number of open states.
func (r *Runtime) Len() int {
	return r.sessions.Len()
}

// Close closes every state and rejects further Create calls.
func (r *Runtime) Close(ctx context.Context) error {
	if r.closed.Swap(true) {
		return nil
	}

	var open []*session
	r.sessions.Each(func(_ resource.Handle, s *session) bool {
		open = append(open, s)
		return true
	})
	if err := r.sessions.Close(); err != nil {
		return err
	}
	for _, s := range open {
		if err := s.wait(ctx); err != nil {
			return err
		}
	}
	r.log.Debug("runtime closed", zap.Int("states", len(open)))
	return nil
}

func (r *Runtime) lookup(h resource.Handle) (*session, error) {
	s, ok := r.sessions.Get(h)
	if !ok {
		return nil, errors.NotFound(errors.PhaseHost, "state", h)
	}
	return s, nil
}

type lifecycleLogger struct {
	log *zap.Logger
}

func (l *lifecycleLogger) OnResourceEvent(e resource.Event) {
	l.log.Debug("lua state "+e.Type.String(), zap.Uint32("handle", uint32(e.Handle)))
}
