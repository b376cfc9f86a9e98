package runtime

import (
	"context"
	"fmt"
	goruntime "runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/errors"
)

type job struct {
	fn   func(*engine.State) error
	done chan error
}

// session owns one engine.State on a goroutine locked to its OS thread.
// Every job for the state runs there, one at a time.
type session struct {
	jobs    chan job
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
	log     *zap.Logger

	mu       sync.Mutex
	backlog  []job // submitted jobs not yet accepted, oldest first
	draining bool
}

func startSession(cfg Config, hosts *HostRegistry, log *zap.Logger) (*session, <-chan error) {
	s := &session{
		jobs:    make(chan job),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		log:     log,
	}
	ready := make(chan error, 1)
	go s.loop(cfg, hosts, ready)
	return s, ready
}

func (s *session) loop(cfg Config, hosts *HostRegistry, ready chan<- error) {
	goruntime.LockOSThread()
	defer goruntime.UnlockOSThread()
	defer close(s.stopped)

	state, err := newState(cfg, hosts)
	if err != nil {
		ready <- err
		return
	}
	defer state.Close()
	ready <- nil

	for {
		select {
		case j := <-s.jobs:
			j.done <- s.run(state, j.fn)
		case <-s.quit:
			return
		}
	}
}

func newState(cfg Config, hosts *HostRegistry) (*engine.State, error) {
	state, err := engine.NewState()
	if err != nil {
		return nil, err
	}
	if cfg.OpenLibs {
		state.OpenLibs()
	}
	if err := hosts.Bind(state); err != nil {
		state.Close()
		return nil, err
	}
	return state, nil
}

// run calls fn and turns a panic into an error so one faulty job cannot
// take the session down.
func (s *session) run(state *engine.State, fn func(*engine.State) error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s.log.Error("job panicked", zap.Any("panic", r))
		if e, ok := r.(*errors.Error); ok {
			err = e
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		err = errors.Wrap(errors.PhaseSession, errors.KindContractViolation, cause, "job panicked")
	}()
	return fn(state)
}

// send hands j to the session goroutine. It returns once the session has
// accepted the job, not when the job is done.
func (s *session) send(ctx context.Context, j job) error {
	select {
	case s.jobs <- j:
		return nil
	case <-s.stopped:
		return errors.Closed("runtime.Do")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// submit appends j to the backlog. A single drain goroutine hands the
// backlog over in order, so submitted jobs start in submission order.
func (s *session) submit(j job) {
	s.mu.Lock()
	s.backlog = append(s.backlog, j)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()
	go s.drain()
}

func (s *session) drain() {
	for {
		s.mu.Lock()
		if len(s.backlog) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		j := s.backlog[0]
		s.backlog[0] = job{}
		s.backlog = s.backlog[1:]
		s.mu.Unlock()

		if err := s.send(context.Background(), j); err != nil {
			j.done <- err
		}
	}
}

// Drop asks the session to close its state after the current job.
func (s *session) Drop() {
	s.once.Do(func() { close(s.quit) })
}

func (s *session) wait(ctx context.Context) error {
	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
