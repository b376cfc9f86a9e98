package runtime

import (
	"sort"
	"sync"

	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/errors"
)

// Host groups functions that are installed together. With an empty
// namespace they become globals; otherwise they are fields of a global
// table named after the namespace.
type Host interface {
	Namespace() string
	Functions() map[string]engine.GoFunction
}

// HostRegistry holds the host functions bound into every state a Runtime
// creates. Registration after a state was created does not affect it.
type HostRegistry struct {
	funcs map[string]map[string]engine.GoFunction
	mu    sync.RWMutex
}

func NewHostRegistry() *HostRegistry {
	return &HostRegistry{
		funcs: make(map[string]map[string]engine.GoFunction),
	}
}

func (r *HostRegistry) RegisterHost(h Host) error {
	ns := h.Namespace()
	for name, fn := range h.Functions() {
		if err := r.RegisterFunc(ns, name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *HostRegistry) RegisterFunc(namespace, name string, fn engine.GoFunction) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseHost, "function name cannot be empty")
	}
	if fn == nil {
		return errors.InvalidInput(errors.PhaseHost, "function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs[namespace] == nil {
		r.funcs[namespace] = make(map[string]engine.GoFunction)
	}
	r.funcs[namespace][name] = fn
	return nil
}

// Len returns the number of registered functions.
func (r *HostRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, fns := range r.funcs {
		n += len(fns)
	}
	return n
}

// Bind installs every registered function into s. Namespaces and names are
// bound in sorted order so that a failure is reproducible.
func (r *HostRegistry) Bind(s *engine.State) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ns := range sortedKeys(r.funcs) {
		fns := r.funcs[ns]
		if ns == "" {
			for _, name := range sortedKeys(fns) {
				if err := s.Register(name, fns[name]); err != nil {
					return err
				}
			}
			continue
		}

		if err := bindNamespace(s, ns, fns); err != nil {
			return err
		}
	}
	return nil
}

func bindNamespace(s *engine.State, ns string, fns map[string]engine.GoFunction) error {
	base := s.GetTop()
	defer s.SetTop(base)

	tp, err := s.GetGlobal(ns)
	if err != nil {
		return err
	}
	if tp != engine.TypeTable {
		s.Pop(1)
		s.NewTable()
		s.PushValue(-1)
		if err := s.SetGlobal(ns); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(fns) {
		s.PushGoFunction(fns[name])
		st, err := s.SetField(-2, name)
		if err != nil {
			return err
		}
		if st != engine.StatusOK {
			return errors.New(errors.PhaseHost, errors.KindInvalidInput).
				Op("Bind").
				Path(ns, name).
				Detail("%s: %s", st, s.ToString(-1)).
				Build()
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
