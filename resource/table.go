package resource

import (
	"sync"

	"go.uber.org/zap"
)

// Table maps opaque handles to values of type T. It is safe for concurrent
// use. Values implementing Dropper are dropped when they leave the table.
type Table[T any] struct {
	store     *store[T]
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{store: newStore[T]()}
}

// Insert adds a value and returns its handle, or 0 once the table is closed.
func (t *Table[T]) Insert(value T) Handle {
	handle, ok := t.store.create(value)
	if !ok {
		return 0
	}
	t.notify(Event{Type: EventCreated, Handle: handle, Value: value})
	return handle
}

// Get retrieves a value by handle.
func (t *Table[T]) Get(handle Handle) (T, bool) {
	return t.store.get(handle)
}

// Remove takes a value out of the table, drops it and returns it.
func (t *Table[T]) Remove(handle Handle) (T, bool) {
	value, ok := t.store.drop(handle)
	if !ok {
		return value, false
	}
	t.release(handle, value)
	return value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer added with Subscribe.
func (t *Table[T]) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	return t.store.len()
}

// Each calls fn for every live value until fn returns false. fn may call
// Remove.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	handles, values := t.store.snapshot()
	for i, h := range handles {
		if !fn(h, values[i]) {
			return
		}
	}
}

// Clear removes every value but keeps the table open.
func (t *Table[T]) Clear() {
	handles, _ := t.store.snapshot()
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close drops every value and refuses further inserts. It is idempotent.
func (t *Table[T]) Close() error {
	handles, values := t.store.close()
	for i, h := range handles {
		t.release(h, values[i])
	}
	if len(handles) > 0 {
		Logger().Debug("resource table closed", zap.Int("dropped", len(handles)))
	}
	return nil
}

func (t *Table[T]) release(handle Handle, value T) {
	if d, ok := any(value).(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventDropped, Handle: handle, Value: value})
}

func (t *Table[T]) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
