package resource

import (
	"sync"
)

// store is the slot storage behind a Table. Slots are reused through a
// free list, so a removed handle may later name a different value.
type store[T any] struct {
	entries  []entry[T]
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry[T any] struct {
	value T
	valid bool
}

func newStore[T any]() *store[T] {
	return &store[T]{
		entries:  make([]entry[T], 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

func (b *store[T]) create(value T) (Handle, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, false
	}

	e := entry[T]{value: value, valid: true}
	if len(b.freeList) > 0 {
		handle := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[handle-1] = e
		return handle, true
	}

	b.entries = append(b.entries, e)
	return Handle(len(b.entries)), true
}

func (b *store[T]) get(handle Handle) (T, bool) {
	var zero T
	if handle == 0 {
		return zero, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) || !b.entries[idx].valid {
		return zero, false
	}
	return b.entries[idx].value, true
}

func (b *store[T]) drop(handle Handle) (T, bool) {
	var zero T
	if handle == 0 {
		return zero, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) || !b.entries[idx].valid {
		return zero, false
	}

	value := b.entries[idx].value
	b.entries[idx] = entry[T]{}
	b.freeList = append(b.freeList, handle)
	return value, true
}

// close marks the store closed and hands back every live value.
func (b *store[T]) close() ([]Handle, []T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil
	}
	b.closed = true

	var handles []Handle
	var values []T
	for i, e := range b.entries {
		if e.valid {
			handles = append(handles, Handle(i+1))
			values = append(values, e.value)
		}
	}
	b.entries = nil
	b.freeList = nil
	return handles, values
}

func (b *store[T]) len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries) - len(b.freeList)
}

// snapshot copies the live entries so callers can iterate without the lock.
func (b *store[T]) snapshot() ([]Handle, []T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	handles := make([]Handle, 0, len(b.entries))
	values := make([]T, 0, len(b.entries))
	for i, e := range b.entries {
		if e.valid {
			handles = append(handles, Handle(i+1))
			values = append(values, e.value)
		}
	}
	return handles, values
}
