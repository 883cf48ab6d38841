package storage

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation backed by a map plus a
// sorted key slice for ordered scans.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	records map[uint64]T
	keys    []uint64 // ascending
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{
		records: make(map[uint64]T),
	}
}

// Get returns the record stored under id, if any.
func (s *MemoryStore[T]) Get(id uint64) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	return record, ok, nil
}

// Put inserts or overwrites the record under id and reports whether a prior
// record existed.
func (s *MemoryStore[T]) Put(id uint64, record T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.records[id]
	s.records[id] = record
	if !existed {
		i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i] >= id })
		s.keys = append(s.keys, 0)
		copy(s.keys[i+1:], s.keys[i:])
		s.keys[i] = id
	}
	return existed, nil
}

// Remove deletes and returns the record stored under id, if any.
func (s *MemoryStore[T]) Remove(id uint64) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	delete(s.records, id)
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i] >= id })
	s.keys = append(s.keys[:i], s.keys[i+1:]...)
	return record, true, nil
}

// Scan returns every record in ascending id order.
func (s *MemoryStore[T]) Scan() ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]T, 0, len(s.keys))
	for _, id := range s.keys {
		records = append(records, s.records[id])
	}
	return records, nil
}

// ClearUpTo removes every record with id below count. Missing ids are skipped.
func (s *MemoryStore[T]) ClearUpTo(count uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.keys[:0]
	for _, id := range s.keys {
		if id < count {
			delete(s.records, id)
		} else {
			remaining = append(remaining, id)
		}
	}
	s.keys = remaining
	return nil
}

// MemoryAllocator is an in-memory Allocator implementation.
type MemoryAllocator struct {
	mu   sync.Mutex
	next uint64
}

// NewMemoryAllocator creates an allocator starting at 0.
func NewMemoryAllocator() *MemoryAllocator {
	return &MemoryAllocator{}
}

// Next returns the current counter value and advances it.
func (a *MemoryAllocator) Next() (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.next
	a.next++
	return id, nil
}

// Current returns the counter value without advancing it.
func (a *MemoryAllocator) Current() (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.next, nil
}
