package storage

// Store is an ordered mapping from identifier to record. Implementations keep
// keys in ascending order for Scan and report on Put whether a prior record
// was overwritten, which callers use to detect allocator desynchronization.
type Store[T any] interface {
	// Get returns the record stored under id, if any.
	Get(id uint64) (T, bool, error)
	// Put inserts or overwrites the record under id and reports whether a
	// prior record existed.
	Put(id uint64, record T) (bool, error)
	// Remove deletes and returns the record stored under id, if any.
	Remove(id uint64) (T, bool, error)
	// Scan returns every record in ascending id order.
	Scan() ([]T, error)
	// ClearUpTo removes every record with id below count. Missing ids are
	// skipped.
	ClearUpTo(count uint64) error
}

// Allocator issues identifiers for one entity kind. Identifiers start at 0,
// increase by one per allocation and are never reused.
type Allocator interface {
	// Next returns the current counter value and advances it.
	Next() (uint64, error)
	// Current returns the counter value without advancing it, i.e. the
	// exclusive upper bound of all identifiers issued so far.
	Current() (uint64, error)
}
