package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormStore is a GORM-backed Store implementation. Records live in the
// entity's own table, keyed by the allocator-issued identifier column.
type GormStore[T any] struct {
	db     *gorm.DB
	keyCol string
}

// NewGormStore creates a GormStore over db. keyCol is the primary key column
// of T's table, e.g. "user_id".
func NewGormStore[T any](db *gorm.DB, keyCol string) *GormStore[T] {
	return &GormStore[T]{
		db:     db,
		keyCol: keyCol,
	}
}

// Get returns the record stored under id, if any.
func (s *GormStore[T]) Get(id uint64) (T, bool, error) {
	var record T
	err := s.db.Where(s.keyCol+" = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("failed to get record with %s=%d: %w", s.keyCol, id, err)
	}
	return record, true, nil
}

// Put inserts or overwrites the record under id and reports whether a prior
// record existed. The check and the write are not atomic; the single-writer
// execution model makes that safe.
func (s *GormStore[T]) Put(id uint64, record T) (bool, error) {
	var count int64
	if err := s.db.Model(new(T)).Where(s.keyCol+" = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check record with %s=%d: %w", s.keyCol, id, err)
	}
	if count > 0 {
		if err := s.db.Save(&record).Error; err != nil {
			return true, fmt.Errorf("failed to overwrite record with %s=%d: %w", s.keyCol, id, err)
		}
		return true, nil
	}
	if err := s.db.Create(&record).Error; err != nil {
		return false, fmt.Errorf("failed to insert record with %s=%d: %w", s.keyCol, id, err)
	}
	return false, nil
}

// Remove deletes and returns the record stored under id, if any.
func (s *GormStore[T]) Remove(id uint64) (T, bool, error) {
	record, ok, err := s.Get(id)
	if err != nil || !ok {
		return record, ok, err
	}
	if err := s.db.Where(s.keyCol+" = ?", id).Delete(new(T)).Error; err != nil {
		var zero T
		return zero, false, fmt.Errorf("failed to delete record with %s=%d: %w", s.keyCol, id, err)
	}
	return record, true, nil
}

// Scan returns every record in ascending id order.
func (s *GormStore[T]) Scan() ([]T, error) {
	var records []T
	if err := s.db.Order(s.keyCol + " ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}
	return records, nil
}

// ClearUpTo removes every record with id below count.
func (s *GormStore[T]) ClearUpTo(count uint64) error {
	if err := s.db.Where(s.keyCol+" < ?", count).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("failed to clear records below %s=%d: %w", s.keyCol, count, err)
	}
	return nil
}

// Counter is a per-kind identifier counter row backing GormAllocator.
type Counter struct {
	Kind string `gorm:"primaryKey;type:varchar(20)"`
	Next uint64
}

// GormAllocator is a GORM-backed Allocator persisting its counter in the
// counters table.
type GormAllocator struct {
	db   *gorm.DB
	kind string
}

// NewGormAllocator ensures the counter row for kind exists and returns an
// allocator over it. An error here is unrecoverable and must abort startup.
func NewGormAllocator(db *gorm.DB, kind string) (*GormAllocator, error) {
	var counter Counter
	err := db.Where("kind = ?", kind).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(&Counter{Kind: kind, Next: 0}).Error; err != nil {
			return nil, fmt.Errorf("cannot create %s id counter: %w", kind, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("cannot read %s id counter: %w", kind, err)
	}
	return &GormAllocator{db: db, kind: kind}, nil
}

// Next returns the current counter value and advances it.
func (a *GormAllocator) Next() (uint64, error) {
	current, err := a.Current()
	if err != nil {
		return 0, err
	}
	err = a.db.Model(&Counter{}).Where("kind = ?", a.kind).Update("next", current+1).Error
	if err != nil {
		return 0, fmt.Errorf("cannot increment %s id counter: %w", a.kind, err)
	}
	return current, nil
}

// Current returns the counter value without advancing it.
func (a *GormAllocator) Current() (uint64, error) {
	var counter Counter
	if err := a.db.Where("kind = ?", a.kind).First(&counter).Error; err != nil {
		return 0, fmt.Errorf("cannot read %s id counter: %w", a.kind, err)
	}
	return counter.Next, nil
}
