// Package memory provides map-backed stores with the same semantics as the
// gorm repositories: unique keys yield ErrDuplicate, missing ids ErrNotFound.
package memory

import (
	"context"
	"sort"
	"sync"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"
)

type entityPtr[T any] interface {
	*T
	models.Entity
}

// Store keeps copies of T keyed by id. Unique returns the keys a row must
// not share with any other row; an empty key is ignored.
type Store[T any, PT entityPtr[T]] struct {
	mu     sync.RWMutex
	rows   map[uint]T
	nextID uint
	unique func(*T) []string

	// Hydrate fills relations on every copy handed out, standing in for preloads.
	Hydrate func(*T)
}

func NewStore[T any, PT entityPtr[T]](unique func(*T) []string) *Store[T, PT] {
	return &Store[T, PT]{rows: map[uint]T{}, unique: unique}
}

func (s *Store[T, PT]) conflicts(e *T, self uint) bool {
	if s.unique == nil {
		return false
	}
	keys := s.unique(e)
	for id, row := range s.rows {
		if id == self {
			continue
		}
		for _, other := range s.unique(&row) {
			for _, k := range keys {
				if k != "" && k == other {
					return true
				}
			}
		}
	}
	return false
}

func (s *Store[T, PT]) out(row T) *T {
	cp := row
	if s.Hydrate != nil {
		s.Hydrate(&cp)
	}
	return &cp
}

func (s *Store[T, PT]) Create(_ context.Context, e *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflicts(e, 0) {
		return repository.ErrDuplicate
	}
	s.nextID++
	PT(e).SetID(s.nextID)
	s.rows[s.nextID] = *e
	return nil
}

func (s *Store[T, PT]) GetByID(_ context.Context, id uint) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.out(row), nil
}

func (s *Store[T, PT]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.out(s.rows[id]))
	}
	return out, nil
}

func (s *Store[T, PT]) Save(_ context.Context, e *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := PT(e).GetID()
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if s.conflicts(e, id) {
		return repository.ErrDuplicate
	}
	s.rows[id] = *e
	return nil
}

func (s *Store[T, PT]) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// Len is a test helper.
func (s *Store[T, PT]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
