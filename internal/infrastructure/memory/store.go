package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var errNilEntity = errors.New("memory: entity is nil")

// store keeps cloned values keyed by id under a RWMutex. Callers never share a pointer with it.
type store[T any] struct {
	mu       sync.RWMutex
	items    map[string]T
	id       func(T) string
	clone    func(T) T
	isNil    func(T) bool
	notFound error
	conflict error
}

func newStore[T any](id func(T) string, clone func(T) T, isNil func(T) bool, notFound, conflict error) *store[T] {
	return &store[T]{
		items:    make(map[string]T),
		id:       id,
		clone:    clone,
		isNil:    isNil,
		notFound: notFound,
		conflict: conflict,
	}
}

func (s *store[T]) create(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.isNil(v) {
		return errNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.id(v)
	if _, exists := s.items[key]; exists {
		return s.conflict
	}
	s.items[key] = s.clone(v)
	return nil
}

func (s *store[T]) update(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.isNil(v) {
		return errNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.id(v)
	if _, exists := s.items[key]; !exists {
		return s.notFound
	}
	s.items[key] = s.clone(v)
	return nil
}

func (s *store[T]) find(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[id]
	if !ok {
		return zero, s.notFound
	}
	return s.clone(v), nil
}

// findAll returns clones ordered by id.
func (s *store[T]) findAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.clone(s.items[k]))
	}
	return out, nil
}
