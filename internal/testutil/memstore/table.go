package memstore

import (
	"slices"

	"github.com/jhoicas/pipeline-crm/internal/domain"
)

// Operaciones genéricas sobre las tablas simples del Store (bajo s.mu).

func insert[T any](s *Store, list *[]*T, v *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*list = append(*list, cloneOne(v))
}

func get[T any](s *Store, list *[]*T, match func(*T) bool) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, v := find(*list, match)
	return cloneOne(v)
}

func all[T any](s *Store, list *[]*T, keep func(*T) bool) []*T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*T{}
	for _, v := range *list {
		if keep == nil || keep(v) {
			out = append(out, cloneOne(v))
		}
	}
	return out
}

func replace[T any](s *Store, list *[]*T, match func(*T) bool, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, _ := find(*list, match)
	if i < 0 {
		return domain.ErrNotFound
	}
	(*list)[i] = cloneOne(v)
	return nil
}

func remove[T any](s *Store, list *[]*T, match func(*T) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, _ := find(*list, match)
	if i < 0 {
		return domain.ErrNotFound
	}
	*list = slices.Delete(*list, i, i+1)
	return nil
}
