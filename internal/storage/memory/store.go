// Package memory provides an in-memory Store used in tests and for
// running without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/serenia-app/serenia/internal/domain"
	"github.com/serenia-app/serenia/internal/storage"
)

type Store struct {
	mu       sync.RWMutex
	entries  map[string]*domain.Entry
	bookings []*domain.Booking
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		entries: make(map[string]*domain.Entry),
	}
}

func (s *Store) SaveEntry(_ context.Context, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *Store) ListEntries(_ context.Context, userID string) ([]*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Entry, 0)
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) AppendBooking(_ context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bookings = append(s.bookings, &cp)
	return nil
}

func (s *Store) ListBookings(_ context.Context) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Booking, len(s.bookings))
	for i, b := range s.bookings {
		cp := *b
		out[i] = &cp
	}
	return out, nil
}

func (s *Store) Close() error { return nil }
