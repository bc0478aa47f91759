// Package storage defines the persistence interfaces for journal entries and
// bookings. Implementations live in subpackages (sqldb, memory).
package storage

import (
	"context"
	"errors"

	"github.com/serenia-app/serenia/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// EntryStore persists journal entries. The attached analysis blob is stored
// verbatim and handed back opaque.
type EntryStore interface {
	SaveEntry(ctx context.Context, entry *domain.Entry) error
	ListEntries(ctx context.Context, userID string) ([]*domain.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// BookingStore is an append/list repository for session bookings.
type BookingStore interface {
	AppendBooking(ctx context.Context, b *domain.Booking) error
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
}

// Store combines all persistence capabilities the service needs.
type Store interface {
	EntryStore
	BookingStore
	Close() error
}
