package events

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Storage appends events to a durable store.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// StorageFunc adapts a function to Storage.
type StorageFunc func(ctx context.Context, event Event) error

func (f StorageFunc) Store(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// MemoryStorage keeps events in memory. Suitable for development and tests.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Store(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of the stored events in append order.
func (s *MemoryStorage) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// MultiStorage writes every event to all of its targets.
// A failing target does not stop the others; failures are joined.
type MultiStorage []Storage

// NewMultiStorage tees events into the given storages, skipping nil ones.
func NewMultiStorage(targets ...Storage) MultiStorage {
	out := make(MultiStorage, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (m MultiStorage) Store(ctx context.Context, event Event) error {
	if len(m) == 0 {
		return ErrStorageNotAvailable
	}

	var errs []error
	for _, s := range m {
		if err := s.Store(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
