package notifications

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	notifications []Notification
	mu            sync.RWMutex
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Create(ctx context.Context, notif Notification) error {
	if notif.ID == "" {
		return ErrMissingID
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, notif)
	return nil
}

func (s *MemoryStorage) List(ctx context.Context, r Recipient, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]Notification, 0)
	for _, n := range s.notifications {
		if !r.CanSee(n) {
			continue
		}
		if opts.OnlyUnread && n.Read {
			continue
		}
		if len(opts.Types) > 0 && !slices.Contains(opts.Types, n.Type) {
			continue
		}
		if opts.Since != nil && n.CreatedAt.Before(*opts.Since) {
			continue
		}
		filtered = append(filtered, n)
	}

	// Newest first; stable keeps insertion order for equal timestamps.
	slices.SortStableFunc(filtered, func(a, b Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	start := min(max(opts.Offset, 0), len(filtered))
	end := len(filtered)
	if opts.Limit > 0 {
		end = min(start+opts.Limit, len(filtered))
	}

	return filtered[start:end], nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, r Recipient) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Read && r.CanSee(n) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, r Recipient, notifIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for i := range s.notifications {
		n := &s.notifications[i]
		if n.Read || !r.CanSee(*n) {
			continue
		}
		if len(notifIDs) == 0 && (n.SubjectID == "" || n.SubjectID != r.UserID) {
			continue
		}
		if len(notifIDs) > 0 && !slices.Contains(notifIDs, n.ID) {
			continue
		}
		n.MarkAsRead(now)
	}
	return nil
}

// All returns a copy of every stored notification in insertion order.
func (s *MemoryStorage) All() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notifications)
}
