package notifier

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of Storage and
// PreferenceStorage. Suitable for development and testing.
type MemoryStorage struct {
	notifications map[string][]Notification // identity -> notifications
	preferences   map[string]Preferences
	mu            sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		notifications: make(map[string][]Notification),
		preferences:   make(map[string]Preferences),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, identity string, n Notification) error {
	if identity == "" {
		return ErrMissingIdentity
	}
	if n.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.notifications[identity] = append(s.notifications[identity], n)
	return nil
}

func (s *MemoryStorage) List(ctx context.Context, identity string, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Notification
	for _, n := range s.notifications[identity] {
		if opts.OnlyUnread && n.Read {
			continue
		}
		out = append(out, n)
	}

	// Newest first
	slices.SortStableFunc(out, func(a, b Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, identity string, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.notifications[identity]
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	for i := range notifications {
		if idSet[notifications[i].ID] {
			notifications[i].MarkAsRead()
		}
	}
	return nil
}

func (s *MemoryStorage) MarkAllRead(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.notifications[identity]
	for i := range notifications {
		notifications[i].MarkAsRead()
	}
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, identity string, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	s.notifications[identity] = slices.DeleteFunc(s.notifications[identity], func(n Notification) bool {
		return idSet[n.ID]
	})
	return nil
}

func (s *MemoryStorage) DeleteAll(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notifications, identity)
	return nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, identity string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications[identity] {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStorage) LoadPreferences(ctx context.Context, identity string) (Preferences, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs, ok := s.preferences[identity]
	if !ok {
		return Preferences{}, false, nil
	}
	return prefs.clone(), true, nil
}

func (s *MemoryStorage) SavePreferences(ctx context.Context, identity string, prefs Preferences) error {
	if identity == "" {
		return ErrMissingIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferences[identity] = prefs.clone()
	return nil
}
