package notifier

import (
	"slices"
	"sync"
)

// List is an ordered in-memory collection of notifications, newest first.
// All insertions happen at the head, so insertion order and timestamp order
// coincide. All methods are safe for concurrent use.
type List struct {
	items []Notification
	mu    sync.RWMutex
}

// NewList creates an empty notification list.
func NewList() *List {
	return &List{}
}

// Insert prepends the notification to the list.
func (l *List) Insert(n Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append([]Notification{n}, l.items...)
}

// MarkRead sets Read on the matching entry. Absent IDs are a no-op.
func (l *List) MarkRead(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].MarkAsRead()
			return
		}
	}
}

// MarkAllRead sets Read on every entry.
func (l *List) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		l.items[i].MarkAsRead()
	}
}

// Remove deletes the matching entry. Absent IDs are a no-op.
func (l *List) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = slices.DeleteFunc(l.items, func(n Notification) bool {
		return n.ID == id
	})
}

// Clear empties the list.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
}

// All returns a snapshot copy of the list, newest first.
func (l *List) All() []Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.items)
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.items)
}

// UnreadCount recounts unread entries on every call so the value can never
// desynchronize from the entries themselves.
func (l *List) UnreadCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for i := range l.items {
		if !l.items[i].Read {
			count++
		}
	}
	return count
}
