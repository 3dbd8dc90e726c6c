package notifier

import (
	"context"
)

// Storage is the persistence service behind the engine. Every call the
// engine makes is best-effort: failures are logged and never roll back the
// local mutation.
type Storage interface {
	// Create stores a new notification for the identity.
	Create(ctx context.Context, identity string, n Notification) error

	// List returns notifications for the identity, newest first.
	List(ctx context.Context, identity string, opts ListOptions) ([]Notification, error)

	// MarkRead marks notification(s) as read. Absent IDs are ignored.
	MarkRead(ctx context.Context, identity string, ids ...string) error

	// MarkAllRead marks every notification of the identity as read.
	MarkAllRead(ctx context.Context, identity string) error

	// Delete removes notification(s). Absent IDs are ignored.
	Delete(ctx context.Context, identity string, ids ...string) error

	// DeleteAll removes every notification of the identity.
	DeleteAll(ctx context.Context, identity string) error

	// CountUnread returns the unread count for the identity.
	CountUnread(ctx context.Context, identity string) (int, error)
}

// ListOptions provides filtering options for listing notifications.
type ListOptions struct {
	Limit      int  // Maximum number of notifications to return (0 = no limit)
	OnlyUnread bool // When true, only return unread notifications
}

// PreferenceStorage persists preferences across sessions. Without it the
// engine re-applies defaults on every start.
type PreferenceStorage interface {
	// LoadPreferences returns the stored preferences for the identity.
	// The second return value is false when nothing was stored yet.
	LoadPreferences(ctx context.Context, identity string) (Preferences, bool, error)

	// SavePreferences stores the preferences for the identity.
	SavePreferences(ctx context.Context, identity string, prefs Preferences) error
}

// NoopStorage discards writes and returns empty reads. It is the default
// when no persistence service is configured.
type NoopStorage struct{}

func (NoopStorage) Create(ctx context.Context, identity string, n Notification) error {
	return nil
}

func (NoopStorage) List(ctx context.Context, identity string, opts ListOptions) ([]Notification, error) {
	return nil, nil
}

func (NoopStorage) MarkRead(ctx context.Context, identity string, ids ...string) error {
	return nil
}

func (NoopStorage) MarkAllRead(ctx context.Context, identity string) error {
	return nil
}

func (NoopStorage) Delete(ctx context.Context, identity string, ids ...string) error {
	return nil
}

func (NoopStorage) DeleteAll(ctx context.Context, identity string) error {
	return nil
}

func (NoopStorage) CountUnread(ctx context.Context, identity string) (int, error) {
	return 0, nil
}
