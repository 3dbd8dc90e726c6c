package notifier_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack/notifykit/pkg/notifier"
)

func TestMemoryStorage_CreateValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notifier.NewMemoryStorage()

	err := s.Create(ctx, "", notifier.Notification{ID: "1"})
	assert.ErrorIs(t, err, notifier.ErrMissingIdentity)

	err = s.Create(ctx, "user-1", notifier.Notification{})
	assert.ErrorIs(t, err, notifier.ErrMissingID)
}

func TestMemoryStorage_ListNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notifier.NewMemoryStorage()
	base := time.Now()

	require.NoError(t, s.Create(ctx, "user-1", notifier.Notification{ID: "old", CreatedAt: base.Add(-2 * time.Hour)}))
	require.NoError(t, s.Create(ctx, "user-1", notifier.Notification{ID: "new", CreatedAt: base}))
	require.NoError(t, s.Create(ctx, "user-1", notifier.Notification{ID: "mid", CreatedAt: base.Add(-time.Hour)}))

	items, err := s.List(ctx, "user-1", notifier.ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "mid", items[1].ID)
	assert.Equal(t, "old", items[2].ID)
}

func TestMemoryStorage_ListOptions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notifier.NewMemoryStorage()
	base := time.Now()

	require.NoError(t, s.Create(ctx, "user-1", notifier.Notification{ID: "1", CreatedAt: base.Add(-2 * time.Hour), Read: true}))
	require.NoError(t, s.Create(ctx, "user-1", notifier.Notification{ID: "2", CreatedAt: base.Add(-time.Hour)}))
	require.NoError(t, s.Create(ctx, "user-1", notifier.Notification{ID: "3", CreatedAt: base}))

	items, err := s.List(ctx, "user-1", notifier.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "3", items[0].ID)

	unread, err := s.List(ctx, "user-1", notifier.ListOptions{OnlyUnread: true})
	require.NoError(t, err)
	require.Len(t, unread, 2)
	for _, n := range unread {
		assert.False(t, n.Read)
	}
}

func TestMemoryStorage_IdentityScoping(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notifier.NewMemoryStorage()

	require.NoError(t, s.Create(ctx, "user-1", notifier.Notification{ID: "a"}))
	require.NoError(t, s.Create(ctx, "user-2", notifier.Notification{ID: "b"}))

	require.NoError(t, s.MarkAllRead(ctx, "user-1"))

	count, err := s.CountUnread(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = s.CountUnread(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, s.DeleteAll(ctx, "user-1"))
	items, err := s.List(ctx, "user-2", notifier.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMemoryStorage_MarkReadAndDeleteBatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notifier.NewMemoryStorage()

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, s.Create(ctx, "user-1", notifier.Notification{ID: id}))
	}

	require.NoError(t, s.MarkRead(ctx, "user-1", "1", "3"))
	count, err := s.CountUnread(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, s.Delete(ctx, "user-1", "1", "2"))
	items, err := s.List(ctx, "user-1", notifier.ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].ID)
}

func TestMemoryStorage_Preferences(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notifier.NewMemoryStorage()

	_, ok, err := s.LoadPreferences(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	prefs := notifier.DefaultPreferences()
	prefs.Subscriptions = map[notifier.Category]bool{notifier.CategoryChat: false}
	require.NoError(t, s.SavePreferences(ctx, "user-1", prefs))

	loaded, ok, err := s.LoadPreferences(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, loaded.Subscribed(notifier.CategoryChat))

	// Mutating the loaded copy must not leak back into the store.
	loaded.Subscriptions[notifier.CategoryChat] = true
	again, ok, err := s.LoadPreferences(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, again.Subscribed(notifier.CategoryChat))

	assert.ErrorIs(t, s.SavePreferences(ctx, "", prefs), notifier.ErrMissingIdentity)
}
