package notifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack/notifykit/pkg/notifier"
)

func boolPtr(b bool) *bool                      { return &b }
func soundPtr(s notifier.Sound) *notifier.Sound { return &s }

func TestDefaultPreferences(t *testing.T) {
	t.Parallel()

	prefs := notifier.DefaultPreferences()
	assert.True(t, prefs.Email)
	assert.True(t, prefs.Push)
	assert.True(t, prefs.InApp)
	assert.Equal(t, notifier.SoundDefault, prefs.Sound)

	// No explicit entries: everything subscribed, everything realtime.
	assert.True(t, prefs.Subscribed(notifier.CategoryChat))
	assert.Equal(t, notifier.FrequencyRealtime, prefs.Frequency(notifier.CategoryChat))
}

func TestPreferenceStore_UpdateShallowMerge(t *testing.T) {
	t.Parallel()

	s := notifier.NewPreferenceStore()

	s.Update(notifier.Patch{Email: boolPtr(false)})

	prefs := s.Get()
	assert.False(t, prefs.Email)
	// Untouched fields keep their current values.
	assert.True(t, prefs.Push)
	assert.True(t, prefs.InApp)
	assert.Equal(t, notifier.SoundDefault, prefs.Sound)
}

func TestPreferenceStore_UpdateReplacesMapsWholesale(t *testing.T) {
	t.Parallel()

	s := notifier.NewPreferenceStore()
	s.SetSubscription(notifier.CategoryChat, false)
	s.SetSubscription(notifier.CategoryTeam, false)

	// A patched map is a replacement, not a merge: the chat entry is gone.
	s.Update(notifier.Patch{
		Subscriptions: map[notifier.Category]bool{notifier.CategoryInvoice: false},
	})

	prefs := s.Get()
	assert.True(t, prefs.Subscribed(notifier.CategoryChat))
	assert.True(t, prefs.Subscribed(notifier.CategoryTeam))
	assert.False(t, prefs.Subscribed(notifier.CategoryInvoice))
}

func TestPreferenceStore_SetSubscriptionPatchesSingleKey(t *testing.T) {
	t.Parallel()

	s := notifier.NewPreferenceStore()
	s.Update(notifier.Patch{Sound: soundPtr(notifier.SoundChime)})
	s.SetSubscription(notifier.CategoryChat, false)

	s.SetSubscription(notifier.CategoryInvoice, false)

	prefs := s.Get()
	// Both entries present: single-key patch never clobbers its siblings.
	assert.False(t, prefs.Subscribed(notifier.CategoryChat))
	assert.False(t, prefs.Subscribed(notifier.CategoryInvoice))
	// And the rest of the preferences are untouched.
	assert.Equal(t, notifier.SoundChime, prefs.Sound)
	assert.True(t, prefs.InApp)
}

func TestPreferenceStore_SetFrequencyPatchesSingleKey(t *testing.T) {
	t.Parallel()

	s := notifier.NewPreferenceStore()
	s.SetFrequency(notifier.CategoryInventory, notifier.FrequencyHourly)
	s.SetFrequency(notifier.CategoryTeam, notifier.FrequencyDaily)

	prefs := s.Get()
	assert.Equal(t, notifier.FrequencyHourly, prefs.Frequency(notifier.CategoryInventory))
	assert.Equal(t, notifier.FrequencyDaily, prefs.Frequency(notifier.CategoryTeam))
	assert.Equal(t, notifier.FrequencyRealtime, prefs.Frequency(notifier.CategoryChat))
}

func TestPreferenceStore_GetReturnsIsolatedSnapshot(t *testing.T) {
	t.Parallel()

	s := notifier.NewPreferenceStore()
	s.SetSubscription(notifier.CategoryChat, false)

	snapshot := s.Get()
	snapshot.Subscriptions[notifier.CategoryChat] = true
	snapshot.InApp = false

	prefs := s.Get()
	assert.False(t, prefs.Subscribed(notifier.CategoryChat))
	assert.True(t, prefs.InApp)
}

func TestPreferenceStore_Replace(t *testing.T) {
	t.Parallel()

	s := notifier.NewPreferenceStore()
	s.Replace(notifier.Preferences{
		InApp: true,
		Sound: notifier.SoundBell,
		Subscriptions: map[notifier.Category]bool{
			notifier.CategoryChat: false,
		},
	})

	prefs := s.Get()
	require.Equal(t, notifier.SoundBell, prefs.Sound)
	assert.False(t, prefs.Email)
	assert.False(t, prefs.Subscribed(notifier.CategoryChat))
}
