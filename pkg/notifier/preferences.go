package notifier

import (
	"maps"
	"sync"
)

// Frequency controls how often a category may produce an immediate alert.
// Non-realtime frequencies still admit notifications into the list but
// suppress audible and transient surfacing.
type Frequency string

const (
	FrequencyRealtime Frequency = "realtime"
	FrequencyHourly   Frequency = "hourly"
	FrequencyDaily    Frequency = "daily"
)

// Sound is a sound-selection token for audible surfacing.
type Sound string

const (
	// SoundNone disables audible surfacing entirely.
	SoundNone Sound = "none"

	SoundDefault Sound = "default"
	SoundChime   Sound = "chime"
	SoundBell    Sound = "bell"
)

// Preferences holds the per-session notification delivery preferences.
// Categories absent from Frequencies default to realtime; categories absent
// from Subscriptions default to enabled.
type Preferences struct {
	Email         bool                   `json:"email"`
	Push          bool                   `json:"push"`
	InApp         bool                   `json:"in_app"`
	Sound         Sound                  `json:"sound"`
	Frequencies   map[Category]Frequency `json:"frequencies,omitempty"`
	Subscriptions map[Category]bool      `json:"subscriptions,omitempty"`
}

// DefaultPreferences returns the preferences applied at engine start:
// all channels on, default sound, everything realtime and subscribed.
func DefaultPreferences() Preferences {
	return Preferences{
		Email: true,
		Push:  true,
		InApp: true,
		Sound: SoundDefault,
	}
}

// Frequency returns the delivery frequency for a category, defaulting to
// realtime when the category has no explicit entry.
func (p Preferences) Frequency(c Category) Frequency {
	if f, ok := p.Frequencies[c]; ok {
		return f
	}
	return FrequencyRealtime
}

// Subscribed reports whether a category is subscribed. Categories without
// an explicit entry are enabled by default.
func (p Preferences) Subscribed(c Category) bool {
	if enabled, ok := p.Subscriptions[c]; ok {
		return enabled
	}
	return true
}

func (p Preferences) clone() Preferences {
	out := p
	if p.Frequencies != nil {
		out.Frequencies = maps.Clone(p.Frequencies)
	}
	if p.Subscriptions != nil {
		out.Subscriptions = maps.Clone(p.Subscriptions)
	}
	return out
}

// Patch describes a shallow merge into Preferences. Nil fields leave the
// current value untouched. Non-nil Frequencies or Subscriptions replace the
// whole map; callers wanting a single-key change use SetSubscription or
// SetFrequency instead.
type Patch struct {
	Email         *bool
	Push          *bool
	InApp         *bool
	Sound         *Sound
	Frequencies   map[Category]Frequency
	Subscriptions map[Category]bool
}

// PreferenceStore holds the current preferences value. Reads always observe
// the latest completed write, which is what the filtering pipeline depends
// on for correctness.
type PreferenceStore struct {
	prefs Preferences
	mu    sync.RWMutex
}

// NewPreferenceStore creates a store seeded with defaults.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{prefs: DefaultPreferences()}
}

// Get returns a deep-copied snapshot of the current preferences.
func (s *PreferenceStore) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.prefs.clone()
}

// Update applies the patch as a shallow merge.
func (s *PreferenceStore) Update(patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Email != nil {
		s.prefs.Email = *patch.Email
	}
	if patch.Push != nil {
		s.prefs.Push = *patch.Push
	}
	if patch.InApp != nil {
		s.prefs.InApp = *patch.InApp
	}
	if patch.Sound != nil {
		s.prefs.Sound = *patch.Sound
	}
	if patch.Frequencies != nil {
		s.prefs.Frequencies = maps.Clone(patch.Frequencies)
	}
	if patch.Subscriptions != nil {
		s.prefs.Subscriptions = maps.Clone(patch.Subscriptions)
	}
}

// SetSubscription patches exactly one subscription entry, leaving the rest
// of the preferences untouched. Unknown categories become new entries.
func (s *PreferenceStore) SetSubscription(c Category, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := maps.Clone(s.prefs.Subscriptions)
	if subs == nil {
		subs = make(map[Category]bool, 1)
	}
	subs[c] = enabled
	s.prefs.Subscriptions = subs
}

// SetFrequency patches exactly one frequency entry, leaving the rest of the
// preferences untouched.
func (s *PreferenceStore) SetFrequency(c Category, f Frequency) {
	s.mu.Lock()
	defer s.mu.Unlock()

	freqs := maps.Clone(s.prefs.Frequencies)
	if freqs == nil {
		freqs = make(map[Category]Frequency, 1)
	}
	freqs[c] = f
	s.prefs.Frequencies = freqs
}

// Replace swaps in a whole preferences value. Used when hydrating durable
// preferences on bind.
func (s *PreferenceStore) Replace(p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = p.clone()
}
