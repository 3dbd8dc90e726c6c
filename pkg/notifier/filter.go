package notifier

// Decision is the outcome of the filtering pipeline for a single inbound
// notification.
type Decision struct {
	// Admit controls whether the notification enters the list at all.
	Admit bool
	// ShowAlert controls the transient visual alert.
	ShowAlert bool
	// PlaySound controls audible surfacing.
	PlaySound bool
}

// Decide runs the preference-filtering pipeline for an inbound notification.
// It is a pure function of its two inputs: no clock reads, no I/O, no state.
// Callers must pass a preferences snapshot taken at decision time, never one
// captured when the subscription was opened.
//
// Pipeline:
//  1. Admission: dropped when in-app delivery is off or the category has an
//     explicit disabled subscription entry.
//  2. Frequency gate: non-realtime categories are admitted silently.
//  3. Priority: only high (or unset, which counts as high) notifications are
//     eligible for alert and sound.
//  4. Sound gate: audible surfacing additionally requires a sound other than
//     SoundNone.
func Decide(n Notification, prefs Preferences) Decision {
	if !prefs.InApp || !prefs.Subscribed(n.Category) {
		return Decision{}
	}

	d := Decision{Admit: true}

	if prefs.Frequency(n.Category) != FrequencyRealtime {
		return d
	}

	if n.Priority != PriorityHigh && n.Priority != "" {
		return d
	}

	d.ShowAlert = true
	d.PlaySound = prefs.Sound != SoundNone
	return d
}
