package notifier

import (
	"context"
)

// Alert is a transient visual alert (toast-equivalent) derived from a
// notification that passed the surfacing gates.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Variant Type   `json:"variant"`
}

// Alerter is the transient-alert surface. Show is fire-and-forget; the
// engine never waits on it and implementations must not panic.
type Alerter interface {
	Show(ctx context.Context, alert Alert)
}

// AlerterFunc adapts a function to the Alerter interface.
type AlerterFunc func(ctx context.Context, alert Alert)

func (f AlerterFunc) Show(ctx context.Context, alert Alert) { f(ctx, alert) }

// NoopAlerter drops alerts.
type NoopAlerter struct{}

func (NoopAlerter) Show(ctx context.Context, alert Alert) {}

// AudioPlayer is the audio subsystem. Failures from either method are
// logged by the engine and never block the surrounding flow.
type AudioPlayer interface {
	// Preload warms the sound-asset cache. Called best-effort on bind.
	Preload(ctx context.Context) error

	// Play plays the given sound token.
	Play(ctx context.Context, sound Sound) error
}

// NoopAudio ignores playback.
type NoopAudio struct{}

func (NoopAudio) Preload(ctx context.Context) error           { return nil }
func (NoopAudio) Play(ctx context.Context, sound Sound) error { return nil }
