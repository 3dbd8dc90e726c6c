package notifier

import (
	"context"
	"sync"
)

// Transport is the external real-time channel delivering inbound
// notification events. Implementations live outside the engine
// (see pkg/transport for in-memory and Redis pub/sub adapters).
type Transport interface {
	// Connect opens a subscription scoped to the given identity.
	// The engine reports failures through its connection status only,
	// so implementations should return errors rather than retry forever.
	Connect(ctx context.Context, identity string) (Subscription, error)

	// TriggerDemo asks the transport to emit a synthetic inbound event
	// for the identity, used for manual verification.
	TriggerDemo(ctx context.Context, identity string) error
}

// Subscription is the explicit handle pair for a live subscription.
// Closing it disconnects and releases both channels; Close is idempotent
// and must be safe to call when nothing was delivered yet.
type Subscription interface {
	// Events returns the inbound notification stream. The channel is
	// closed when the subscription ends.
	Events() <-chan Notification

	// Status returns transport-level status changes. Implementations
	// without status reporting may return nil.
	Status() <-chan ConnectionStatus

	// Close tears down the subscription.
	Close() error
}

// NoopTransport connects successfully but never delivers anything.
// Useful for local-only engines and tests.
type NoopTransport struct{}

func (NoopTransport) Connect(ctx context.Context, identity string) (Subscription, error) {
	return &noopSubscription{events: make(chan Notification)}, nil
}

func (NoopTransport) TriggerDemo(ctx context.Context, identity string) error {
	return nil
}

type noopSubscription struct {
	events    chan Notification
	closeOnce sync.Once
}

func (s *noopSubscription) Events() <-chan Notification     { return s.events }
func (s *noopSubscription) Status() <-chan ConnectionStatus { return nil }

// Close releases the consumer draining the subscription. Idempotent.
func (s *noopSubscription) Close() error {
	s.closeOnce.Do(func() { close(s.events) })
	return nil
}
