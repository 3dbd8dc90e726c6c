package transport

import (
	"context"
	"sync"

	"github.com/shopstack/notifykit/pkg/notifier"
)

// Memory is an in-process transport with per-identity feeds. Delivery is
// non-blocking: when a subscription's buffer is full the message is dropped
// for that subscriber. All methods are safe for concurrent use.
type Memory struct {
	bufferSize int
	feeds      map[string]map[*memorySubscription]struct{}
	closed     bool
	mu         sync.RWMutex
}

// MemoryOption configures a Memory transport.
type MemoryOption func(*Memory)

// WithMemoryBuffer sets the per-subscription channel buffer. Default is 16;
// a minimum of 1 is enforced to keep sends non-blocking.
func WithMemoryBuffer(size int) MemoryOption {
	return func(m *Memory) {
		if size > 0 {
			m.bufferSize = size
		}
	}
}

// NewMemory creates a new in-memory transport.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		bufferSize: 16,
		feeds:      make(map[string]map[*memorySubscription]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect opens a subscription scoped to the identity.
func (m *Memory) Connect(ctx context.Context, identity string) (notifier.Subscription, error) {
	if identity == "" {
		return nil, notifier.ErrMissingIdentity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	sub := &memorySubscription{
		transport: m,
		identity:  identity,
		events:    make(chan notifier.Notification, m.bufferSize),
		status:    make(chan notifier.ConnectionStatus, 4),
	}

	subs, ok := m.feeds[identity]
	if !ok {
		subs = make(map[*memorySubscription]struct{})
		m.feeds[identity] = subs
	}
	subs[sub] = struct{}{}

	return sub, nil
}

// Publish delivers a notification to every live subscription of the
// identity. Slow subscribers miss the message rather than block.
func (m *Memory) Publish(ctx context.Context, identity string, n notifier.Notification) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}

	for sub := range m.feeds[identity] {
		select {
		case sub.events <- n:
		default:
		}
	}
	return nil
}

// TriggerDemo publishes a canned demo notification to the identity.
func (m *Memory) TriggerDemo(ctx context.Context, identity string) error {
	return m.Publish(ctx, identity, demoNotification())
}

// Close shuts down the transport and every live subscription. Idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	for _, subs := range m.feeds {
		for sub := range subs {
			sub.closeLocked()
		}
	}
	clear(m.feeds)
	return nil
}

func (m *Memory) unsubscribe(sub *memorySubscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if subs, ok := m.feeds[sub.identity]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(m.feeds, sub.identity)
		}
	}
}

type memorySubscription struct {
	transport *Memory
	identity  string
	events    chan notifier.Notification
	status    chan notifier.ConnectionStatus
	closeOnce sync.Once
}

func (s *memorySubscription) Events() <-chan notifier.Notification {
	return s.events
}

func (s *memorySubscription) Status() <-chan notifier.ConnectionStatus {
	return s.status
}

// Close unsubscribes from the transport and closes both channels. Safe to
// call multiple times and safe to call when the transport already shut down.
func (s *memorySubscription) Close() error {
	s.transport.unsubscribe(s)
	s.closeOnce.Do(func() {
		close(s.events)
		close(s.status)
	})
	return nil
}

// closeLocked is called by Memory.Close with the transport lock held.
func (s *memorySubscription) closeLocked() {
	s.closeOnce.Do(func() {
		close(s.events)
		close(s.status)
	})
}
