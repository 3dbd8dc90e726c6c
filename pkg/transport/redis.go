package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/shopstack/notifykit/pkg/logger"
	"github.com/shopstack/notifykit/pkg/notifier"
)

// Redis is a transport backed by Redis pub/sub: one channel per identity,
// JSON-encoded notifications. Any process holding the same client
// configuration can publish into a user's feed.
type Redis struct {
	client     *redis.Client
	prefix     string
	bufferSize int
	log        *slog.Logger
}

// RedisOption configures a Redis transport.
type RedisOption func(*Redis)

// WithChannelPrefix overrides the pub/sub channel prefix.
// Default is "notify:user:".
func WithChannelPrefix(prefix string) RedisOption {
	return func(t *Redis) {
		if prefix != "" {
			t.prefix = prefix
		}
	}
}

// WithRedisBuffer sets the per-subscription event buffer. Default is 16.
func WithRedisBuffer(size int) RedisOption {
	return func(t *Redis) {
		if size > 0 {
			t.bufferSize = size
		}
	}
}

// WithRedisLogger sets the logger for the transport.
func WithRedisLogger(log *slog.Logger) RedisOption {
	return func(t *Redis) {
		if log != nil {
			t.log = log
		}
	}
}

// NewRedis creates a Redis pub/sub transport on an existing client.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	t := &Redis{
		client:     client,
		prefix:     "notify:user:",
		bufferSize: 16,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Redis) channel(identity string) string {
	return t.prefix + identity
}

// Connect subscribes to the identity's channel. The returned subscription
// is live once Connect returns: the subscribe confirmation is awaited here
// so a successful Connect means the feed is attached.
func (t *Redis) Connect(ctx context.Context, identity string) (notifier.Subscription, error) {
	if identity == "" {
		return nil, notifier.ErrMissingIdentity
	}

	pubsub := t.client.Subscribe(ctx, t.channel(identity))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan notifier.Notification, t.bufferSize),
		status: make(chan notifier.ConnectionStatus, 4),
	}
	go sub.loop(t.log, t.channel(identity))

	return sub, nil
}

// Publish delivers a notification to every subscriber of the identity's
// channel.
func (t *Redis) Publish(ctx context.Context, identity string, n notifier.Notification) error {
	if identity == "" {
		return notifier.ErrMissingIdentity
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return t.client.Publish(ctx, t.channel(identity), payload).Err()
}

// TriggerDemo publishes a canned demo notification to the identity.
func (t *Redis) TriggerDemo(ctx context.Context, identity string) error {
	return t.Publish(ctx, identity, demoNotification())
}

type redisSubscription struct {
	pubsub    *redis.PubSub
	events    chan notifier.Notification
	status    chan notifier.ConnectionStatus
	closeOnce sync.Once
	closeErr  error
}

// loop decodes pub/sub payloads into the event channel until the
// subscription closes. Malformed payloads are logged and skipped; slow
// consumers miss messages rather than block the reader.
func (s *redisSubscription) loop(log *slog.Logger, channel string) {
	defer close(s.events)
	defer close(s.status)

	for msg := range s.pubsub.Channel() {
		var n notifier.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			log.LogAttrs(context.Background(), slog.LevelWarn, "Dropping malformed notification payload",
				logger.Channel(channel),
				logger.Error(err),
			)
			continue
		}

		select {
		case s.events <- n:
		default:
			log.LogAttrs(context.Background(), slog.LevelWarn, "Dropping notification for slow subscriber",
				logger.Channel(channel),
				logger.NotificationID(n.ID),
			)
		}
	}
}

func (s *redisSubscription) Events() <-chan notifier.Notification {
	return s.events
}

func (s *redisSubscription) Status() <-chan notifier.ConnectionStatus {
	return s.status
}

// Close unsubscribes and ends the decode loop. Idempotent.
func (s *redisSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.pubsub.Close()
	})
	return s.closeErr
}
