package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopstack/notifykit/pkg/async"
	"github.com/shopstack/notifykit/pkg/logger"
)

// Engine owns the notification list, the preference store and the
// connection status as a single aggregate, and exposes every user-facing
// operation on top of them. One engine instance serves one session;
// construct it explicitly and tear it down with Close.
//
// The engine never returns transport or persistence errors to its callers:
// connection problems surface only through Status, persistence is
// optimistic fire-and-forget, and playback or alert failures degrade to
// "notification arrives but isn't extra-alerted".
type Engine struct {
	transport   Transport
	storage     Storage
	prefStorage PreferenceStorage
	audio       AudioPlayer
	alerts      Alerter
	log         *slog.Logger

	hydrateLimit int
	watchBuffer  int

	list  *List
	prefs *PreferenceStore

	mu             sync.RWMutex
	identity       string
	epoch          uint64 // bumped on every rebind; guards stale async results
	sub            Subscription
	status         ConnectionStatus
	closed         bool
	notifWatchers  map[chan Notification]struct{}
	statusWatchers map[chan ConnectionStatus]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for the engine.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithStorage sets the persistence service. All calls to it are
// best-effort; without it the engine keeps state in memory only.
func WithStorage(s Storage) Option {
	return func(e *Engine) {
		if s != nil {
			e.storage = s
		}
	}
}

// WithPreferenceStorage makes preferences durable across sessions: they are
// loaded on bind and saved (best-effort) on every update.
func WithPreferenceStorage(s PreferenceStorage) Option {
	return func(e *Engine) {
		e.prefStorage = s
	}
}

// WithAudio sets the audio subsystem.
func WithAudio(a AudioPlayer) Option {
	return func(e *Engine) {
		if a != nil {
			e.audio = a
		}
	}
}

// WithAlerter sets the transient-alert surface.
func WithAlerter(a Alerter) Option {
	return func(e *Engine) {
		if a != nil {
			e.alerts = a
		}
	}
}

// WithHydrationLimit caps how many persisted notifications are loaded into
// the list on bind. Default is 50.
func WithHydrationLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.hydrateLimit = limit
		}
	}
}

// WithWatchBuffer sets the channel buffer for Watch and WatchStatus
// subscribers. Slow watchers drop messages rather than block the engine.
func WithWatchBuffer(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.watchBuffer = size
		}
	}
}

// NewEngine creates an engine bound to no identity. A nil transport is
// replaced with NoopTransport so the engine can run local-only.
func NewEngine(transport Transport, opts ...Option) *Engine {
	if transport == nil {
		transport = NoopTransport{}
	}

	e := &Engine{
		transport:      transport,
		storage:        NoopStorage{},
		audio:          NoopAudio{},
		alerts:         NoopAlerter{},
		log:            slog.Default(),
		hydrateLimit:   50,
		watchBuffer:    16,
		list:           NewList(),
		prefs:          NewPreferenceStore(),
		status:         StatusDisconnected,
		notifWatchers:  make(map[chan Notification]struct{}),
		statusWatchers: make(map[chan ConnectionStatus]struct{}),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run drives the engine from an identity stream until the context is
// canceled or the stream ends. It always returns after tearing the engine
// down; the returned error is the context error, if any.
func (e *Engine) Run(ctx context.Context, source IdentitySource) error {
	identities := source.Identities(ctx)

	for {
		select {
		case <-ctx.Done():
			e.Bind(context.WithoutCancel(ctx), "")
			return ctx.Err()
		case identity, ok := <-identities:
			if !ok {
				e.Bind(context.WithoutCancel(ctx), "")
				return nil
			}
			e.Bind(ctx, identity)
		}
	}
}

// Bind ties the engine's live subscription to the given identity. An empty
// identity means "no identity": any existing subscription is torn down and
// the list cleared. Binding the already-bound identity is a no-op. Errors
// during bind or unbind are logged, never returned; a failed connect leaves
// the status at disconnected.
func (e *Engine) Bind(ctx context.Context, identity string) {
	e.mu.Lock()
	if e.closed || identity == e.identity {
		e.mu.Unlock()
		return
	}

	e.teardownLocked(ctx)
	e.identity = identity
	if identity == "" {
		e.mu.Unlock()
		return
	}

	epoch := e.epoch
	e.setStatusLocked(StatusConnecting)
	e.mu.Unlock()

	// Warm the sound-asset cache while the subscription opens.
	async.Fire(context.WithoutCancel(ctx), e.log, "audio preload", func(ctx context.Context) error {
		return e.audio.Preload(ctx)
	})

	sub, err := e.transport.Connect(ctx, identity)
	if err != nil {
		e.log.LogAttrs(ctx, slog.LevelWarn, "Failed to open notification subscription",
			logger.Identity(identity),
			logger.Error(err),
		)
		e.mu.Lock()
		if e.epoch == epoch {
			e.setStatusLocked(StatusDisconnected)
		}
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	if e.epoch != epoch {
		// Rebound while connecting; the new bind owns the engine now.
		e.mu.Unlock()
		e.closeSubscription(ctx, sub)
		return
	}
	e.sub = sub
	e.setStatusLocked(StatusConnected)
	e.mu.Unlock()

	go e.consume(sub, epoch)
	e.hydrate(context.WithoutCancel(ctx), identity, epoch)
}

// Close tears down the engine. It is idempotent; after Close the engine
// ignores further binds and actions keep working on local state only.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.teardownLocked(context.Background())
	e.identity = ""
	e.closed = true

	for ch := range e.notifWatchers {
		close(ch)
	}
	clear(e.notifWatchers)
	for ch := range e.statusWatchers {
		close(ch)
	}
	clear(e.statusWatchers)

	return nil
}

// teardownLocked closes any live subscription, clears the list and resets
// the status. It is idempotent and never fails. Callers hold e.mu.
func (e *Engine) teardownLocked(ctx context.Context) {
	e.epoch++
	if e.sub != nil {
		e.closeSubscription(ctx, e.sub)
		e.sub = nil
	}
	e.list.Clear()
	e.setStatusLocked(StatusDisconnected)
}

func (e *Engine) closeSubscription(ctx context.Context, sub Subscription) {
	if err := sub.Close(); err != nil {
		e.log.LogAttrs(ctx, slog.LevelWarn, "Failed to close notification subscription",
			logger.Error(err),
		)
	}
}

// consume processes inbound events and transport status changes until the
// subscription's channels close.
func (e *Engine) consume(sub Subscription, epoch uint64) {
	events := sub.Events()
	statuses := sub.Status()

	for events != nil || statuses != nil {
		select {
		case n, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			e.handleInbound(n, epoch)
		case status, ok := <-statuses:
			if !ok {
				statuses = nil
				continue
			}
			e.mu.Lock()
			if e.epoch == epoch {
				e.setStatusLocked(status)
			}
			e.mu.Unlock()
		}
	}

	// Transport went away on its own; report it unless a rebind already
	// replaced this subscription.
	e.mu.Lock()
	if e.epoch == epoch {
		e.sub = nil
		e.setStatusLocked(StatusDisconnected)
	}
	e.mu.Unlock()
}

// handleInbound runs one inbound event through the filtering pipeline and
// applies the decision. The preference snapshot is taken here, at decision
// time, so a preference update that completed before this event is always
// visible to its filtering decision.
func (e *Engine) handleInbound(n Notification, epoch uint64) {
	prefs := e.prefs.Get()

	decision := Decide(n, prefs)
	if !decision.Admit {
		return
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.Read = false

	e.mu.Lock()
	if e.epoch != epoch {
		// Event raced past a rebind; it belongs to the old identity.
		e.mu.Unlock()
		return
	}
	e.list.Insert(n)
	e.notifyWatchersLocked(n)
	e.mu.Unlock()

	e.surface(n, decision, prefs.Sound)
}

// surface fires the transient alert and sound for an admitted notification.
func (e *Engine) surface(n Notification, decision Decision, sound Sound) {
	ctx := context.Background()

	if decision.ShowAlert {
		go e.alerts.Show(ctx, Alert{
			Title:   n.Title,
			Message: n.Message,
			Variant: n.Type,
		})
	}
	if decision.PlaySound {
		async.Fire(ctx, e.log, "play notification sound", func(ctx context.Context) error {
			return e.audio.Play(ctx, sound)
		})
	}
}

// hydrate loads persisted preferences and recent notifications for a fresh
// bind. Best-effort: failures are logged and the engine keeps running with
// whatever state it has.
func (e *Engine) hydrate(ctx context.Context, identity string, epoch uint64) {
	async.Fire(ctx, e.log, "hydrate session", func(ctx context.Context) error {
		if e.prefStorage != nil {
			prefs, ok, err := e.prefStorage.LoadPreferences(ctx, identity)
			if err != nil {
				e.log.LogAttrs(ctx, slog.LevelWarn, "Failed to load stored preferences",
					logger.Identity(identity),
					logger.Error(err),
				)
			} else if ok {
				e.mu.Lock()
				if e.epoch == epoch {
					e.prefs.Replace(prefs)
				}
				e.mu.Unlock()
			}
		}

		items, err := e.storage.List(ctx, identity, ListOptions{Limit: e.hydrateLimit})
		if err != nil {
			return err
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.epoch != epoch || e.list.Len() > 0 {
			// Rebound meanwhile, or live events beat the hydration; keep
			// the fresher state.
			return nil
		}
		for i := len(items) - 1; i >= 0; i-- {
			e.list.Insert(items[i])
		}
		return nil
	})
}

// AddNotification constructs a notification from the given data, inserts it
// and fires the local-add surfacing rules: local adds always show a
// transient alert and, when a sound is enabled, play it. They do not pass
// through the inbound filtering pipeline. The stored notification is
// returned to the caller.
func (e *Engine) AddNotification(ctx context.Context, data Notification) Notification {
	n := data
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	n.Read = false
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.Category == "" {
		n.Category = CategorySystem
	}

	e.mu.Lock()
	identity := e.identity
	e.list.Insert(n)
	e.notifyWatchersLocked(n)
	e.mu.Unlock()

	prefs := e.prefs.Get()
	e.surface(n, Decision{Admit: true, ShowAlert: true, PlaySound: prefs.Sound != SoundNone}, prefs.Sound)

	if identity != "" {
		async.Fire(context.WithoutCancel(ctx), e.log, "persist notification", func(ctx context.Context) error {
			return e.storage.Create(ctx, identity, n)
		})
	}

	return n
}

// MarkAsRead marks one notification as read. Unknown IDs are a no-op.
func (e *Engine) MarkAsRead(ctx context.Context, id string) {
	e.list.MarkRead(id)

	if identity := e.Identity(); identity != "" {
		async.Fire(context.WithoutCancel(ctx), e.log, "persist mark-read", func(ctx context.Context) error {
			return e.storage.MarkRead(ctx, identity, id)
		})
	}
}

// MarkAllAsRead marks every notification as read.
func (e *Engine) MarkAllAsRead(ctx context.Context) {
	e.list.MarkAllRead()

	if identity := e.Identity(); identity != "" {
		async.Fire(context.WithoutCancel(ctx), e.log, "persist mark-all-read", func(ctx context.Context) error {
			return e.storage.MarkAllRead(ctx, identity)
		})
	}
}

// ClearNotification removes one notification. Unknown IDs are a no-op.
func (e *Engine) ClearNotification(ctx context.Context, id string) {
	e.list.Remove(id)

	if identity := e.Identity(); identity != "" {
		async.Fire(context.WithoutCancel(ctx), e.log, "persist clear", func(ctx context.Context) error {
			return e.storage.Delete(ctx, identity, id)
		})
	}
}

// ClearAllNotifications empties the list.
func (e *Engine) ClearAllNotifications(ctx context.Context) {
	e.list.Clear()

	if identity := e.Identity(); identity != "" {
		async.Fire(context.WithoutCancel(ctx), e.log, "persist clear-all", func(ctx context.Context) error {
			return e.storage.DeleteAll(ctx, identity)
		})
	}
}

// UpdatePreferences applies a shallow preference patch. The new value is
// visible to the very next filtering decision.
func (e *Engine) UpdatePreferences(ctx context.Context, patch Patch) {
	e.prefs.Update(patch)
	e.persistPreferences(ctx)
}

// UpdateSubscription patches a single per-category subscription entry.
func (e *Engine) UpdateSubscription(ctx context.Context, c Category, enabled bool) {
	e.prefs.SetSubscription(c, enabled)
	e.persistPreferences(ctx)
}

// UpdateFrequency patches a single per-category delivery frequency entry.
func (e *Engine) UpdateFrequency(ctx context.Context, c Category, f Frequency) {
	e.prefs.SetFrequency(c, f)
	e.persistPreferences(ctx)
}

func (e *Engine) persistPreferences(ctx context.Context) {
	if e.prefStorage == nil {
		return
	}
	identity := e.Identity()
	if identity == "" {
		return
	}

	prefs := e.prefs.Get()
	async.Fire(context.WithoutCancel(ctx), e.log, "persist preferences", func(ctx context.Context) error {
		return e.prefStorage.SavePreferences(ctx, identity, prefs)
	})
}

// TriggerTestNotification asks the transport to emit a synthetic inbound
// event for manual verification. Failures are logged, not returned.
func (e *Engine) TriggerTestNotification(ctx context.Context) {
	identity := e.Identity()
	if identity == "" {
		e.log.LogAttrs(ctx, slog.LevelDebug, "Test notification skipped: no identity bound")
		return
	}

	async.Fire(context.WithoutCancel(ctx), e.log, "trigger test notification", func(ctx context.Context) error {
		return e.transport.TriggerDemo(ctx, identity)
	})
}

// Notifications returns a snapshot of the list, newest first.
func (e *Engine) Notifications() []Notification {
	return e.list.All()
}

// UnreadCount returns the number of unread notifications.
func (e *Engine) UnreadCount() int {
	return e.list.UnreadCount()
}

// Preferences returns a snapshot of the current preferences.
func (e *Engine) Preferences() Preferences {
	return e.prefs.Get()
}

// Status returns the current connection status.
func (e *Engine) Status() ConnectionStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Identity returns the currently bound identity, or "" when unbound.
func (e *Engine) Identity() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.identity
}

// Watch returns a stream of notifications as they are admitted into the
// list, both inbound and locally added. The channel is buffered; slow
// consumers miss messages instead of blocking the engine. It is closed when
// the context is canceled or the engine shuts down.
func (e *Engine) Watch(ctx context.Context) <-chan Notification {
	ch := make(chan Notification, e.watchBuffer)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch
	}
	e.notifWatchers[ch] = struct{}{}
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.mu.Lock()
		if _, ok := e.notifWatchers[ch]; ok {
			delete(e.notifWatchers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}()

	return ch
}

// WatchStatus returns a stream of connection status changes, starting with
// the current status. Closed when the context is canceled or the engine
// shuts down.
func (e *Engine) WatchStatus(ctx context.Context) <-chan ConnectionStatus {
	ch := make(chan ConnectionStatus, e.watchBuffer)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch
	}
	ch <- e.status
	e.statusWatchers[ch] = struct{}{}
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.mu.Lock()
		if _, ok := e.statusWatchers[ch]; ok {
			delete(e.statusWatchers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}()

	return ch
}

func (e *Engine) setStatusLocked(status ConnectionStatus) {
	if e.status == status {
		return
	}
	e.status = status

	for ch := range e.statusWatchers {
		select {
		case ch <- status:
		default:
		}
	}
}

func (e *Engine) notifyWatchersLocked(n Notification) {
	for ch := range e.notifWatchers {
		select {
		case ch <- n:
		default:
		}
	}
}
