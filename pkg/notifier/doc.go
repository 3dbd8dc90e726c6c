// Package notifier implements the notification delivery and
// preference-filtering engine: a per-session aggregate of the notification
// list, the user's delivery preferences and the live subscription's
// connection status, driven by the current authenticated identity.
//
// # Architecture
//
//   - List: ordered in-memory notifications, newest first, with a live
//     unread count
//   - PreferenceStore: mutable delivery preferences; the filtering pipeline
//     always reads it at decision time
//   - Decide: the pure filtering pipeline (admission, frequency gate,
//     priority eligibility, sound gate)
//   - Engine: connection lifecycle plus every user-facing action
//
// External collaborators are narrow interfaces: Transport (inbound events),
// Storage (best-effort persistence), PreferenceStorage (durable
// preferences), AudioPlayer and Alerter (surfacing), IdentitySource
// (sign-in/sign-out stream). No-op implementations are provided for all of
// them, so an engine can run with nothing but a transport.
//
// # Basic usage
//
//	engine := notifier.NewEngine(transport,
//		notifier.WithStorage(storage),
//		notifier.WithLogger(log),
//	)
//	defer engine.Close()
//
//	go engine.Run(ctx, identitySource)
//
//	// UI layer
//	items := engine.Notifications()
//	unread := engine.UnreadCount()
//	engine.MarkAsRead(ctx, items[0].ID)
//
// # Failure semantics
//
// Nothing in this package propagates transport, persistence or playback
// errors to callers. Connect failures surface only through Status remaining
// disconnected; persistence is optimistic fire-and-forget; playback and
// alert failures degrade to a silent notification. The worst case a user
// sees is a notification without sound or toast, never a crash.
package notifier
