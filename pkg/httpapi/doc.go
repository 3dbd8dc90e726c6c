// Package httpapi is a thin HTTP adapter over the notification engine for
// the UI layer: list and unread count reads, the action operations, the
// preference endpoints and a Server-Sent Events stream of admitted
// notifications.
//
// Mount it behind the host application's session middleware:
//
//	r := chi.NewRouter()
//	r.Mount("/api/notify", httpapi.Router(engine, log))
//
// The adapter holds no state of its own; the engine remains the single
// owner of the notification list, preferences and connection status.
package httpapi
