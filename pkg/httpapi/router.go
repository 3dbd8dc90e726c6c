package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopstack/notifykit/pkg/notifier"
)

// Router exposes the engine's read accessors and action coordinator over
// HTTP for the UI layer. The engine stays the single owner of state; every
// handler goes through its public operations.
//
// The router carries no auth: it is meant to be mounted behind the host
// application's session middleware, scoped to the session the engine
// belongs to.
func Router(engine *notifier.Engine, log *slog.Logger) chi.Router {
	if log == nil {
		log = slog.Default()
	}
	h := &handlers{engine: engine, log: log}

	r := chi.NewRouter()

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.listNotifications)
		r.Post("/", h.addNotification)
		r.Delete("/", h.clearAll)
		r.Get("/stream", h.stream)
		r.Post("/read-all", h.markAllRead)
		r.Post("/test", h.triggerTest)
		r.Post("/{id}/read", h.markRead)
		r.Delete("/{id}", h.clear)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/", h.getPreferences)
		r.Patch("/", h.patchPreferences)
		r.Put("/subscriptions/{category}", h.putSubscription)
		r.Put("/frequencies/{category}", h.putFrequency)
	})

	r.Get("/status", h.getStatus)

	return r
}

type handlers struct {
	engine *notifier.Engine
	log    *slog.Logger
}

type listResponse struct {
	Notifications []notifier.Notification `json:"notifications"`
	UnreadCount   int                     `json:"unread_count"`
}

func (h *handlers) list() listResponse {
	items := h.engine.Notifications()
	if items == nil {
		items = []notifier.Notification{}
	}
	return listResponse{
		Notifications: items,
		UnreadCount:   h.engine.UnreadCount(),
	}
}

func (h *handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.list())
}

type addNotificationRequest struct {
	Type     notifier.Type     `json:"type"`
	Category notifier.Category `json:"category"`
	Priority notifier.Priority `json:"priority"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
}

func (h *handlers) addNotification(w http.ResponseWriter, r *http.Request) {
	var req addNotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	n := h.engine.AddNotification(r.Context(), notifier.Notification{
		Type:     req.Type,
		Category: req.Category,
		Priority: req.Priority,
		Title:    req.Title,
		Message:  req.Message,
	})
	writeJSON(w, http.StatusCreated, n)
}

func (h *handlers) markRead(w http.ResponseWriter, r *http.Request) {
	h.engine.MarkAsRead(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.list())
}

func (h *handlers) markAllRead(w http.ResponseWriter, r *http.Request) {
	h.engine.MarkAllAsRead(r.Context())
	writeJSON(w, http.StatusOK, h.list())
}

func (h *handlers) clear(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearNotification(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) clearAll(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearAllNotifications(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) triggerTest(w http.ResponseWriter, r *http.Request) {
	h.engine.TriggerTestNotification(r.Context())
	w.WriteHeader(http.StatusAccepted)
}

func (h *handlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Preferences())
}

type preferencesPatch struct {
	Email         *bool                                    `json:"email"`
	Push          *bool                                    `json:"push"`
	InApp         *bool                                    `json:"in_app"`
	Sound         *notifier.Sound                          `json:"sound"`
	Frequencies   map[notifier.Category]notifier.Frequency `json:"frequencies"`
	Subscriptions map[notifier.Category]bool               `json:"subscriptions"`
}

func (h *handlers) patchPreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesPatch
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	h.engine.UpdatePreferences(r.Context(), notifier.Patch{
		Email:         req.Email,
		Push:          req.Push,
		InApp:         req.InApp,
		Sound:         req.Sound,
		Frequencies:   req.Frequencies,
		Subscriptions: req.Subscriptions,
	})
	writeJSON(w, http.StatusOK, h.engine.Preferences())
}

type subscriptionRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *handlers) putSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	h.engine.UpdateSubscription(r.Context(), notifier.Category(chi.URLParam(r, "category")), req.Enabled)
	writeJSON(w, http.StatusOK, h.engine.Preferences())
}

type frequencyRequest struct {
	Frequency notifier.Frequency `json:"frequency"`
}

func (h *handlers) putFrequency(w http.ResponseWriter, r *http.Request) {
	var req frequencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	h.engine.UpdateFrequency(r.Context(), notifier.Category(chi.URLParam(r, "category")), req.Frequency)
	writeJSON(w, http.StatusOK, h.engine.Preferences())
}

type statusResponse struct {
	Status   notifier.ConnectionStatus `json:"status"`
	Identity string                    `json:"identity,omitempty"`
}

func (h *handlers) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:   h.engine.Status(),
		Identity: h.engine.Identity(),
	})
}
