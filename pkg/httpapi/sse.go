package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// stream pushes admitted notifications and connection status changes to
// the client as Server-Sent Events. Event names are "notification" and
// "status"; payloads are JSON. The stream ends when the client disconnects
// or the engine shuts down.
func (h *handlers) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", "response writer does not support flushing")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	events := h.engine.Watch(ctx)
	statuses := h.engine.WatchStatus(ctx)

	for events != nil || statuses != nil {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := writeEvent(w, flusher, "notification", n); err != nil {
				h.log.LogAttrs(ctx, slog.LevelDebug, "SSE write failed, closing stream",
					slog.Any("error", err),
				)
				return
			}
		case status, ok := <-statuses:
			if !ok {
				statuses = nil
				continue
			}
			if err := writeEvent(w, flusher, "status", status); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
