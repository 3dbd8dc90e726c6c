package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Identity records the bound identity under the key "identity".
// If id is empty, it returns an empty Attr.
func Identity(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("identity", id)
}

// NotificationID records the notification identifier under the key
// "notification_id".
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// Category records the notification category under the key "category".
func Category(c string) slog.Attr {
	return slog.String("category", c)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Channel records a transport channel name under the key "channel".
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}
