package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopstack/notifykit/pkg/notifier"
)

// demoNotification is the synthetic event emitted by TriggerDemo on every
// transport. High priority so it exercises the full surfacing path.
func demoNotification() notifier.Notification {
	return notifier.Notification{
		ID:        uuid.NewString(),
		Type:      notifier.TypeInfo,
		Category:  notifier.CategorySystem,
		Priority:  notifier.PriorityHigh,
		Title:     "Test notification",
		Message:   "This is a test notification.",
		CreatedAt: time.Now(),
	}
}
