package notifier

import (
	"time"
)

// Type represents the notification type/severity. It only affects how a
// downstream transient alert is styled.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Category is the domain tag used to key per-category delivery preferences.
type Category string

// Categories used by the shop-management domain. Arbitrary categories are
// allowed; unknown ones behave as default-enabled realtime.
const (
	CategorySystem    Category = "system"
	CategoryInvoice   Category = "invoice"
	CategoryWorkOrder Category = "workOrder"
	CategoryInventory Category = "inventory"
	CategoryCustomer  Category = "customer"
	CategoryTeam      Category = "team"
	CategoryChat      Category = "chat"
)

// Priority represents the notification priority level.
// The zero value means "unset" and is treated as PriorityHigh for
// surfacing purposes.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Notification is the core domain model for notifications.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Category  Category  `json:"category"`
	Priority  Priority  `json:"priority,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// MarkAsRead marks the notification as read. Read is monotonic: it never
// reverts to false through normal operations.
func (n *Notification) MarkAsRead() {
	n.Read = true
}
