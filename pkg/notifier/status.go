package notifier

// ConnectionStatus reflects the state of the live subscription.
//
// The status is tri-state rather than a connected/disconnected boolean so a
// UI can distinguish "opening the subscription" from "no subscription".
type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusConnecting   ConnectionStatus = "connecting"
	StatusConnected    ConnectionStatus = "connected"
)
