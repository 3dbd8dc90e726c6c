package notifier

import "errors"

var (
	// ErrMissingID is returned when a notification without an ID is stored.
	ErrMissingID = errors.New("notification ID is required")

	// ErrMissingIdentity is returned when an identity-scoped operation is
	// called with an empty identity.
	ErrMissingIdentity = errors.New("identity is required")
)
