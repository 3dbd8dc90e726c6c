package notifier

import (
	"context"
)

// IdentitySource supplies the current authenticated identity and its
// changes. The stream must emit the current identity once on subscribe and
// again on every change. An empty string means "no identity".
type IdentitySource interface {
	Identities(ctx context.Context) <-chan string
}

// StaticIdentity is an IdentitySource that emits a single fixed identity
// and then never changes.
type StaticIdentity string

func (s StaticIdentity) Identities(ctx context.Context) <-chan string {
	ch := make(chan string, 1)
	ch <- string(s)
	return ch
}
