// Package tokenstore persists the opaque bearer credential across client
// runs, the Go analogue of the browser's local storage slot.
package tokenstore

import "context"

// Key is the fixed client-local key under which the credential is stored.
// Absence of the key means the client is anonymous on load.
const Key = "token"

// Store persists a single opaque bearer token. The token is written only by
// the session controller's login/register/logout/resume-failure paths and
// read only by the request gateway.
type Store interface {
	// Save persists the token, replacing any previous value.
	Save(ctx context.Context, token string) error
	// Load returns the stored token. ok is false when no token is stored.
	Load(ctx context.Context) (token string, ok bool, err error)
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
