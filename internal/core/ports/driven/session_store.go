package driven

import "context"

// SessionStore is the per-session key-value mapping used to persist a
// serialized credential record and the resolved-tenant cache across calls
// that may be separated by an asynchronous user-consent round trip.
//
// Values are opaque bytes; the store performs no interpretation. An
// implementation is already scoped to a single session.
type SessionStore interface {
	// Get retrieves a value by key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Clear removes the value stored under key. Clearing an absent key
	// is not an error.
	Clear(ctx context.Context, key string) error
}
