package localstate

import "context"

// Store is the durable key/value area backing the draft and the trip
// index, mirroring the browser localStorage model the client grew out of:
// opaque text values under well-known keys. A missing key is a normal
// outcome, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
