// Package blob abstracts the binary object store used for profile images.
// The production implementation writes to an S3-compatible backend and
// returns a durable retrieval URL for the stored object.
package blob

import "context"

// Store uploads a binary payload under the given key and returns the URL
// the object can be fetched from.
type Store interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}
