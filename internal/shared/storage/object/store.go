package object

import (
	"context"
	"io"
)

// Store is the staging area for raw uploaded bytes. Payloads are addressed by
// their server-assigned stored-name; each upload owns its stored-name
// exclusively.
type Store interface {
	// Save writes the reader to the staging area under storedName and reports
	// the number of bytes written. A failed Save must leave no payload behind.
	Save(ctx context.Context, storedName string, r io.Reader) (int64, error)
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	Remove(ctx context.Context, storedName string) error
}
