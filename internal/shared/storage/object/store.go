package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for archiving and retrieving raw document
// payloads. Save namespaces the object under a hash of ownerKey and returns
// the storage key recorded on the catalog row.
type ObjectStore interface {
	Save(ctx context.Context, ownerKey string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
