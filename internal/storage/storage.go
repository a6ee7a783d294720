package storage

import (
	"context"
	"io"
	"time"
)

// Uploader stores a resume document and returns the object key. The
// application row references the key, never the bytes.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// Signer mints a time-limited download URL for a stored object.
type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}
