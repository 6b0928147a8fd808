package storage

import (
	"context"
	"io"
)

// Storage is the file backend for session uploads and generated archives.
type Storage interface {
	// Put stores the reader's content under key, replacing any previous
	// content. Size is used for the content-length on backends that
	// need it; pass the exact byte count.
	Put(ctx context.Context, key string, r io.Reader, size int64) (*Blob, error)

	// Get opens the file at key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the file at key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// Blob describes a stored file.
type Blob struct {
	// Key is the storage key the file was stored under.
	Key string

	// ContentType is the sniffed MIME type.
	ContentType string

	// Size is the stored size in bytes.
	Size int64
}
