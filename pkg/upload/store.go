package upload

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a temp file doesn't exist or was
// already claimed.
var ErrNotFound = errors.New("upload: file not found")

// ErrExpired is returned when a temp file outlived its expiry window.
var ErrExpired = errors.New("upload: file expired")

// ErrTooLarge is returned when a file exceeds the store's size limit.
var ErrTooLarge = errors.New("upload: file too large")

// Store is the interface for upload storage backends.
type Store interface {
	// Save stores the uploaded file and returns a temp ID. The file
	// is held temporarily until Claim is called.
	Save(ctx context.Context, filename, contentType string, size int64, r io.Reader) (tempID string, err error)

	// Claim retrieves and consumes a temp file. A temp ID can be
	// claimed once; a second claim returns ErrNotFound.
	Claim(ctx context.Context, tempID string) (*File, error)

	// Cleanup removes temp files older than maxAge. Call it
	// periodically.
	Cleanup(ctx context.Context, maxAge time.Duration) error
}

// File is a claimed upload.
type File struct {
	// ID is the temp ID the file was claimed under.
	ID string

	// Filename is the original filename from the client.
	Filename string

	// ContentType is the sniffed MIME type.
	ContentType string

	// Size is the file size in bytes.
	Size int64

	// Path is the local filesystem path (DiskStore only).
	Path string

	// URL is a presigned remote URL (S3Store only).
	URL string

	// Reader streams the file contents. Closing it releases the
	// underlying temp file.
	Reader io.ReadCloser
}

// Close closes the file reader if open.
func (f *File) Close() error {
	if f.Reader != nil {
		return f.Reader.Close()
	}
	return nil
}
