// Package storage provides temporary and persistent file storage for
// media processing. It defines the Store interface and implementations
// for local disk and S3-backed output delivery.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidPath is returned when an output directory path is
// syntactically unusable. Nothing is written in that case.
var ErrInvalidPath = errors.New("invalid path")

// ErrObjectStoreNotConfigured is returned when object-store operations
// are attempted without proper configuration.
var ErrObjectStoreNotConfigured = errors.New("object store is not configured")

// Store defines the interface for temporary working files and persisted
// outputs. Temp files live for the duration of a single operation;
// outputs are written where the caller asks.
type Store interface {
	// SaveTemp saves data to a uniquely named temporary file and returns
	// its path. The name parameter is used as a hint for the filename and
	// should carry the desired extension.
	SaveTemp(ctx context.Context, name string, data io.Reader) (path string, err error)

	// LoadTemp reads a temporary file and returns a reader.
	// The caller is responsible for closing the returned ReadCloser.
	LoadTemp(ctx context.Context, path string) (io.ReadCloser, error)

	// CleanupTemp removes the specified temporary files, continuing past
	// individual failures.
	CleanupTemp(ctx context.Context, paths []string) error

	// SaveOutput validates dir, creates it if needed, and writes data to
	// dir/name, returning the absolute path of the written file.
	// Returns an error wrapping ErrInvalidPath before any write if dir is
	// unusable.
	SaveOutput(ctx context.Context, dir, name string, data []byte) (absPath string, err error)

	// UploadOutput uploads data under key to the configured object store
	// and returns the public URL. Returns ErrObjectStoreNotConfigured on
	// backends without one.
	UploadOutput(ctx context.Context, key string, data io.Reader) (url string, err error)
}
