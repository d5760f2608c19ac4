package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local implements Store using local disk. Temporary files are kept in
// a dedicated directory; outputs go wherever the caller points.
type Local struct {
	tempDir string
}

// NewLocal creates a new Local store. The tempDir parameter specifies
// where temporary files are stored; if empty, a subdirectory of
// os.TempDir() is used. The directory is created if it doesn't exist.
func NewLocal(tempDir string) (*Local, error) {
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "avpress")
	}

	if err := os.MkdirAll(tempDir, 0750); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	return &Local{tempDir: tempDir}, nil
}

// TempDir returns the temporary directory path.
func (s *Local) TempDir() string {
	return s.tempDir
}

// SaveTemp saves data to a uniquely named temporary file and returns the
// file path. The extension of name, if any, is preserved so external
// tools can sniff the container from the filename.
func (s *Local) SaveTemp(ctx context.Context, name string, data io.Reader) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	pattern := name + "_*"
	if ext := filepath.Ext(name); ext != "" {
		pattern = strings.TrimSuffix(name, ext) + "_*" + ext
	}

	f, err := os.CreateTemp(s.tempDir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	fileName := f.Name()
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(fileName)
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(fileName)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return fileName, nil
}

// LoadTemp reads a temporary file and returns a reader.
// The caller is responsible for closing the returned ReadCloser.
func (s *Local) LoadTemp(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	f, err := os.Open(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return nil, fmt.Errorf("open temp file: %w", err)
	}

	return f, nil
}

// CleanupTemp removes the specified temporary files. It continues
// cleanup even if some files fail to delete, returning the first error
// encountered.
func (s *Local) CleanupTemp(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove temp file %s: %w", p, err)
			}
		}
	}
	return firstErr
}

// SaveOutput validates dir, creates it if needed, and writes data to
// dir/name, returning the absolute path of the written file.
func (s *Local) SaveOutput(ctx context.Context, dir, name string, data []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	if err := ValidatePath(dir); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	if err := os.WriteFile(absPath, data, 0600); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}

	return absPath, nil
}

// UploadOutput is not supported by Local and returns
// ErrObjectStoreNotConfigured.
func (s *Local) UploadOutput(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "", ErrObjectStoreNotConfigured
}

// ValidatePath reports whether dir is a syntactically usable directory
// path. It rejects empty paths and paths containing a NUL byte before
// anything is written.
func ValidatePath(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(dir, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, dir)
	}
	return nil
}
