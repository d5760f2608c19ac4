// Package compress provides the media compression façade: image
// resizing backed by an in-process codec stack and video compression
// backed by an external encoder. A Compressor is safe for concurrent
// use; every call resolves its own attribute set and its own temporary
// files, nothing is mutated on the shared instance.
package compress

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/avpress/avpress/internal/encoder"
	"github.com/avpress/avpress/internal/storage"
)

// savedPathPrefix prefixes the confirmation string returned by the
// save-to-path operations.
const savedPathPrefix = "File is saved in path::"

// Compressor is the façade exposing all image and video operations.
type Compressor struct {
	enc    encoder.Encoder
	store  storage.Store
	logger *slog.Logger
}

// Option configures a Compressor.
type Option func(*Compressor)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compressor) {
		c.logger = logger
	}
}

// New creates a Compressor delegating video work to enc and file
// handling to store.
func New(enc encoder.Encoder, store storage.Store, opts ...Option) *Compressor {
	c := &Compressor{
		enc:    enc,
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// deriveFileName rewrites name so it carries ext. Only the extension
// after the last dot is replaced, preserving multi-dot basenames; a
// name without a dot gets the extension appended.
func deriveFileName(name, ext string) string {
	base := filepath.Base(name)
	if old := filepath.Ext(base); old != "" {
		if strings.TrimPrefix(old, ".") == ext {
			return base
		}
		base = strings.TrimSuffix(base, old)
	}
	return base + "." + ext
}
