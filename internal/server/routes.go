package server

import (
	"log/slog"
	"net/http"
)

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing. maxBodyBytes
// caps request body size; zero disables the cap.
func NewRouter(h *Handlers, logger *slog.Logger, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /v1/images/resize", h.ResizeImage)
	mux.HandleFunc("POST /v1/videos/compress", h.CompressVideo)
	mux.HandleFunc("POST /v1/videos/encode", h.EncodeVideo)
	mux.HandleFunc("POST /v1/videos/convert", h.ConvertVideo)

	chain := ChainMiddleware(
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		BodyLimitMiddleware(maxBodyBytes),
	)

	return chain(mux)
}
