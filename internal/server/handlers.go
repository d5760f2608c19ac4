package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/avpress/avpress/internal/compress"
	"github.com/avpress/avpress/internal/storage"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	compressor *compress.Compressor
	store      storage.Store
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(compressor *compress.Compressor, store storage.Store, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		compressor: compressor,
		store:      store,
		validator:  validator.New(),
		logger:     logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ResizeImage handles POST /v1/images/resize requests.
func (h *Handlers) ResizeImage(w http.ResponseWriter, r *http.Request) {
	var req ResizeImageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	format, ok := compress.ParseImageFormat(req.Format)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported image format: "+req.Format, "UNSUPPORTED_FORMAT")
		return
	}

	data, ok := h.decodePayload(w, req.DataBase64)
	if !ok {
		return
	}

	out, err := h.compressor.ResizeImage(data, format, compress.Resolution{Width: req.Width, Height: req.Height})
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeResult(w, r, out, format.Ext(), req.PushToS3)
}

// CompressVideo handles POST /v1/videos/compress requests.
func (h *Handlers) CompressVideo(w http.ResponseWriter, r *http.Request) {
	var req CompressVideoRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	format, ok := compress.ParseVideoFormat(req.Format)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported video format: "+req.Format, "UNSUPPORTED_FORMAT")
		return
	}

	data, ok := h.decodePayload(w, req.DataBase64)
	if !ok {
		return
	}

	out, err := h.compressor.ReduceVideoSize(r.Context(), data, format, compress.Resolution{Width: req.Width, Height: req.Height})
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeResult(w, r, out, format.Ext(), req.PushToS3)
}

// EncodeVideo handles POST /v1/videos/encode requests.
func (h *Handlers) EncodeVideo(w http.ResponseWriter, r *http.Request) {
	var req EncodeVideoRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	format, ok := compress.ParseVideoFormat(req.Format)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported video format: "+req.Format, "UNSUPPORTED_FORMAT")
		return
	}

	data, ok := h.decodePayload(w, req.DataBase64)
	if !ok {
		return
	}

	var audio *compress.AudioAttributes
	if req.Audio != nil {
		audio = &compress.AudioAttributes{
			BitRate:    req.Audio.BitRate,
			Channels:   req.Audio.Channels,
			SampleRate: req.Audio.SampleRate,
		}
	}

	var video *compress.VideoAttributes
	if req.Video != nil {
		video = &compress.VideoAttributes{
			BitRate:   req.Video.BitRate,
			FrameRate: req.Video.FrameRate,
		}
		if req.Video.Width != nil && req.Video.Height != nil {
			video.Size = &compress.Resolution{Width: *req.Video.Width, Height: *req.Video.Height}
		}
	}

	out, err := h.compressor.EncodeVideoWithAttributes(r.Context(), data, format, audio, video)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeResult(w, r, out, format.Ext(), req.PushToS3)
}

// ConvertVideo handles POST /v1/videos/convert requests.
func (h *Handlers) ConvertVideo(w http.ResponseWriter, r *http.Request) {
	var req ConvertVideoRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	format, ok := compress.ParseVideoFormat(req.Format)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported video format: "+req.Format, "UNSUPPORTED_FORMAT")
		return
	}

	data, ok := h.decodePayload(w, req.DataBase64)
	if !ok {
		return
	}

	out, err := h.compressor.ConvertVideoFormat(r.Context(), data, format)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeResult(w, r, out, format.Ext(), req.PushToS3)
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing the error response itself when either step fails.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return false
	}

	return true
}

func (h *Handlers) decodePayload(w http.ResponseWriter, b64 string) ([]byte, bool) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid base64 payload", "INVALID_BASE64")
		return nil, false
	}
	return data, true
}

// writeResult returns the output inline as base64 or, when pushToS3 is
// set, uploads it under a fresh key and returns the URL.
func (h *Handlers) writeResult(w http.ResponseWriter, r *http.Request, out []byte, ext string, pushToS3 bool) {
	if !pushToS3 {
		writeJSON(w, http.StatusOK, MediaResponse{
			DataBase64: base64.StdEncoding.EncodeToString(out),
			Format:     ext,
			SizeBytes:  len(out),
		})
		return
	}

	key := uuid.NewString() + "." + ext
	url, err := h.store.UploadOutput(r.Context(), key, bytes.NewReader(out))
	if err != nil {
		if errors.Is(err, storage.ErrObjectStoreNotConfigured) {
			writeError(w, http.StatusBadRequest, "object store is not configured", "S3_NOT_CONFIGURED")
			return
		}
		h.logger.Error("upload failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "failed to store output", "UPLOAD_FAILED")
		return
	}

	writeJSON(w, http.StatusOK, MediaResponse{
		URL:       url,
		Format:    ext,
		SizeBytes: len(out),
	})
}

// writeOperationError maps façade errors to HTTP responses.
func (h *Handlers) writeOperationError(w http.ResponseWriter, err error) {
	var imgErr *compress.ImageError
	var vidErr *compress.VideoError

	switch {
	case errors.As(err, &imgErr):
		writeError(w, http.StatusUnprocessableEntity, imgErr.Error(), "INVALID_IMAGE")
	case errors.As(err, &vidErr):
		h.logger.Error("video operation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusUnprocessableEntity, "video encoding failed", "VIDEO_ENCODING_FAILED")
	case errors.Is(err, storage.ErrInvalidPath):
		writeError(w, http.StatusBadRequest, "invalid path", "INVALID_PATH")
	default:
		h.logger.Error("operation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response",
			slog.String("error", err.Error()),
		)
	}
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
