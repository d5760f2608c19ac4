// Package server provides the HTTP API for media compression.
// It includes handlers, middleware, routes, and DTOs separated from
// the domain types.
package server

// ResizeImageRequest is the request body for POST /v1/images/resize.
type ResizeImageRequest struct {
	// DataBase64 is the base64-encoded source image.
	DataBase64 string `json:"data_base64" validate:"required,base64"`
	// Format is the target image format (png, jpeg, gif, bmp, tiff, webp).
	Format string `json:"format" validate:"required"`
	// Width and Height select the target resolution; both zero means the
	// server default.
	Width  int `json:"width" validate:"omitempty,min=1,max=8192"`
	Height int `json:"height" validate:"omitempty,min=1,max=8192"`
	// PushToS3 stores the output in the configured bucket and returns a URL.
	PushToS3 bool `json:"push_to_s3"`
}

// CompressVideoRequest is the request body for POST /v1/videos/compress.
type CompressVideoRequest struct {
	// DataBase64 is the base64-encoded source video.
	DataBase64 string `json:"data_base64" validate:"required,base64"`
	// Format is the target container (mp4, mkv, flv, mov, avi, wmv).
	Format string `json:"format" validate:"required"`
	Width  int    `json:"width" validate:"omitempty,min=1,max=8192"`
	Height int    `json:"height" validate:"omitempty,min=1,max=8192"`
	// PushToS3 stores the output in the configured bucket and returns a URL.
	PushToS3 bool `json:"push_to_s3"`
}

// AudioOverrides carries optional audio attribute overrides.
// Absent fields keep the server defaults.
type AudioOverrides struct {
	BitRate    *int `json:"bit_rate" validate:"omitempty,min=1"`
	Channels   *int `json:"channels" validate:"omitempty,min=1,max=8"`
	SampleRate *int `json:"sample_rate" validate:"omitempty,min=1"`
}

// VideoOverrides carries optional video attribute overrides.
// Absent fields keep the server defaults.
type VideoOverrides struct {
	BitRate   *int `json:"bit_rate" validate:"omitempty,min=1"`
	FrameRate *int `json:"frame_rate" validate:"omitempty,min=1,max=240"`
	Width     *int `json:"width" validate:"omitempty,min=1,max=8192"`
	Height    *int `json:"height" validate:"omitempty,min=1,max=8192"`
}

// EncodeVideoRequest is the request body for POST /v1/videos/encode.
type EncodeVideoRequest struct {
	DataBase64 string          `json:"data_base64" validate:"required,base64"`
	Format     string          `json:"format" validate:"required"`
	Audio      *AudioOverrides `json:"audio,omitempty"`
	Video      *VideoOverrides `json:"video,omitempty"`
	PushToS3   bool            `json:"push_to_s3"`
}

// ConvertVideoRequest is the request body for POST /v1/videos/convert.
type ConvertVideoRequest struct {
	DataBase64 string `json:"data_base64" validate:"required,base64"`
	Format     string `json:"format" validate:"required"`
	PushToS3   bool   `json:"push_to_s3"`
}

// MediaResponse is the response for all media operations.
type MediaResponse struct {
	// DataBase64 is the base64-encoded result (when push_to_s3=false).
	DataBase64 string `json:"data_base64,omitempty"`
	// URL is the object-store URL of the result (when push_to_s3=true).
	URL string `json:"url,omitempty"`
	// Format is the result's container format.
	Format string `json:"format"`
	// SizeBytes is the size of the encoded result.
	SizeBytes int `json:"size_bytes"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
