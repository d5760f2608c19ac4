// Package encoder provides video transcoding via an external encoder process.
package encoder

import "context"

// Attributes describes a single encode: container format plus the video
// and audio settings to apply. Zero-valued fields are omitted from the
// encoder invocation, leaving the encoder's own defaults in effect.
type Attributes struct {
	// Format is the target container extension (mp4, mkv, flv, mov, avi, wmv).
	Format string

	VideoCodec   string
	VideoProfile string
	// VideoBitRate is in bits per second.
	VideoBitRate int
	// FrameRate is in frames per second.
	FrameRate int
	Width     int
	Height    int

	AudioCodec string
	// AudioBitRate is in bits per second.
	AudioBitRate int
	Channels     int
	// SampleRate is in Hz.
	SampleRate int
}

// Encoder defines the interface for external video encoding operations.
// Implementations should use ffmpeg or a compatible tool.
type Encoder interface {
	// Encode transcodes the media file at src into dst applying attrs.
	// The dst extension and attrs.Format select the output container.
	Encode(ctx context.Context, src, dst string, attrs Attributes) error

	// Duration returns the duration in seconds of the media file at path.
	Duration(ctx context.Context, path string) (float64, error)
}
