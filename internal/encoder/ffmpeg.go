package encoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// muxerNames maps container extensions whose ffmpeg muxer name differs
// from the extension itself.
var muxerNames = map[string]string{
	"mkv": "matroska",
	"wmv": "asf",
}

// FFmpeg implements Encoder using the ffmpeg and ffprobe CLIs.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpeg creates a new FFmpeg encoder.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH);
// ffprobe is resolved the same way.
func NewFFmpeg(ffmpegPath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpeg{ffmpegPath: ffmpegPath, ffprobePath: "ffprobe"}
}

// Encode transcodes src into dst applying attrs. Zero-valued attribute
// fields are not passed to ffmpeg, so the encoder picks its own defaults
// for them (this is how container-only conversion works).
func (f *FFmpeg) Encode(ctx context.Context, src, dst string, attrs Attributes) error {
	return f.run(ctx, buildArgs(src, dst, attrs))
}

// buildArgs translates Attributes into an ffmpeg argument list.
func buildArgs(src, dst string, a Attributes) []string {
	args := []string{"-y", "-i", src}

	if a.VideoCodec != "" {
		args = append(args, "-c:v", a.VideoCodec)
	}
	if a.VideoProfile != "" {
		args = append(args, "-profile:v", a.VideoProfile)
	}
	if a.VideoBitRate > 0 {
		args = append(args, "-b:v", strconv.Itoa(a.VideoBitRate))
	}
	if a.FrameRate > 0 {
		args = append(args, "-r", strconv.Itoa(a.FrameRate))
	}
	if a.Width > 0 && a.Height > 0 {
		args = append(args, "-s", fmt.Sprintf("%dx%d", a.Width, a.Height))
	}
	if a.AudioCodec != "" {
		args = append(args, "-c:a", a.AudioCodec)
	}
	if a.AudioBitRate > 0 {
		args = append(args, "-b:a", strconv.Itoa(a.AudioBitRate))
	}
	if a.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(a.Channels))
	}
	if a.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(a.SampleRate))
	}
	if a.Format != "" {
		args = append(args, "-f", muxerName(a.Format))
	}

	return append(args, dst)
}

// muxerName returns the ffmpeg muxer name for a container extension.
func muxerName(ext string) string {
	if name, ok := muxerNames[ext]; ok {
		return name
	}
	return ext
}

// run executes ffmpeg with the given arguments and returns an error
// containing stderr output if the command fails.
func (f *FFmpeg) run(ctx context.Context, args []string) error {
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}
		return &ExecError{
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return nil
}

// Duration returns the duration in seconds of the media file at path,
// extracted with ffprobe.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	// #nosec G204 - ffprobePath is set by the application, not user input
	cmd := exec.CommandContext(ctx, f.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("ffprobe cancelled: %w", ctx.Err())
		}
		return 0, fmt.Errorf("ffprobe: %w, stderr: %s", err, stderr.String())
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}

	return duration, nil
}

// ExecError represents a failed ffmpeg invocation, including stderr output.
type ExecError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("ffmpeg error: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
