package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFFmpeg(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		f := NewFFmpeg("")
		assert.Equal(t, "ffmpeg", f.ffmpegPath)
	})

	t.Run("custom path", func(t *testing.T) {
		f := NewFFmpeg("/usr/local/bin/ffmpeg")
		assert.Equal(t, "/usr/local/bin/ffmpeg", f.ffmpegPath)
	})
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		want  []string
	}{
		{
			name: "full compression attributes",
			attrs: Attributes{
				Format:       "mp4",
				VideoCodec:   "libx264",
				VideoProfile: "baseline",
				VideoBitRate: 160000,
				FrameRate:    15,
				Width:        640,
				Height:       360,
				AudioCodec:   "aac",
				AudioBitRate: 64000,
				Channels:     2,
				SampleRate:   44100,
			},
			want: []string{
				"-y", "-i", "in.mp4",
				"-c:v", "libx264",
				"-profile:v", "baseline",
				"-b:v", "160000",
				"-r", "15",
				"-s", "640x360",
				"-c:a", "aac",
				"-b:a", "64000",
				"-ac", "2",
				"-ar", "44100",
				"-f", "mp4",
				"out.mp4",
			},
		},
		{
			name:  "container-only conversion",
			attrs: Attributes{Format: "mp4"},
			want:  []string{"-y", "-i", "in.mp4", "-f", "mp4", "out.mp4"},
		},
		{
			name:  "mkv maps to the matroska muxer",
			attrs: Attributes{Format: "mkv"},
			want:  []string{"-y", "-i", "in.mp4", "-f", "matroska", "out.mp4"},
		},
		{
			name:  "wmv maps to the asf muxer",
			attrs: Attributes{Format: "wmv"},
			want:  []string{"-y", "-i", "in.mp4", "-f", "asf", "out.mp4"},
		},
		{
			name:  "partial attributes omit unset flags",
			attrs: Attributes{Format: "avi", VideoBitRate: 100000, Width: 320},
			want:  []string{"-y", "-i", "in.mp4", "-b:v", "100000", "-f", "avi", "out.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildArgs("in.mp4", "out.mp4", tt.attrs))
		})
	}
}

func TestExecError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &ExecError{
		Args:   []string{"-y", "-i", "in.mp4", "out.mp4"},
		Stderr: "Invalid data found when processing input",
		Err:    cause,
	}

	assert.Contains(t, err.Error(), "Invalid data found")
	assert.ErrorIs(t, err, cause)
}

// skipIfNoFFmpeg skips the test if ffmpeg is not available.
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
}

// createTestVideo creates a short test video using ffmpeg's lavfi source.
func createTestVideo(t *testing.T, path string, duration float64) {
	t.Helper()

	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=green:s=128x72:d=%.1f", duration),
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=44100:cl=stereo:d=%.1f", duration),
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-c:a", "aac",
		"-shortest",
		path,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to create test video: %v\noutput: %s", err, output)
	}
}

func TestEncode_FFmpeg(t *testing.T) {
	skipIfNoFFmpeg(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.mp4")
	dst := filepath.Join(tmpDir, "dst.mkv")
	createTestVideo(t, src, 1.0)

	f := NewFFmpeg("")
	err := f.Encode(context.Background(), src, dst, Attributes{
		Format:       "mkv",
		VideoCodec:   "libx264",
		VideoBitRate: 160000,
		FrameRate:    15,
		Width:        64,
		Height:       36,
		AudioCodec:   "aac",
		AudioBitRate: 64000,
		Channels:     2,
		SampleRate:   44100,
	})
	require.NoError(t, err)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestEncode_FFmpeg_Failure(t *testing.T) {
	skipIfNoFFmpeg(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "garbage.mp4")
	require.NoError(t, os.WriteFile(src, []byte("not a video"), 0600))

	f := NewFFmpeg("")
	err := f.Encode(context.Background(), src, filepath.Join(tmpDir, "out.mp4"), Attributes{Format: "mp4"})

	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.NotEmpty(t, execErr.Stderr)
}

func TestDuration_FFmpeg(t *testing.T) {
	skipIfNoFFmpeg(t)

	src := filepath.Join(t.TempDir(), "src.mp4")
	createTestVideo(t, src, 2.0)

	f := NewFFmpeg("")
	d, err := f.Duration(context.Background(), src)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 0.5)
}
