package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDefaultAttributes(t *testing.T) {
	attrs := defaultAttributes(MP4)

	assert.Equal(t, "mp4", attrs.Format)
	assert.Equal(t, "libx264", attrs.VideoCodec)
	assert.Equal(t, "baseline", attrs.VideoProfile)
	assert.Equal(t, 160_000, attrs.VideoBitRate)
	assert.Equal(t, 15, attrs.FrameRate)
	assert.Equal(t, VideoDefault.Width, attrs.Width)
	assert.Equal(t, VideoDefault.Height, attrs.Height)
	assert.Equal(t, "aac", attrs.AudioCodec)
	assert.Equal(t, 64_000, attrs.AudioBitRate)
	assert.Equal(t, 2, attrs.Channels)
	assert.Equal(t, 44_100, attrs.SampleRate)
}

func TestConversionAttributes(t *testing.T) {
	attrs := conversionAttributes(MKV)

	assert.Equal(t, "mkv", attrs.Format)
	assert.Empty(t, attrs.VideoCodec)
	assert.Zero(t, attrs.VideoBitRate)
	assert.Zero(t, attrs.FrameRate)
	assert.Empty(t, attrs.AudioCodec)
	assert.Zero(t, attrs.Channels)
}

func TestMerge(t *testing.T) {
	t.Run("nil overrides keep defaults", func(t *testing.T) {
		merged := merge(defaultAttributes(MP4), nil, nil)
		assert.Equal(t, defaultAttributes(MP4), merged)
	})

	t.Run("bitrate-only override leaves the rest intact", func(t *testing.T) {
		merged := merge(defaultAttributes(MP4), nil, &VideoAttributes{BitRate: intPtr(500_000)})

		assert.Equal(t, 500_000, merged.VideoBitRate)
		assert.Equal(t, 15, merged.FrameRate)
		assert.Equal(t, 2, merged.Channels)
		assert.Equal(t, 44_100, merged.SampleRate)
		assert.Equal(t, VideoDefault.Width, merged.Width)
	})

	t.Run("merged set is always fully populated", func(t *testing.T) {
		merged := merge(defaultAttributes(MOV),
			&AudioAttributes{Channels: intPtr(1)},
			&VideoAttributes{FrameRate: intPtr(30)},
		)

		require.NotEmpty(t, merged.VideoCodec)
		require.NotEmpty(t, merged.AudioCodec)
		assert.Equal(t, 1, merged.Channels)
		assert.Equal(t, 30, merged.FrameRate)
		assert.Positive(t, merged.VideoBitRate)
		assert.Positive(t, merged.AudioBitRate)
		assert.Positive(t, merged.SampleRate)
	})

	t.Run("size override applies both dimensions", func(t *testing.T) {
		size := R480p
		merged := merge(defaultAttributes(AVI), nil, &VideoAttributes{Size: &size})

		assert.Equal(t, 854, merged.Width)
		assert.Equal(t, 480, merged.Height)
	})

	t.Run("defaults are not shared between calls", func(t *testing.T) {
		first := merge(defaultAttributes(MP4), nil, &VideoAttributes{BitRate: intPtr(999)})
		second := defaultAttributes(MP4)

		assert.Equal(t, 999, first.VideoBitRate)
		assert.Equal(t, 160_000, second.VideoBitRate)
	})
}
