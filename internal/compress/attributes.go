package compress

import "github.com/avpress/avpress/internal/encoder"

// Default encoding attributes, tuned for small output size over quality.
const (
	defaultVideoCodec   = "libx264"
	defaultVideoProfile = "baseline"
	defaultVideoBitRate = 160_000
	defaultFrameRate    = 15

	defaultAudioCodec   = "aac"
	defaultAudioBitRate = 64_000
	defaultChannels     = 2
	defaultSampleRate   = 44_100
)

// AudioAttributes carries optional audio-encoding overrides.
// A nil field keeps the corresponding default.
type AudioAttributes struct {
	// BitRate is in bits per second.
	BitRate *int
	// Channels is the channel count (1 mono, 2 stereo).
	Channels *int
	// SampleRate is in Hz.
	SampleRate *int
}

// VideoAttributes carries optional video-encoding overrides.
// A nil field keeps the corresponding default.
type VideoAttributes struct {
	// BitRate is in bits per second.
	BitRate *int
	// FrameRate is in frames per second.
	FrameRate *int
	// Size is the target resolution.
	Size *Resolution
}

// defaultAttributes returns the fully populated attribute set for a
// compression encode targeting format. A fresh value is built per call;
// nothing here is shared between calls.
func defaultAttributes(format VideoFormat) encoder.Attributes {
	return encoder.Attributes{
		Format:       format.Ext(),
		VideoCodec:   defaultVideoCodec,
		VideoProfile: defaultVideoProfile,
		VideoBitRate: defaultVideoBitRate,
		FrameRate:    defaultFrameRate,
		Width:        VideoDefault.Width,
		Height:       VideoDefault.Height,
		AudioCodec:   defaultAudioCodec,
		AudioBitRate: defaultAudioBitRate,
		Channels:     defaultChannels,
		SampleRate:   defaultSampleRate,
	}
}

// conversionAttributes returns attributes for a container-only
// conversion: only the target format is set, so the encoder applies its
// own codec defaults with no compression tuning.
func conversionAttributes(format VideoFormat) encoder.Attributes {
	return encoder.Attributes{Format: format.Ext()}
}

// merge applies the caller's overrides onto attrs field by field.
// Nil override objects and nil fields leave the defaults untouched, so
// the result is always fully populated.
func merge(attrs encoder.Attributes, audio *AudioAttributes, video *VideoAttributes) encoder.Attributes {
	if video != nil {
		if video.BitRate != nil {
			attrs.VideoBitRate = *video.BitRate
		}
		if video.FrameRate != nil {
			attrs.FrameRate = *video.FrameRate
		}
		if video.Size != nil {
			attrs.Width = video.Size.Width
			attrs.Height = video.Size.Height
		}
	}
	if audio != nil {
		if audio.BitRate != nil {
			attrs.AudioBitRate = *audio.BitRate
		}
		if audio.Channels != nil {
			attrs.Channels = *audio.Channels
		}
		if audio.SampleRate != nil {
			attrs.SampleRate = *audio.SampleRate
		}
	}
	return attrs
}
