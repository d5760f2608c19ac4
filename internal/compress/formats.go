package compress

import "strings"

// ImageFormat identifies a supported image container.
type ImageFormat string

// Supported image formats.
const (
	PNG  ImageFormat = "png"
	JPEG ImageFormat = "jpeg"
	GIF  ImageFormat = "gif"
	BMP  ImageFormat = "bmp"
	TIFF ImageFormat = "tiff"
	WEBP ImageFormat = "webp"
)

// Ext returns the canonical file extension for the format, without the dot.
func (f ImageFormat) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// Valid reports whether f is a supported image format.
func (f ImageFormat) Valid() bool {
	switch f {
	case PNG, JPEG, GIF, BMP, TIFF, WEBP:
		return true
	}
	return false
}

// VideoFormat identifies a supported video container.
type VideoFormat string

// Supported video formats.
const (
	MP4 VideoFormat = "mp4"
	MKV VideoFormat = "mkv"
	FLV VideoFormat = "flv"
	MOV VideoFormat = "mov"
	AVI VideoFormat = "avi"
	WMV VideoFormat = "wmv"
)

// Ext returns the canonical file extension for the format, without the dot.
func (f VideoFormat) Ext() string {
	return string(f)
}

// Valid reports whether f is a supported video format.
func (f VideoFormat) Valid() bool {
	switch f {
	case MP4, MKV, FLV, MOV, AVI, WMV:
		return true
	}
	return false
}

// ParseImageFormat maps a user-supplied name (case variants and the
// "jpg" alias included) to an ImageFormat.
func ParseImageFormat(s string) (ImageFormat, bool) {
	switch normalize(s) {
	case "png":
		return PNG, true
	case "jpg", "jpeg":
		return JPEG, true
	case "gif":
		return GIF, true
	case "bmp":
		return BMP, true
	case "tif", "tiff":
		return TIFF, true
	case "webp":
		return WEBP, true
	}
	return "", false
}

// ParseVideoFormat maps a user-supplied name to a VideoFormat.
func ParseVideoFormat(s string) (VideoFormat, bool) {
	f := VideoFormat(normalize(s))
	if f.Valid() {
		return f, true
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "."))
}
