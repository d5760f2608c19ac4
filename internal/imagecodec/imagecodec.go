// Package imagecodec wraps image decoding, resizing, and encoding behind
// extension-keyed helpers. It handles PNG, JPEG, GIF, BMP, and TIFF via
// the imaging library and WEBP via a dedicated codec.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned when an extension has no registered codec.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Decode reads an image from r, trying the standard codecs first and
// falling back to WEBP.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	if wimg, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
		return wimg, nil
	}

	return nil, fmt.Errorf("decode image: %w", err)
}

// Stretch resizes img to exactly width x height, ignoring aspect ratio.
func Stretch(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Thumbnail scales and crops img to fill exactly width x height,
// preserving aspect ratio.
func Thumbnail(img image.Image, width, height int) image.Image {
	return imaging.Thumbnail(img, width, height, imaging.Lanczos)
}

// Encode writes img to w in the format identified by ext.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch ext {
	case "png":
		return imaging.Encode(w, img, imaging.PNG)
	case "jpg", "jpeg":
		return imaging.Encode(w, img, imaging.JPEG)
	case "gif":
		return imaging.Encode(w, img, imaging.GIF)
	case "bmp":
		return imaging.Encode(w, img, imaging.BMP)
	case "tiff":
		return imaging.Encode(w, img, imaging.TIFF)
	case "webp":
		return webp.Encode(w, img, &webp.Options{Quality: 90})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
