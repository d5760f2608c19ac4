package compress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/avpress/avpress/internal/imagecodec"
)

// ResizeImage decodes data as an image, resizes it to the target
// resolution (ImageDefault when res is zero), and re-encodes it in the
// requested format.
func (c *Compressor) ResizeImage(data []byte, format ImageFormat, res Resolution) ([]byte, error) {
	if !format.Valid() {
		return nil, &ImageError{Err: fmt.Errorf("unsupported image format %q", format)}
	}
	if res.IsZero() {
		res = ImageDefault
	}
	if !res.Valid() {
		return nil, &ImageError{Err: fmt.Errorf("invalid resolution %s", res)}
	}

	img, err := imagecodec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageError{Err: err}
	}

	resized := imagecodec.Stretch(img, res.Width, res.Height)

	var buf bytes.Buffer
	if err := imagecodec.Encode(&buf, resized, format.Ext()); err != nil {
		return nil, &ImageError{Err: err}
	}

	c.logger.Debug("image resized",
		slog.String("format", string(format)),
		slog.String("resolution", res.String()),
		slog.Int("input_bytes", len(data)),
		slog.Int("output_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// ResizeImageFile reads the image at path and resizes it like ResizeImage.
func (c *Compressor) ResizeImageFile(path string, format ImageFormat, res Resolution) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return nil, &ImageError{Err: err}
	}
	return c.ResizeImage(data, format, res)
}

// ResizeImageStream is the stream-in/stream-out variant of ResizeImage.
func (c *Compressor) ResizeImageStream(r io.Reader, format ImageFormat, res Resolution) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ImageError{Err: err}
	}
	out, err := c.ResizeImage(data, format, res)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out), nil
}

// ResizeImageToPath resizes data like ResizeImage and persists the
// result under dir with a filename derived from name and the target
// format's extension. It returns a confirmation string containing the
// absolute path of the written file.
func (c *Compressor) ResizeImageToPath(ctx context.Context, data []byte, name string, format ImageFormat, dir string, res Resolution) (string, error) {
	out, err := c.ResizeImage(data, format, res)
	if err != nil {
		return "", err
	}

	absPath, err := c.store.SaveOutput(ctx, dir, deriveFileName(name, format.Ext()), out)
	if err != nil {
		return "", err
	}

	return savedPathPrefix + absPath, nil
}

// ResizeImageFileToPath reads the image at path, resizes it, and
// persists the result under dir, deriving the output filename from the
// input's basename.
func (c *Compressor) ResizeImageFileToPath(ctx context.Context, path string, format ImageFormat, dir string, res Resolution) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return "", &ImageError{Err: err}
	}
	return c.ResizeImageToPath(ctx, data, path, format, dir, res)
}

// Thumbnail scales and crops data to fill the target resolution,
// preserving aspect ratio, and re-encodes it in the requested format.
func (c *Compressor) Thumbnail(data []byte, format ImageFormat, res Resolution) ([]byte, error) {
	if !format.Valid() {
		return nil, &ImageError{Err: fmt.Errorf("unsupported image format %q", format)}
	}
	if res.IsZero() {
		res = ImageDefault
	}
	if !res.Valid() {
		return nil, &ImageError{Err: fmt.Errorf("invalid resolution %s", res)}
	}

	img, err := imagecodec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageError{Err: err}
	}

	thumb := imagecodec.Thumbnail(img, res.Width, res.Height)

	var buf bytes.Buffer
	if err := imagecodec.Encode(&buf, thumb, format.Ext()); err != nil {
		return nil, &ImageError{Err: err}
	}
	return buf.Bytes(), nil
}
