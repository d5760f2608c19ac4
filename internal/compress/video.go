package compress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/avpress/avpress/internal/encoder"
)

// ReduceVideoSize transcodes data with the default compression
// attributes, targeting the requested resolution (VideoDefault when res
// is zero) and container format.
func (c *Compressor) ReduceVideoSize(ctx context.Context, data []byte, format VideoFormat, res Resolution) ([]byte, error) {
	attrs, err := compressionAttributes(format, res)
	if err != nil {
		return nil, err
	}
	return c.encode(ctx, data, attrs)
}

// ReduceVideoSizeFile reads the video at path and compresses it like
// ReduceVideoSize.
func (c *Compressor) ReduceVideoSizeFile(ctx context.Context, path string, format VideoFormat, res Resolution) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return nil, &VideoError{Err: err}
	}
	return c.ReduceVideoSize(ctx, data, format, res)
}

// ReduceVideoSizeToPath compresses data like ReduceVideoSize and
// persists the result under dir with a filename derived from name and
// the target format's extension. It returns a confirmation string
// containing the absolute path of the written file.
func (c *Compressor) ReduceVideoSizeToPath(ctx context.Context, data []byte, name string, format VideoFormat, dir string, res Resolution) (string, error) {
	out, err := c.ReduceVideoSize(ctx, data, format, res)
	if err != nil {
		return "", err
	}

	absPath, err := c.store.SaveOutput(ctx, dir, deriveFileName(name, format.Ext()), out)
	if err != nil {
		return "", err
	}

	return savedPathPrefix + absPath, nil
}

// ReduceVideoSizeFileToPath reads the video at path, compresses it, and
// persists the result under dir, deriving the output filename from the
// input's basename.
func (c *Compressor) ReduceVideoSizeFileToPath(ctx context.Context, path string, format VideoFormat, dir string, res Resolution) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return "", &VideoError{Err: err}
	}
	return c.ReduceVideoSizeToPath(ctx, data, path, format, dir, res)
}

// EncodeVideoWithAttributes transcodes data after merging the supplied
// overrides onto the default attribute set, field by field. Nil
// overrides and nil fields keep the defaults, so the effective set is
// always fully populated.
func (c *Compressor) EncodeVideoWithAttributes(ctx context.Context, data []byte, format VideoFormat, audio *AudioAttributes, video *VideoAttributes) ([]byte, error) {
	if !format.Valid() {
		return nil, &VideoError{Err: fmt.Errorf("unsupported video format %q", format)}
	}
	return c.encode(ctx, data, merge(defaultAttributes(format), audio, video))
}

// ConvertVideoFormat transcodes the container and codec only, applying
// the encoder's own defaults instead of the compression tuning.
func (c *Compressor) ConvertVideoFormat(ctx context.Context, data []byte, format VideoFormat) ([]byte, error) {
	if !format.Valid() {
		return nil, &VideoError{Err: fmt.Errorf("unsupported video format %q", format)}
	}
	return c.encode(ctx, data, conversionAttributes(format))
}

// ProbeDuration returns the duration in seconds of the video in data.
func (c *Compressor) ProbeDuration(ctx context.Context, data []byte, format VideoFormat) (float64, error) {
	src, err := c.store.SaveTemp(ctx, "probe."+format.Ext(), bytes.NewReader(data))
	if err != nil {
		return 0, &VideoError{Err: err}
	}
	defer func() { _ = c.store.CleanupTemp(ctx, []string{src}) }()

	d, err := c.enc.Duration(ctx, src)
	if err != nil {
		return 0, &VideoError{Err: err}
	}
	return d, nil
}

func compressionAttributes(format VideoFormat, res Resolution) (encoder.Attributes, error) {
	if !format.Valid() {
		return encoder.Attributes{}, &VideoError{Err: fmt.Errorf("unsupported video format %q", format)}
	}
	attrs := defaultAttributes(format)
	if !res.IsZero() {
		if !res.Valid() {
			return encoder.Attributes{}, &VideoError{Err: fmt.Errorf("invalid resolution %s", res)}
		}
		attrs.Width = res.Width
		attrs.Height = res.Height
	}
	return attrs, nil
}

// encode writes data to a temporary source file, invokes the external
// encoder against a temporary target file, and reads the result back.
// Both temp files are uniquely named per call and removed on every exit
// path; removal is best-effort.
func (c *Compressor) encode(ctx context.Context, data []byte, attrs encoder.Attributes) ([]byte, error) {
	src, err := c.store.SaveTemp(ctx, "encode-src."+attrs.Format, bytes.NewReader(data))
	if err != nil {
		return nil, &VideoError{Err: err}
	}
	temps := []string{src}
	defer func() { _ = c.store.CleanupTemp(context.WithoutCancel(ctx), temps) }()

	dst, err := c.store.SaveTemp(ctx, "encode-dst."+attrs.Format, bytes.NewReader(nil))
	if err != nil {
		return nil, &VideoError{Err: err}
	}
	temps = append(temps, dst)

	if err := c.enc.Encode(ctx, src, dst, attrs); err != nil {
		return nil, &VideoError{Err: err}
	}

	out, err := c.readTemp(ctx, dst)
	if err != nil {
		return nil, &VideoError{Err: err}
	}

	c.logger.Debug("video encoded",
		slog.String("format", attrs.Format),
		slog.Int("input_bytes", len(data)),
		slog.Int("output_bytes", len(out)),
	)

	return out, nil
}

func (c *Compressor) readTemp(ctx context.Context, path string) ([]byte, error) {
	r, err := c.store.LoadTemp(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}
