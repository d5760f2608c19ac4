package compress

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpress/avpress/internal/storage"
)

// newTestCompressor returns a Compressor backed by a throwaway temp dir
// and a stub encoder. The temp dir is returned so tests can inspect it.
func newTestCompressor(t *testing.T, enc *stubEncoder) (*Compressor, string) {
	t.Helper()

	tempDir := t.TempDir()
	store, err := storage.NewLocal(tempDir)
	require.NoError(t, err)

	if enc == nil {
		enc = &stubEncoder{}
	}
	return New(enc, store), tempDir
}

// makePNG encodes a solid-color PNG of the given dimensions.
func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (string, int, int) {
	t.Helper()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return format, cfg.Width, cfg.Height
}

func TestResizeImage(t *testing.T) {
	c, _ := newTestCompressor(t, nil)

	t.Run("resizes 640x480 PNG to 320x240", func(t *testing.T) {
		src := makePNG(t, 640, 480)

		out, err := c.ResizeImage(src, PNG, Resolution{Width: 320, Height: 240})
		require.NoError(t, err)

		format, w, h := decodeDims(t, out)
		assert.Equal(t, "png", format)
		assert.Equal(t, 320, w)
		assert.Equal(t, 240, h)
	})

	t.Run("zero resolution falls back to the image default", func(t *testing.T) {
		src := makePNG(t, 64, 64)

		out, err := c.ResizeImage(src, PNG, Resolution{})
		require.NoError(t, err)

		_, w, h := decodeDims(t, out)
		assert.Equal(t, ImageDefault.Width, w)
		assert.Equal(t, ImageDefault.Height, h)
	})

	t.Run("re-encodes into the target format", func(t *testing.T) {
		src := makePNG(t, 64, 64)

		out, err := c.ResizeImage(src, JPEG, Resolution{Width: 32, Height: 32})
		require.NoError(t, err)

		format, _, _ := decodeDims(t, out)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("invalid bytes fail with ImageError", func(t *testing.T) {
		for _, data := range [][]byte{nil, {}, []byte("definitely not an image")} {
			_, err := c.ResizeImage(data, PNG, Resolution{})
			var imgErr *ImageError
			require.ErrorAs(t, err, &imgErr)
		}
	})

	t.Run("invalid input performs no filesystem writes", func(t *testing.T) {
		c2, tempDir := newTestCompressor(t, nil)

		_, err := c2.ResizeImage([]byte("junk"), PNG, Resolution{})
		require.Error(t, err)

		entries, err := os.ReadDir(tempDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unsupported format fails with ImageError", func(t *testing.T) {
		_, err := c.ResizeImage(makePNG(t, 8, 8), ImageFormat("exe"), Resolution{})
		var imgErr *ImageError
		require.ErrorAs(t, err, &imgErr)
	})
}

func TestResizeImageStream(t *testing.T) {
	c, _ := newTestCompressor(t, nil)
	src := makePNG(t, 100, 50)

	r, err := c.ResizeImageStream(bytes.NewReader(src), PNG, Resolution{Width: 50, Height: 25})
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(r)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 25, cfg.Height)
}

func TestResizeImageFile(t *testing.T) {
	c, _ := newTestCompressor(t, nil)

	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(path, makePNG(t, 40, 40), 0600))

	out, err := c.ResizeImageFile(path, PNG, Resolution{Width: 20, Height: 20})
	require.NoError(t, err)

	_, w, h := decodeDims(t, out)
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)

	t.Run("missing file fails with ImageError", func(t *testing.T) {
		_, err := c.ResizeImageFile(filepath.Join(t.TempDir(), "missing.png"), PNG, Resolution{})
		var imgErr *ImageError
		require.ErrorAs(t, err, &imgErr)
	})
}

func TestResizeImageToPath(t *testing.T) {
	c, _ := newTestCompressor(t, nil)
	ctx := context.Background()

	t.Run("writes the file and returns its absolute path", func(t *testing.T) {
		outDir := t.TempDir()
		src := makePNG(t, 64, 64)

		msg, err := c.ResizeImageToPath(ctx, src, "photo.bmp", PNG, outDir, Resolution{Width: 16, Height: 16})
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(msg, "File is saved in path::"))
		absPath := strings.TrimPrefix(msg, "File is saved in path::")
		assert.True(t, filepath.IsAbs(absPath))
		assert.Equal(t, "photo.png", filepath.Base(absPath))

		data, err := os.ReadFile(absPath)
		require.NoError(t, err)
		_, w, h := decodeDims(t, data)
		assert.Equal(t, 16, w)
		assert.Equal(t, 16, h)
	})

	t.Run("invalid directory fails before any write", func(t *testing.T) {
		src := makePNG(t, 8, 8)

		_, err := c.ResizeImageToPath(ctx, src, "photo.png", PNG, "", Resolution{})
		require.ErrorIs(t, err, storage.ErrInvalidPath)

		_, err = c.ResizeImageToPath(ctx, src, "photo.png", PNG, "bad\x00dir", Resolution{})
		require.ErrorIs(t, err, storage.ErrInvalidPath)
	})

	t.Run("invalid image writes nothing", func(t *testing.T) {
		outDir := t.TempDir()

		_, err := c.ResizeImageToPath(ctx, []byte("junk"), "photo.png", PNG, outDir, Resolution{})
		var imgErr *ImageError
		require.ErrorAs(t, err, &imgErr)

		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestThumbnail(t *testing.T) {
	c, _ := newTestCompressor(t, nil)
	src := makePNG(t, 200, 100)

	out, err := c.Thumbnail(src, PNG, Resolution{Width: 50, Height: 50})
	require.NoError(t, err)

	_, w, h := decodeDims(t, out)
	assert.Equal(t, 50, w)
	assert.Equal(t, 50, h)
}
