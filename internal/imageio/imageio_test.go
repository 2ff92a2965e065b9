package imageio

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 120, G: 80, B: 40, A: 255})
	path := filepath.Join(dir, "source.png")
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestLoadDecodesDimensionsAndFormat(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 64, 48)

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, src.Width())
	assert.Equal(t, 48, src.Height())
	assert.Equal(t, "png", src.Format)
	assert.Equal(t, "source.png", src.Name())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEncodePNGRoundTrip(t *testing.T) {
	img := imaging.New(10, 7, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	data, err := Encode(img, "png")
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 10, decoded.Bounds().Dx())
	assert.Equal(t, 7, decoded.Bounds().Dy())
}

func TestEncodeAcceptsDottedAndJPEGAliases(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{A: 255})

	for _, format := range []string{".png", "jpg", "jpeg", ".bmp", "tiff", "gif"} {
		_, err := Encode(img, format)
		assert.NoError(t, err, "format %q", format)
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{A: 255})
	_, err := Encode(img, "xcf")
	assert.Error(t, err)
}
