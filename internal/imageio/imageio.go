// Package imageio loads wallpaper images and encodes crops back to disk
// formats. Decoding covers png, jpeg, gif, bmp, tiff, and webp; encoding
// preserves whatever format the source file used.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp decoding for imaging.Open
)

// SourceImage is an immutable decoded wallpaper. It is read-only for the
// lifetime of a session or until replaced by a new load.
type SourceImage struct {
	Image  image.Image
	Path   string
	Format string // lowercase extension without the dot, e.g. "png"
}

// Width returns the image width in pixels.
func (s *SourceImage) Width() int { return s.Image.Bounds().Dx() }

// Height returns the image height in pixels.
func (s *SourceImage) Height() int { return s.Image.Bounds().Dy() }

// Name returns the source file name without directory.
func (s *SourceImage) Name() string { return filepath.Base(s.Path) }

// SupportedExtensions lists the file extensions the loader accepts,
// dot-prefixed for use in file dialogs.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}

// Load decodes the image at path. On failure nothing is returned, so a
// caller can keep its previous image untouched.
func Load(path string) (*SourceImage, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading image %s: %w", filepath.Base(path), err)
	}
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = "png"
	}
	return &SourceImage{Image: img, Path: path, Format: format}, nil
}

// Encode renders img in the format implied by the extension and returns the
// encoded bytes. Encoding into memory first lets callers create output files
// only after the encoding is known to succeed.
func Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "webp":
		if err := webp.Encode(&buf, img, &webp.Options{Quality: 95}); err != nil {
			return nil, fmt.Errorf("encoding webp: %w", err)
		}
	default:
		f, err := imaging.FormatFromExtension(format)
		if err != nil {
			return nil, fmt.Errorf("unsupported image format %q: %w", format, err)
		}
		var opts []imaging.EncodeOption
		if f == imaging.JPEG {
			opts = append(opts, imaging.JPEGQuality(95))
		}
		if err := imaging.Encode(&buf, img, f, opts...); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", format, err)
		}
	}
	return buf.Bytes(), nil
}
