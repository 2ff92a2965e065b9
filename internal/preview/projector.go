// Package preview maps image-space screen rectangles into viewport
// coordinates for display. It is a pure coordinate transform with no I/O.
package preview

import (
	"math"

	"github.com/piwi3910/WallSplit/internal/model"
)

// fitMargin leaves 10% of the viewport free around the scaled image.
const fitMargin = 0.9

// Projector holds the scale and centering offsets that place a source image
// inside a viewport. It is computed once per image load or viewport resize;
// screen rectangle changes alone never require a new projector.
type Projector struct {
	Scale   float64
	OffsetX int
	OffsetY int
}

// NewProjector computes the projection for an image of imageW x imageH
// displayed in a viewport of viewportW x viewportH: the scale fits the whole
// image with a 10% margin and the offsets center it.
func NewProjector(viewportW, viewportH, imageW, imageH int) Projector {
	if viewportW <= 0 || viewportH <= 0 || imageW <= 0 || imageH <= 0 {
		return Projector{Scale: 1}
	}
	scaleW := float64(viewportW) / float64(imageW)
	scaleH := float64(viewportH) / float64(imageH)
	scale := math.Min(scaleW, scaleH) * fitMargin

	scaledW := int(float64(imageW) * scale)
	scaledH := int(float64(imageH) * scale)
	return Projector{
		Scale:   scale,
		OffsetX: (viewportW - scaledW) / 2,
		OffsetY: (viewportH - scaledH) / 2,
	}
}

// ScaledSize returns the pixel size of an image after projection.
func (p Projector) ScaledSize(imageW, imageH int) (int, int) {
	return int(float64(imageW) * p.Scale), int(float64(imageH) * p.Scale)
}

// Project maps a screen's image-space rectangle into viewport coordinates.
func (p Projector) Project(s *model.ScreenConfig) (x1, y1, x2, y2 int) {
	x1 = int(math.Floor(float64(s.X)*p.Scale)) + p.OffsetX
	y1 = int(math.Floor(float64(s.Y)*p.Scale)) + p.OffsetY
	x2 = int(math.Floor(float64(s.X+s.Width)*p.Scale)) + p.OffsetX
	y2 = int(math.Floor(float64(s.Y+s.Height)*p.Scale)) + p.OffsetY
	return x1, y1, x2, y2
}
