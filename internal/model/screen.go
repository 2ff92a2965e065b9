package model

import (
	"fmt"
	"image"
	"math"

	"github.com/google/uuid"
)

// GlobalParameters holds the shared settings every screen's resolution is
// derived from.
type GlobalParameters struct {
	ReferenceWidth  int `json:"reference_width"`  // px, > 0
	ReferenceHeight int `json:"reference_height"` // px, > 0
	ScalePercent    int `json:"scale_percent"`    // 0-100
}

// DefaultParameters returns the startup parameters: 2560x1440 reference at
// 50% scale (factor 1.0).
func DefaultParameters() GlobalParameters {
	return GlobalParameters{
		ReferenceWidth:  2560,
		ReferenceHeight: 1440,
		ScalePercent:    50,
	}
}

// Validate rejects non-positive reference dimensions and scale percentages
// outside [0, 100].
func (p GlobalParameters) Validate() error {
	if p.ReferenceWidth <= 0 || p.ReferenceHeight <= 0 {
		return fmt.Errorf("invalid reference resolution %dx%d: both sides must be positive", p.ReferenceWidth, p.ReferenceHeight)
	}
	if p.ScalePercent < 0 || p.ScalePercent > 100 {
		return fmt.Errorf("invalid scale %d%%: must be between 0 and 100", p.ScalePercent)
	}
	return nil
}

// ScaleFactor maps ScalePercent linearly onto a multiplier:
// 0% = x0.5, 50% = x1.0, 100% = x2.0.
func (p GlobalParameters) ScaleFactor() float64 {
	return 0.5 + float64(p.ScalePercent)/100*1.5
}

// ScreenConfig represents one target screen: its aspect ratio, its position
// within the wallpaper, and the resolution derived from GlobalParameters.
type ScreenConfig struct {
	ID     int    `json:"id"`  // dense, 0-based, reassigned on delete
	Key    string `json:"key"` // stable identity, survives ID compaction
	RatioW int    `json:"ratio_w"`
	RatioH int    `json:"ratio_h"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`  // derived
	Height int    `json:"height"` // derived
}

// NewScreenConfig creates a screen with the default 16:9 ratio at the
// image origin. The derived resolution is not computed here; callers apply
// the current GlobalParameters afterwards.
func NewScreenConfig(id int) *ScreenConfig {
	return &ScreenConfig{
		ID:     id,
		Key:    uuid.New().String()[:8],
		RatioW: 16,
		RatioH: 9,
	}
}

// RatioString returns the ratio formatted as "16:9".
func (s *ScreenConfig) RatioString() string {
	return fmt.Sprintf("%d:%d", s.RatioW, s.RatioH)
}

// Box returns the screen's crop rectangle in image space.
func (s *ScreenConfig) Box() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)
}

// ComputeResolution derives a screen resolution from an aspect ratio and the
// global parameters. The longer reference side is scaled by the scale factor
// and assigned to the screen's longer dimension; the shorter dimension
// follows from the ratio. Pure and idempotent: equal inputs always produce
// equal outputs.
func ComputeResolution(ratioW, ratioH int, params GlobalParameters) (width, height int, err error) {
	if ratioW <= 0 || ratioH <= 0 {
		return 0, 0, fmt.Errorf("invalid ratio %d:%d: both sides must be positive", ratioW, ratioH)
	}
	if err := params.Validate(); err != nil {
		return 0, 0, err
	}

	maxRefSide := params.ReferenceWidth
	if params.ReferenceHeight > maxRefSide {
		maxRefSide = params.ReferenceHeight
	}
	scaledMaxSide := float64(maxRefSide) * params.ScaleFactor()

	if ratioW >= ratioH {
		// Landscape or square: width takes the scaled side.
		width = int(math.Round(scaledMaxSide))
		height = int(math.Round(scaledMaxSide * float64(ratioH) / float64(ratioW)))
	} else {
		// Portrait: height takes the scaled side.
		height = int(math.Round(scaledMaxSide))
		width = int(math.Round(scaledMaxSide * float64(ratioW) / float64(ratioH)))
	}
	return width, height, nil
}

// ApplyResolution recomputes the derived Width/Height from the screen's own
// ratio and the given parameters. On error the screen is left untouched.
func (s *ScreenConfig) ApplyResolution(params GlobalParameters) error {
	w, h, err := ComputeResolution(s.RatioW, s.RatioH, params)
	if err != nil {
		return err
	}
	s.Width = w
	s.Height = h
	return nil
}
