// Package ui provides the WallSplit application UI components.
//
// This file defines a custom compact Fyne theme for a dense layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// WallSplitTheme wraps the default Fyne theme with compact sizing overrides
// so the screen list and settings fit comfortably next to the preview.
type WallSplitTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewWallSplitTheme creates a new WallSplitTheme with the system default variant.
func NewWallSplitTheme() *WallSplitTheme {
	return &WallSplitTheme{
		base:    theme.DefaultTheme(),
		variant: 0, // system default
	}
}

// NewWallSplitThemeWithVariant creates a WallSplitTheme with a specific light/dark variant.
func NewWallSplitThemeWithVariant(variant fyne.ThemeVariant) *WallSplitTheme {
	return &WallSplitTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// SetVariant updates the theme variant (light/dark/system).
func (t *WallSplitTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
}

// Color delegates to the base theme with the stored variant.
func (t *WallSplitTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *WallSplitTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *WallSplitTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *WallSplitTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
