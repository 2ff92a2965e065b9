package model

import "image/color"

// Screen colors — cycle through these for visual distinction. The color is
// always derived from the screen's current (post-compaction) ID, never
// stored, so deleting a screen cannot leave stale colors behind.
var screenColors = []color.NRGBA{
	{R: 0xCC, G: 0x97, B: 0x09, A: 0xFF}, // amber
	{R: 0xC7, G: 0x44, B: 0x05, A: 0xFF}, // burnt orange
	{R: 0xCC, G: 0x00, B: 0x58, A: 0xFF}, // magenta
	{R: 0x69, G: 0x2E, B: 0xCC, A: 0xFF}, // violet
	{R: 0x2F, G: 0x6E, B: 0xCC, A: 0xFF}, // blue
	{R: 0x08, G: 0x0E, B: 0x24, A: 0xFF}, // midnight
}

// ColorForID returns the display color for a screen ID.
func ColorForID(id int) color.NRGBA {
	if id < 0 {
		id = 0
	}
	return screenColors[id%len(screenColors)]
}
