package export

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

	"github.com/piwi3910/WallSplit/internal/imageio"
	"github.com/piwi3910/WallSplit/internal/model"
)

func testSource(t *testing.T, w, h int) *imageio.SourceImage {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	return &imageio.SourceImage{Image: img, Path: "/tmp/sunset.png", Format: "png"}
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestExportCropsWritesExactCrops(t *testing.T) {
	dir := t.TempDir()
	src := testSource(t, 400, 300)
	screens := []*model.ScreenConfig{
		{ID: 0, RatioW: 16, RatioH: 9, X: 10, Y: 20, Width: 160, Height: 90},
		{ID: 1, RatioW: 9, RatioH: 16, X: 200, Y: 0, Width: 90, Height: 160},
	}

	report := ExportCrops(src, screens, dir, "sunset")
	require.Empty(t, report.Failures)
	assert.Equal(t, 2, report.Succeeded)

	first := filepath.Join(dir, "sunset_screen_16-9.png")
	second := filepath.Join(dir, "sunset_screen_9-16.png")
	assert.Equal(t, []string{first, second}, report.Paths)

	img := decodeFile(t, first)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())

	img = decodeFile(t, second)
	assert.Equal(t, 90, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestExportCropsNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := testSource(t, 400, 300)
	screens := []*model.ScreenConfig{
		{ID: 0, RatioW: 16, RatioH: 9, X: 0, Y: 0, Width: 160, Height: 90},
	}

	first := ExportCrops(src, screens, dir, "sunset")
	require.Equal(t, 1, first.Succeeded)

	second := ExportCrops(src, screens, dir, "sunset")
	require.Equal(t, 1, second.Succeeded)
	assert.Equal(t, filepath.Join(dir, "sunset_screen_16-9_2.png"), second.Paths[0])

	// Both files exist, nothing was replaced.
	assert.FileExists(t, filepath.Join(dir, "sunset_screen_16-9.png"))
	assert.FileExists(t, filepath.Join(dir, "sunset_screen_16-9_2.png"))
}

func TestExportCropsSkipsOutOfBoundsScreens(t *testing.T) {
	dir := t.TempDir()
	src := testSource(t, 400, 300)
	screens := []*model.ScreenConfig{
		{ID: 0, RatioW: 16, RatioH: 9, X: 350, Y: 0, Width: 160, Height: 90},
		{ID: 1, RatioW: 1, RatioH: 1, X: 0, Y: 0, Width: 100, Height: 100},
		{ID: 2, RatioW: 4, RatioH: 3, X: -5, Y: 0, Width: 40, Height: 30},
	}

	report := ExportCrops(src, screens, dir, "sunset")
	assert.Equal(t, 1, report.Succeeded)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, 0, report.Failures[0].ScreenID)
	assert.Equal(t, 2, report.Failures[1].ScreenID)
	assert.Contains(t, report.Failures[0].Message, "exceeds image boundaries")

	assert.FileExists(t, filepath.Join(dir, "sunset_screen_1-1.png"))
}

func TestExportCropsDefaultStem(t *testing.T) {
	dir := t.TempDir()
	src := testSource(t, 200, 200)
	screens := []*model.ScreenConfig{
		{ID: 0, RatioW: 1, RatioH: 1, X: 0, Y: 0, Width: 50, Height: 50},
	}

	report := ExportCrops(src, screens, dir, "")
	require.Equal(t, 1, report.Succeeded)
	assert.Equal(t, filepath.Join(dir, "wallpaper_screen_1-1.png"), report.Paths[0])
}

func TestUniqueFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	assert.Equal(t, path, UniqueFilename(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.Equal(t, filepath.Join(dir, "out_2.png"), UniqueFilename(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "out_2.png"), []byte("x"), 0644))
	assert.Equal(t, filepath.Join(dir, "out_3.png"), UniqueFilename(path))
}

func TestReportSummary(t *testing.T) {
	r := Report{Succeeded: 3}
	s := r.Summary("/out", 3)
	assert.Contains(t, s, "3 screen(s) extracted!")
	assert.Contains(t, s, "/out")

	r = Report{Failures: []Failure{{ScreenID: 0, Message: "screen 1 exceeds image boundaries"}}}
	s = r.Summary("/out", 3)
	assert.Contains(t, s, "No extraction succeeded.")
	assert.Contains(t, s, "screen 1 exceeds image boundaries")
}

func TestReportSummaryCapsFailureList(t *testing.T) {
	r := Report{
		Succeeded: 1,
		Failures: []Failure{
			{Message: "one"}, {Message: "two"}, {Message: "three"},
			{Message: "four"}, {Message: "five"},
		},
	}
	s := r.Summary("/out", 3)
	assert.Contains(t, s, "5 error(s) occurred:")
	assert.Contains(t, s, "- three")
	assert.NotContains(t, s, "- four")
	assert.Contains(t, s, "and 2 more")
}
