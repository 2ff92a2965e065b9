// Package export crops the configured screen regions out of a wallpaper and
// writes them to disk, and renders layout sheets for printing or sharing.
// Output files are never overwritten: name collisions are resolved with an
// incrementing suffix.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/piwi3910/WallSplit/internal/imageio"
	"github.com/piwi3910/WallSplit/internal/model"
)

// DefaultStem is the base filename used for exported crops.
const DefaultStem = "wallpaper"

// Failure records one screen that could not be exported.
type Failure struct {
	ScreenID int
	Message  string
}

// Report summarizes an export run: how many screens were written, where, and
// which ones failed. Failures keep list order.
type Report struct {
	Succeeded int
	Paths     []string
	Failures  []Failure
}

// Summary formats the report for display, including at most maxFailures
// failure messages. The full failure list stays available on the Report.
func (r Report) Summary(outputDir string, maxFailures int) string {
	if r.Succeeded == 0 && len(r.Failures) == 0 {
		return "Nothing to export."
	}

	var b strings.Builder
	if r.Succeeded > 0 {
		fmt.Fprintf(&b, "%d screen(s) extracted!\n\nFiles saved in:\n%s", r.Succeeded, outputDir)
	} else {
		b.WriteString("No extraction succeeded.")
	}
	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "\n\n%d error(s) occurred:", len(r.Failures))
		for i, f := range r.Failures {
			if i >= maxFailures {
				fmt.Fprintf(&b, "\n… and %d more", len(r.Failures)-maxFailures)
				break
			}
			fmt.Fprintf(&b, "\n- %s", f.Message)
		}
	}
	return b.String()
}

// ExportCrops crops every screen's region from the source image and writes
// each crop to outputDir as "{stem}_screen_{ratioW}-{ratioH}.{format}",
// preserving the source format. Screens are processed in list order; a
// failing screen is recorded and skipped without aborting the batch. Neither
// the image nor the screen list is mutated.
func ExportCrops(src *imageio.SourceImage, screens []*model.ScreenConfig, outputDir, stem string) Report {
	var report Report
	if stem == "" {
		stem = DefaultStem
	}

	imgW, imgH := src.Width(), src.Height()
	for _, sc := range screens {
		if sc.X < 0 || sc.Y < 0 || sc.X+sc.Width > imgW || sc.Y+sc.Height > imgH {
			report.Failures = append(report.Failures, Failure{
				ScreenID: sc.ID,
				Message:  fmt.Sprintf("screen %d exceeds image boundaries", sc.ID+1),
			})
			continue
		}

		cropped := imaging.Crop(src.Image, sc.Box())
		data, err := imageio.Encode(cropped, src.Format)
		if err != nil {
			report.Failures = append(report.Failures, Failure{
				ScreenID: sc.ID,
				Message:  fmt.Sprintf("screen %d: %v", sc.ID+1, err),
			})
			continue
		}

		name := fmt.Sprintf("%s_screen_%d-%d.%s", stem, sc.RatioW, sc.RatioH, src.Format)
		path, err := writeUnique(filepath.Join(outputDir, name), data)
		if err != nil {
			report.Failures = append(report.Failures, Failure{
				ScreenID: sc.ID,
				Message:  fmt.Sprintf("screen %d: %v", sc.ID+1, err),
			})
			continue
		}

		report.Succeeded++
		report.Paths = append(report.Paths, path)
	}
	return report
}

// UniqueFilename returns path unchanged if nothing exists there, otherwise
// the first free variant with "_2", "_3", … inserted before the extension.
func UniqueFilename(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for counter := 2; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", base, counter, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeUnique writes data to the first free variant of path. The file is
// created with O_EXCL so a concurrent writer can never be overwritten; on
// collision the next candidate is tried. A failed write removes the partial
// file.
func writeUnique(path string, data []byte) (string, error) {
	for {
		target := UniqueFilename(path)
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(target)
			return "", err
		}
		if err := f.Close(); err != nil {
			os.Remove(target)
			return "", err
		}
		return target, nil
	}
}
