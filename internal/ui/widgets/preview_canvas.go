package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WallSplit/internal/imageio"
	"github.com/piwi3910/WallSplit/internal/model"
	"github.com/piwi3910/WallSplit/internal/preview"
)

// PreviewCanvas renders the loaded wallpaper with every screen rectangle
// drawn on top, scaled to fit the available area.
type PreviewCanvas struct {
	widget.BaseWidget
	source    *imageio.SourceImage
	screens   []*model.ScreenConfig
	maxWidth  float32
	maxHeight float32
}

func NewPreviewCanvas(source *imageio.SourceImage, screens []*model.ScreenConfig, maxW, maxH float32) *PreviewCanvas {
	pc := &PreviewCanvas{
		source:    source,
		screens:   screens,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetScreens replaces the screen list and redraws.
func (pc *PreviewCanvas) SetScreens(screens []*model.ScreenConfig) {
	pc.screens = screens
	pc.Refresh()
}

func (pc *PreviewCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPreviewCanvasRenderer(pc)
}

type previewCanvasRenderer struct {
	pc      *PreviewCanvas
	objects []fyne.CanvasObject
}

func newPreviewCanvasRenderer(pc *PreviewCanvas) *previewCanvasRenderer {
	r := &previewCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *previewCanvasRenderer) projector() preview.Projector {
	return preview.NewProjector(
		int(r.pc.maxWidth), int(r.pc.maxHeight),
		r.pc.source.Width(), r.pc.source.Height(),
	)
}

func (r *previewCanvasRenderer) rebuild() {
	r.objects = nil

	src := r.pc.source
	p := r.projector()
	scaledW, scaledH := p.ScaledSize(src.Width(), src.Height())

	// Wallpaper image, centered
	img := canvas.NewImageFromImage(src.Image)
	img.FillMode = canvas.ImageFillContain
	img.Resize(fyne.NewSize(float32(scaledW), float32(scaledH)))
	img.Move(fyne.NewPos(float32(p.OffsetX), float32(p.OffsetY)))
	r.objects = append(r.objects, img)

	// Image border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 1
	border.Resize(fyne.NewSize(float32(scaledW), float32(scaledH)))
	border.Move(fyne.NewPos(float32(p.OffsetX), float32(p.OffsetY)))
	r.objects = append(r.objects, border)

	// Screen rectangles
	for _, sc := range r.pc.screens {
		col := model.ColorForID(sc.ID)
		x1, y1, x2, y2 := p.Project(sc)
		w := float32(x2 - x1)
		h := float32(y2 - y1)

		rect := canvas.NewRectangle(color.Transparent)
		rect.StrokeColor = col
		rect.StrokeWidth = 2
		rect.Resize(fyne.NewSize(w, h))
		rect.Move(fyne.NewPos(float32(x1), float32(y1)))
		r.objects = append(r.objects, rect)

		// Labels (only if big enough)
		if w > 60 && h > 40 {
			title := canvas.NewText(fmt.Sprintf("Screen %d", sc.ID+1), col)
			title.TextSize = 12
			title.TextStyle = fyne.TextStyle{Bold: true}
			title.Move(fyne.NewPos(float32(x1)+4, float32(y1)+2))
			r.objects = append(r.objects, title)

			detail := canvas.NewText(
				fmt.Sprintf("%s  %dx%d @ (%d, %d)", sc.RatioString(), sc.Width, sc.Height, sc.X, sc.Y),
				col,
			)
			detail.TextSize = 10
			detail.Move(fyne.NewPos(float32(x1)+4, float32(y1)+18))
			r.objects = append(r.objects, detail)
		}
	}
}

func (r *previewCanvasRenderer) Layout(size fyne.Size)        {}
func (r *previewCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *previewCanvasRenderer) Destroy()                     {}
func (r *previewCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *previewCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.pc.maxWidth, r.pc.maxHeight)
}

// RenderPreview builds the preview pane: the canvas when an image is loaded,
// a placeholder label otherwise.
func RenderPreview(source *imageio.SourceImage, screens []*model.ScreenConfig, maxW, maxH float32) fyne.CanvasObject {
	if source == nil {
		placeholder := widget.NewLabel("Load an image to start")
		placeholder.Alignment = fyne.TextAlignCenter
		return placeholder
	}
	return NewPreviewCanvas(source, screens, maxW, maxH)
}
