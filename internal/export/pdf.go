package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/WallSplit/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 24.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 28.0 // layout QR code size in mm
)

// layoutPayload is the data encoded into the layout QR code, enough to
// rebuild the screen arrangement elsewhere.
type layoutPayload struct {
	ReferenceWidth  int             `json:"reference_width"`
	ReferenceHeight int             `json:"reference_height"`
	ScalePercent    int             `json:"scale_percent"`
	Screens         []screenPayload `json:"screens"`
}

type screenPayload struct {
	RatioW int `json:"ratio_w"`
	RatioH int `json:"ratio_h"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// ExportLayoutPDF renders a one-page layout sheet: the wallpaper bounds with
// every screen rectangle drawn to scale, a per-screen legend, and a QR code
// encoding the layout as JSON.
func ExportLayoutPDF(path, imageName string, imageW, imageH int, params model.GlobalParameters, screens []*model.ScreenConfig) error {
	if len(screens) == 0 {
		return fmt.Errorf("no screens to export")
	}
	if imageW <= 0 || imageH <= 0 {
		return fmt.Errorf("no image loaded")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Wallpaper Layout: %s (%d x %d px)", imageName, imageW, imageH)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Parameters line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Screens: %d | Reference: %dx%d | Scale: %d%% (x%.2f)",
		len(screens), params.ReferenceWidth, params.ReferenceHeight, params.ScalePercent, params.ScaleFactor())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Drawing area, leaving room for the legend at the bottom
	drawWidth := pageWidth - marginLeft - marginRight - qrSize - 5
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/float64(imageW), drawHeight/float64(imageH))
	canvasW := float64(imageW) * scale
	canvasH := float64(imageH) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Wallpaper background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Screen rectangles
	for _, sc := range screens {
		col := model.ColorForID(sc.ID)
		sx := offsetX + float64(sc.X)*scale
		sy := offsetY + float64(sc.Y)*scale
		sw := float64(sc.Width) * scale
		sh := float64(sc.Height) * scale

		pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
		pdf.SetLineWidth(0.6)
		pdf.Rect(sx, sy, sw, sh, "D")

		if sw > 18 && sh > 10 {
			pdf.SetFont("Helvetica", "B", labelFontSize(sw, sh))
			pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
			label := fmt.Sprintf("Screen %d  %s  %dx%d", sc.ID+1, sc.RatioString(), sc.Width, sc.Height)
			pdf.SetXY(sx+1.5, sy+1.5)
			pdf.CellFormat(sw-3, 4, label, "", 0, "L", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)

	drawDimensionAnnotations(pdf, imageW, imageH, scale, offsetX, offsetY, canvasW, canvasH)
	drawScreenLegend(pdf, screens, offsetY+canvasH+5)

	if err := drawLayoutQR(pdf, params, screens); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// drawDimensionAnnotations adds pixel dimension labels outside the wallpaper
// rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, imageW, imageH int, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d px", imageW)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d px", imageH)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawScreenLegend renders a compact per-screen legend under the drawing.
func drawScreenLegend(pdf *fpdf.Fpdf, screens []*model.ScreenConfig, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Screens:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 20
	maxX := pageWidth - marginRight - qrSize - 5

	for _, sc := range screens {
		col := model.ColorForID(sc.ID)
		label := fmt.Sprintf("Screen %d: %s, %dx%d @ (%d, %d)",
			sc.ID+1, sc.RatioString(), sc.Width, sc.Height, sc.X, sc.Y)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// drawLayoutQR places a QR code with the JSON-encoded layout in the top
// right corner of the page.
func drawLayoutQR(pdf *fpdf.Fpdf, params model.GlobalParameters, screens []*model.ScreenConfig) error {
	payload := layoutPayload{
		ReferenceWidth:  params.ReferenceWidth,
		ReferenceHeight: params.ReferenceHeight,
		ScalePercent:    params.ScalePercent,
		Screens:         make([]screenPayload, 0, len(screens)),
	}
	for _, sc := range screens {
		payload.Screens = append(payload.Screens, screenPayload{
			RatioW: sc.RatioW, RatioH: sc.RatioH, X: sc.X, Y: sc.Y,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate layout QR code: %w", err)
	}

	pdf.RegisterImageOptionsReader("layout_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrX := pageWidth - marginRight - qrSize
	pdf.ImageOptions("layout_qr", qrX, drawAreaTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(qrX, drawAreaTop+qrSize+1)
	pdf.CellFormat(qrSize, 3, "Scan to rebuild layout", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// labelFontSize returns an appropriate font size based on the rectangle
// dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
