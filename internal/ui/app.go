package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WallSplit/internal/applog"
	"github.com/piwi3910/WallSplit/internal/engine"
	"github.com/piwi3910/WallSplit/internal/export"
	"github.com/piwi3910/WallSplit/internal/imageio"
	layoutimporter "github.com/piwi3910/WallSplit/internal/importer"
	"github.com/piwi3910/WallSplit/internal/model"
	"github.com/piwi3910/WallSplit/internal/project"
	"github.com/piwi3910/WallSplit/internal/ui/widgets"
)

// maxSummaryErrors caps how many per-screen failures the export result
// dialog lists in full.
const maxSummaryErrors = 3

// App holds all application state and UI references.
type App struct {
	window     fyne.Window
	session    *engine.Session
	source     *imageio.SourceImage
	config     model.AppConfig
	configPath string

	// UI references for dynamic updates
	screensContainer *fyne.Container
	previewContainer *fyne.Container
	imageInfoLabel   *widget.Label
	scaleLabel       *widget.Label
}

func NewApp(window fyne.Window, config model.AppConfig, configPath string) *App {
	session, err := engine.NewSession(config.Parameters())
	if err != nil {
		// Parameters() falls back to defaults, so this cannot happen.
		session, _ = engine.NewSession(model.DefaultParameters())
	}
	return &App{
		window:     window,
		session:    session,
		config:     config,
		configPath: configPath,
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", func() {
			a.openImage()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Layout from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Layout from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Screens...", func() {
			a.exportScreens()
		}),
		fyne.NewMenuItem("Export Layout Sheet...", func() {
			a.exportLayoutPDF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.saveConfig()
			a.window.Close()
		}),
	)

	screensMenu := fyne.NewMenu("Screens",
		fyne.NewMenuItem("Add Screen", func() {
			a.showAddScreenDialog()
		}),
		fyne.NewMenuItem("Clear All Screens", func() {
			a.session.Clear()
			a.refreshScreensList()
			a.refreshPreview()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, screensMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About WallSplit",
		"WallSplit — Wallpaper Splitter\n\n"+
			"A cross-platform desktop application for cutting a single\n"+
			"wallpaper into per-screen crops for multi-monitor setups.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	left := container.NewVScroll(container.NewVBox(
		a.buildImageSection(),
		a.buildScreensSection(),
		a.buildSettingsSection(),
	))

	a.previewContainer = container.NewStack()
	a.refreshPreview()

	split := container.NewHSplit(left, a.previewContainer)
	split.SetOffset(0.32)
	return split
}

// ─── Image Section ─────────────────────────────────────────

func (a *App) buildImageSection() fyne.CanvasObject {
	a.imageInfoLabel = widget.NewLabel("No image loaded")
	a.imageInfoLabel.Wrapping = fyne.TextWrapWord

	openBtn := widget.NewButtonWithIcon("Open Image...", theme.FolderOpenIcon(), func() {
		a.openImage()
	})

	return widget.NewCard("Wallpaper", "", container.NewVBox(
		openBtn,
		a.imageInfoLabel,
	))
}

func (a *App) refreshImageInfo() {
	if a.source == nil {
		a.imageInfoLabel.SetText("No image loaded")
		return
	}
	a.imageInfoLabel.SetText(fmt.Sprintf("%s\n%d x %d px (%s)",
		a.source.Name(), a.source.Width(), a.source.Height(),
		strings.ToUpper(a.source.Format)))
}

// ─── Screens Section ───────────────────────────────────────

func (a *App) buildScreensSection() fyne.CanvasObject {
	a.screensContainer = container.NewVBox()
	a.refreshScreensList()

	addBtn := widget.NewButtonWithIcon("Add Screen", theme.ContentAddIcon(), func() {
		a.showAddScreenDialog()
	})

	return widget.NewCard("Screens", "", container.NewVBox(
		container.NewHBox(layout.NewSpacer(), addBtn),
		a.screensContainer,
	))
}

func (a *App) refreshScreensList() {
	a.screensContainer.RemoveAll()

	if a.session.Count() == 0 {
		a.screensContainer.Add(widget.NewLabel("No screens yet. Click 'Add Screen' to begin."))
		a.screensContainer.Refresh()
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Screen", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Ratio", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Resolution", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Position", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.screensContainer.Add(header)
	a.screensContainer.Add(widget.NewSeparator())

	for _, sc := range a.session.Screens() {
		id := sc.ID // capture
		row := container.NewGridWithColumns(6,
			widget.NewLabel(fmt.Sprintf("Screen %d", sc.ID+1)),
			widget.NewLabel(sc.RatioString()),
			widget.NewLabel(fmt.Sprintf("%dx%d", sc.Width, sc.Height)),
			widget.NewLabel(fmt.Sprintf("(%d, %d)", sc.X, sc.Y)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showEditScreenDialog(id)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				if err := a.session.DeleteScreen(id); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.refreshScreensList()
				a.refreshPreview()
			}),
		)
		a.screensContainer.Add(row)
	}
	a.screensContainer.Refresh()
}

func (a *App) showAddScreenDialog() {
	ratioWEntry := widget.NewEntry()
	ratioWEntry.SetText("16")

	ratioHEntry := widget.NewEntry()
	ratioHEntry.SetText("9")

	xEntry := widget.NewEntry()
	xEntry.SetText("0")

	yEntry := widget.NewEntry()
	yEntry.SetText("0")

	form := dialog.NewForm("Add Screen", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Ratio Width", ratioWEntry),
			widget.NewFormItem("Ratio Height", ratioHEntry),
			widget.NewFormItem("X Position (px)", xEntry),
			widget.NewFormItem("Y Position (px)", yEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			rw, rh, x, y, err := parseScreenForm(ratioWEntry, ratioHEntry, xEntry, yEntry)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if _, err := a.session.AddScreenConfig(rw, rh, x, y); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshScreensList()
			a.refreshPreview()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) showEditScreenDialog(id int) {
	sc, ok := a.session.Screen(id)
	if !ok {
		return
	}

	ratioWEntry := widget.NewEntry()
	ratioWEntry.SetText(fmt.Sprintf("%d", sc.RatioW))

	ratioHEntry := widget.NewEntry()
	ratioHEntry.SetText(fmt.Sprintf("%d", sc.RatioH))

	xEntry := widget.NewEntry()
	xEntry.SetText(fmt.Sprintf("%d", sc.X))

	yEntry := widget.NewEntry()
	yEntry.SetText(fmt.Sprintf("%d", sc.Y))

	form := dialog.NewForm(fmt.Sprintf("Edit Screen %d", id+1), "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Ratio Width", ratioWEntry),
			widget.NewFormItem("Ratio Height", ratioHEntry),
			widget.NewFormItem("X Position (px)", xEntry),
			widget.NewFormItem("Y Position (px)", yEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			rw, rh, x, y, err := parseScreenForm(ratioWEntry, ratioHEntry, xEntry, yEntry)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if err := a.session.UpdateScreen(id, rw, rh, x, y); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshScreensList()
			a.refreshPreview()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func parseScreenForm(ratioW, ratioH, x, y *widget.Entry) (int, int, int, int, error) {
	rw, err := strconv.Atoi(strings.TrimSpace(ratioW.Text))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid ratio width %q", ratioW.Text)
	}
	rh, err := strconv.Atoi(strings.TrimSpace(ratioH.Text))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid ratio height %q", ratioH.Text)
	}
	px, err := strconv.Atoi(strings.TrimSpace(x.Text))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid X position %q", x.Text)
	}
	py, err := strconv.Atoi(strings.TrimSpace(y.Text))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid Y position %q", y.Text)
	}
	return rw, rh, px, py, nil
}

// ─── Settings Section ──────────────────────────────────────

func (a *App) buildSettingsSection() fyne.CanvasObject {
	params := a.session.Params()

	refWidthEntry := widget.NewEntry()
	refWidthEntry.SetText(fmt.Sprintf("%d", params.ReferenceWidth))

	refHeightEntry := widget.NewEntry()
	refHeightEntry.SetText(fmt.Sprintf("%d", params.ReferenceHeight))

	applyRef := func(string) {
		w, errW := strconv.Atoi(strings.TrimSpace(refWidthEntry.Text))
		h, errH := strconv.Atoi(strings.TrimSpace(refHeightEntry.Text))
		if errW != nil || errH != nil {
			return
		}
		if err := a.session.SetReference(w, h); err != nil {
			return
		}
		a.refreshScreensList()
		a.refreshPreview()
	}
	refWidthEntry.OnChanged = applyRef
	refHeightEntry.OnChanged = applyRef

	a.scaleLabel = widget.NewLabel(formatScale(params))

	scaleSlider := widget.NewSlider(0, 100)
	scaleSlider.Step = 1
	scaleSlider.Value = float64(params.ScalePercent)
	scaleSlider.OnChanged = func(v float64) {
		if err := a.session.SetScale(int(v)); err != nil {
			return
		}
		a.scaleLabel.SetText(formatScale(a.session.Params()))
		a.refreshScreensList()
		a.refreshPreview()
	}

	return widget.NewCard("Global Settings", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Reference Width (px)"), refWidthEntry,
			widget.NewLabel("Reference Height (px)"), refHeightEntry,
		),
		widget.NewLabel("Size Scale"),
		scaleSlider,
		a.scaleLabel,
	))
}

func formatScale(params model.GlobalParameters) string {
	return fmt.Sprintf("%d%% (x%.2f)", params.ScalePercent, params.ScaleFactor())
}

// ─── Preview ───────────────────────────────────────────────

func (a *App) refreshPreview() {
	a.previewContainer.RemoveAll()
	a.previewContainer.Add(widgets.RenderPreview(a.source, a.session.Screens(), 900, 700))
	a.previewContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) openImage() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		src, err := imageio.Load(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.source = src
		a.config.LastImageDir = filepath.Dir(path)
		applog.Printf("loaded image %s (%dx%d)", src.Name(), src.Width(), src.Height())

		a.refreshImageInfo()
		a.refreshPreview()
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedExtensions()))
	d.Show()
}

func (a *App) exportScreens() {
	if a.source == nil {
		dialog.ShowInformation("No image", "Load a wallpaper image first.", a.window)
		return
	}
	if a.session.Count() == 0 {
		dialog.ShowInformation("No screens", "Add at least one screen first.", a.window)
		return
	}

	dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
		if err != nil || list == nil {
			return
		}
		outputDir := list.Path()

		stem := strings.TrimSuffix(a.source.Name(), filepath.Ext(a.source.Name()))
		report := export.ExportCrops(a.source, a.session.Screens(), outputDir, stem)

		a.config.LastOutputDir = outputDir
		a.saveConfig()
		applog.Printf("exported %d/%d screens to %s",
			report.Succeeded, a.session.Count(), outputDir)

		if report.Succeeded == 0 && len(report.Failures) > 0 {
			dialog.ShowError(fmt.Errorf("%s", report.Summary(outputDir, maxSummaryErrors)), a.window)
			return
		}
		dialog.ShowInformation("Export Complete", report.Summary(outputDir, maxSummaryErrors), a.window)
	}, a.window)
}

func (a *App) exportLayoutPDF() {
	if a.source == nil {
		dialog.ShowInformation("No image", "Load a wallpaper image first.", a.window)
		return
	}
	if a.session.Count() == 0 {
		dialog.ShowInformation("No screens", "Add at least one screen first.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()

		err = export.ExportLayoutPDF(path, a.source.Name(),
			a.source.Width(), a.source.Height(),
			a.session.Params(), a.session.Screens())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		applog.Printf("exported layout sheet to %s", path)
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Layout sheet saved to %s", path), a.window)
	}, a.window)
	d.SetFileName("layout.pdf")
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := layoutimporter.ImportCSV(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt"}))
	d.Show()
}

func (a *App) importExcel() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := layoutimporter.ImportExcel(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx", ".xls"}))
	d.Show()
}

func (a *App) handleImportResult(result layoutimporter.ImportResult) {
	for _, w := range result.Warnings {
		applog.Printf("import warning: %s", w)
	}

	added := 0
	errs := result.Errors
	for _, spec := range result.Screens {
		if _, err := a.session.AddScreenConfig(spec.RatioW, spec.RatioH, spec.X, spec.Y); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		added++
	}

	if len(errs) > 0 {
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s",
			strings.Join(errs, "\n")), a.window)
	}

	if added > 0 {
		a.refreshScreensList()
		a.refreshPreview()

		msg := fmt.Sprintf("Successfully imported %d screens.", added)
		if len(errs) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(errs))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

// ─── Config ────────────────────────────────────────────────

func (a *App) saveConfig() {
	params := a.session.Params()
	a.config.DefaultReferenceWidth = params.ReferenceWidth
	a.config.DefaultReferenceHeight = params.ReferenceHeight
	a.config.DefaultScalePercent = params.ScalePercent

	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		applog.Printf("failed to save config: %v", err)
	}
}
