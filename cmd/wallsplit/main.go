// WallSplit — Wallpaper Splitter
//
// A cross-platform desktop application for cutting a single wallpaper into
// per-screen crops for multi-monitor setups.
//
// Build:
//   go build -o wallsplit ./cmd/wallsplit
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o wallsplit.exe ./cmd/wallsplit
//   GOOS=darwin  GOARCH=amd64 go build -o wallsplit-darwin ./cmd/wallsplit
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/WallSplit/internal/applog"
	"github.com/piwi3910/WallSplit/internal/project"
	"github.com/piwi3910/WallSplit/internal/ui"
)

func main() {
	applog.Setup(project.DefaultConfigDir())

	configPath := project.DefaultConfigPath()
	config, err := project.LoadAppConfig(configPath)
	if err != nil {
		applog.Printf("failed to load config, using defaults: %v", err)
	}

	application := app.NewWithID("com.piwi3910.wallsplit")
	application.Settings().SetTheme(ui.NewWallSplitTheme())

	window := application.NewWindow("WallSplit — Wallpaper Splitter")

	appUI := ui.NewApp(window, config, configPath)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 900))
	window.CenterOnScreen()

	window.ShowAndRun()
}
