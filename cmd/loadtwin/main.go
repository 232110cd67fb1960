// LoadTwin - Container Load Digital Twin
//
// A cross-platform desktop viewer that turns the manifest returned by the
// container optimization service into colour-coded box placements, with
// packing list, PDF, label, DXF and chart exports.
//
// Build:
//   go build -o loadtwin ./cmd/loadtwin
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o loadtwin.exe ./cmd/loadtwin
//   GOOS=darwin  GOARCH=amd64 go build -o loadtwin-darwin ./cmd/loadtwin
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/LoadTwin/internal/logging"
	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/project"
	"github.com/piwi3910/LoadTwin/internal/ui"
)

func main() {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		cfg = model.DefaultAppConfig()
	}
	log := logging.New(os.Stderr, cfg.LogLevel, true)
	if err != nil {
		log.Warn().Err(err).Msg("using default settings")
	}

	application := app.NewWithID("com.piwi3910.loadtwin")
	window := application.NewWindow("LoadTwin — Container Load Digital Twin")

	appUI := ui.NewApp(window, cfg, log)
	application.Settings().SetTheme(appUI.Theme())
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()

	if len(os.Args) > 1 {
		appUI.OpenManifest(os.Args[1])
	}

	window.ShowAndRun()
}
