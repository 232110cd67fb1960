package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/piwi3910/LoadTwin/internal/export"
	"github.com/piwi3910/LoadTwin/internal/twin"
)

// exportFunc writes every twin of the session to path.
type exportFunc func(path string, twins []twin.Twin) error

var (
	exportPackingList exportFunc = export.ExportPackingList
	exportPDF         exportFunc = export.ExportPDF
	exportLabels      exportFunc = export.ExportLabels
	exportCharts      exportFunc = export.ExportCharts
)

// saveDialog opens a save dialog in the configured export directory.
func (a *App) saveDialog(fileName string, onPath func(path string)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		onPath(path)
	}, a.window)
	d.SetFileName(fileName)
	if a.config.ExportDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(a.config.ExportDir)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

func (a *App) exportAll(what, fileName string, fn exportFunc) {
	if a.session == nil || len(a.session.Twins) == 0 {
		dialog.ShowInformation("Nothing to export", "Load a manifest first.", a.window)
		return
	}
	twins := a.session.Twins
	a.saveDialog(fileName, func(path string) {
		if err := fn(path, twins); err != nil {
			a.log.Error().Err(err).Str("path", path).Msg("export failed")
			dialog.ShowError(fmt.Errorf("%s export failed: %w", what, err), a.window)
			return
		}
		a.log.Info().Str("path", path).Int("containers", len(twins)).Msg(what + " exported")
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to:\n%s", what, path), a.window)
	})
}

func (a *App) exportSelectedDXF() {
	if a.session == nil {
		dialog.ShowInformation("Nothing to export", "Load a manifest first.", a.window)
		return
	}
	t, ok := a.session.Selected()
	if !ok {
		dialog.ShowInformation("Nothing to export", "Select a container first.", a.window)
		return
	}
	a.saveDialog(t.Shipment.ID+".dxf", func(path string) {
		if err := export.ExportDXF(path, t.Result); err != nil {
			dialog.ShowError(fmt.Errorf("DXF export failed: %w", err), a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("DXF saved to:\n%s", path), a.window)
	})
}
