package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadTwin/internal/logging"
	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/project"
)

// Form entries bound to a settings field. Unparseable or negative input
// leaves the field unchanged.

func boundText(val *string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(*val)
	e.OnChanged = func(text string) { *val = text }
	return e
}

func boundInt(val *int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(*val))
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil && v >= 0 {
			*val = v
		}
	}
	return e
}

func boundFloat(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(*val, 'f', 3, 64))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil && v >= 0 {
			*val = v
		}
	}
	return e
}

func boundSelect(options []string, val *string) *widget.Select {
	s := widget.NewSelect(options, func(selected string) { *val = selected })
	s.SetSelected(*val)
	return s
}

func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}

func (a *App) showSettingsDialog() {
	cfg := a.config

	items := []*widget.FormItem{
		widget.NewFormItem("Theme", boundSelect([]string{"system", "light", "dark"}, &cfg.Theme)),
		widget.NewFormItem("Log Level", boundSelect([]string{"debug", "info", "warn", "error"}, &cfg.LogLevel)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Optimization Service URL", boundText(&cfg.ServiceURL)),
		widget.NewFormItem("Request Timeout (s)", boundInt(&cfg.RequestTimeout)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Containers per Page", boundInt(&cfg.ItemsPerPage)),
		widget.NewFormItem("Export Directory", boundText(&cfg.ExportDir)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if cfg.ItemsPerPage == 0 {
			cfg.ItemsPerPage = model.DefaultAppConfig().ItemsPerPage
		}
		a.applyConfig(cfg)
		if err := a.saveConfig(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
		}
	}, a.window)
	d.Resize(fyne.NewSize(500, 450))
	d.Show()
}

// applyConfig makes cfg current: theme, log level, placement strategy and
// page size all take effect on the loaded manifest.
func (a *App) applyConfig(cfg model.AppConfig) {
	if cfg.Theme != a.config.Theme {
		a.theme.SetName(cfg.Theme)
		fyne.CurrentApp().Settings().SetTheme(a.theme)
	}
	a.log = a.log.Level(logging.ParseLevel(cfg.LogLevel))
	a.config = cfg
	a.setMode(cfg.PlacementMode)
	a.rebuild(false)
}

// applyBackup replaces settings and history with the backup's. The catalog
// is only replaced when the backup carries one.
func (a *App) applyBackup(b project.BackupData) error {
	if len(b.Inventory.Containers) > 0 {
		a.inventory = b.Inventory
		a.saveInventory()
	}
	a.history = b.History
	if err := project.SaveHistory(a.historyPath, a.history); err != nil {
		a.log.Warn().Err(err).Msg("cannot save imported history")
	}
	a.applyConfig(b.Config)
	a.SetupMenus()
	return a.saveConfig()
}

func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		a.saveDialog("loadtwin-backup.json", func(path string) {
			if err := project.ExportAllData(path, a.config, a.inventory, a.history); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.log.Info().Str("path", path).Msg("backup exported")
			dialog.ShowInformation("Export Complete", "Backup saved to:\n"+path, a.window)
		})
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()
			b, err := project.ImportAllData(path)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if err := a.applyBackup(b); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
				return
			}
			a.log.Info().Str("path", path).Str("created", b.CreatedAt).Msg("backup imported")
			dialog.ShowInformation("Import Complete", "Restored backup from "+b.CreatedAt+".", a.window)
		}, a.window)
		open.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
		dialog.ShowConfirm("Import Data",
			"Importing replaces your settings, container catalog and history.\n\nContinue?",
			func(ok bool) {
				if ok {
					open.Show()
				}
			}, a.window)
	})

	content := container.NewVBox(
		widget.NewLabel("Back up settings, the container catalog and the processing history,\nor restore them from an earlier backup."),
		widget.NewSeparator(),
		exportBtn,
		importBtn,
	)
	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(500, 250))
	d.Show()
}
