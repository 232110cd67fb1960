package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"github.com/rs/zerolog"

	"github.com/piwi3910/LoadTwin/internal/client"
	"github.com/piwi3910/LoadTwin/internal/engine"
	"github.com/piwi3910/LoadTwin/internal/importer"
	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/project"
	"github.com/piwi3910/LoadTwin/internal/twin"
	"github.com/piwi3910/LoadTwin/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window fyne.Window
	log    zerolog.Logger

	config        model.AppConfig
	inventory     model.Inventory
	inventoryPath string
	history       []project.HistoryEntry
	historyPath   string
	theme         *LoadTwinTheme

	engine *engine.Engine
	undo   *History

	source   string
	manifest model.Manifest
	session  *twin.Session

	tabs     *container.AppTabs
	undoItem *fyne.MenuItem
	redoItem *fyne.MenuItem

	// UI references for dynamic updates
	summaryLabel       *widget.Label
	warningLabel       *widget.Label
	listContainer      *fyne.Container
	pageLabel          *widget.Label
	detailContainer    *fyne.Container
	analyticsContainer *fyne.Container
	historyContainer   *fyne.Container
	configContainer    *fyne.Container
	twinPanel          *widgets.TwinPanel
}

// NewApp creates the viewer. Persistent state (container catalog and
// processing history) is loaded from the default locations; load failures
// fall back to defaults and are logged.
func NewApp(window fyne.Window, cfg model.AppConfig, log zerolog.Logger) *App {
	a := &App{
		window:      window,
		log:         log,
		config:      cfg,
		theme:       NewLoadTwinThemeFromName(cfg.Theme),
		undo:        NewHistory(),
		historyPath: project.DefaultHistoryPath(),
	}

	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		log.Warn().Err(err).Msg("using built-in container catalog")
		inv = model.DefaultInventory()
	}
	a.inventory, a.inventoryPath = inv, path

	history, err := project.LoadHistory(a.historyPath)
	if err != nil {
		log.Warn().Err(err).Str("path", a.historyPath).Msg("cannot read processing history")
	}
	a.history = history

	a.setMode(cfg.PlacementMode)
	return a
}

// Theme returns the application theme so main can install it.
func (a *App) Theme() fyne.Theme {
	return a.theme
}

func (a *App) setMode(mode model.PlacementMode) {
	a.config.PlacementMode = mode
	a.engine = engine.NewEngine(engine.New(mode), a.log)
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recentItem := fyne.NewMenuItem("Open Recent", nil)
	var recent []*fyne.MenuItem
	for _, p := range a.config.RecentManifests {
		path := p
		recent = append(recent, fyne.NewMenuItem(path, func() {
			a.openManifestPath(path)
		}))
	}
	if len(recent) == 0 {
		empty := fyne.NewMenuItem("No recent manifests", nil)
		empty.Disabled = true
		recent = append(recent, empty)
	}
	recentItem.ChildMenu = fyne.NewMenu("", recent...)

	modeItem := fyne.NewMenuItem("Placement Mode", nil)
	var modes []*fyne.MenuItem
	for _, m := range placementModeOptions {
		mode := model.PlacementMode(m)
		item := fyne.NewMenuItem(m, func() {
			a.changeMode(mode)
			a.SetupMenus()
		})
		item.Checked = mode == a.config.PlacementMode
		modes = append(modes, item)
	}
	modeItem.ChildMenu = fyne.NewMenu("", modes...)

	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Manifest...", func() {
			a.openManifest()
		}),
		recentItem,
		fyne.NewMenuItem("Fetch from Service...", func() {
			a.showFetchDialog()
		}),
		fyne.NewMenuItem("Save Manifest...", func() {
			a.saveManifest()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Products from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Products from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showImportExportDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	a.undoItem = fyne.NewMenuItem("Undo", func() {
		a.undoLast()
	})
	a.redoItem = fyne.NewMenuItem("Redo", func() {
		a.redoLast()
	})
	a.updateUndoItems()
	editMenu := fyne.NewMenu("Edit",
		a.undoItem,
		a.redoItem,
		fyne.NewMenuItemSeparator(),
		modeItem,
		fyne.NewMenuItem("Container Catalog...", func() {
			a.showContainerCatalogDialog()
		}),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Placement & Viewer...", func() {
			a.showAdvancedSettingsDialog()
		}),
	)

	// Export Menu
	exportMenu := fyne.NewMenu("Export",
		fyne.NewMenuItem("Packing List (xlsx)...", func() {
			a.exportAll("Packing list", "packing-list.xlsx", exportPackingList)
		}),
		fyne.NewMenuItem("Load Plan (PDF)...", func() {
			a.exportAll("Load plan", "load-plan.pdf", exportPDF)
		}),
		fyne.NewMenuItem("Container Labels (PDF)...", func() {
			a.exportAll("Labels", "container-labels.pdf", exportLabels)
		}),
		fyne.NewMenuItem("Selected Container (DXF)...", func() {
			a.exportSelectedDXF()
		}),
		fyne.NewMenuItem("Analytics Charts (HTML)...", func() {
			a.exportAll("Charts", "analytics.html", exportCharts)
		}),
	)

	// View Menu
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Replay Animation", func() {
			if a.twinPanel != nil {
				a.twinPanel.Animate()
			}
		}),
		fyne.NewMenuItem("Dashboard", func() { a.tabs.SelectIndex(0) }),
		fyne.NewMenuItem("Analytics", func() { a.tabs.SelectIndex(1) }),
		fyne.NewMenuItem("History", func() { a.tabs.SelectIndex(2) }),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, exportMenu, viewMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About LoadTwin",
		"LoadTwin - Container Load Digital Twin\n\n"+
			"Visualizes optimized container loads as colour-coded\n"+
			"box placements with packing list and report exports.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	dashboardTab := container.NewTabItem("Dashboard", a.buildDashboardPanel())
	analyticsTab := container.NewTabItem("Analytics", a.buildAnalyticsPanel())
	historyTab := container.NewTabItem("History", a.buildHistoryPanel())
	configTab := container.NewTabItem("Configuration", a.buildConfigPanel())

	a.tabs = container.NewAppTabs(dashboardTab, analyticsTab, historyTab, configTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return fynetooltip.AddWindowToolTipLayer(a.tabs, a.window.Canvas())
}

// ─── Dashboard Panel ───────────────────────────────────────

func (a *App) buildDashboardPanel() fyne.CanvasObject {
	a.summaryLabel = widget.NewLabelWithStyle("No manifest loaded. Use File > Open Manifest or Fetch from Service.",
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.warningLabel = widget.NewLabel("")
	a.warningLabel.Importance = widget.DangerImportance
	a.warningLabel.Wrapping = fyne.TextWrapWord
	a.warningLabel.Hide()

	a.listContainer = container.NewVBox()
	a.pageLabel = widget.NewLabel("")
	prevBtn := newIconButtonWithTooltip(theme.NavigateBackIcon(), "Previous page", func() {
		if a.session != nil && a.session.PrevPage() {
			a.refreshList()
		}
	})
	nextBtn := newIconButtonWithTooltip(theme.NavigateNextIcon(), "Next page", func() {
		if a.session != nil && a.session.NextPage() {
			a.refreshList()
		}
	})
	pager := container.NewHBox(prevBtn, layout.NewSpacer(), a.pageLabel, layout.NewSpacer(), nextBtn)

	left := container.NewBorder(
		widget.NewLabelWithStyle("Containers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		pager, nil, nil,
		container.NewVScroll(a.listContainer),
	)

	a.detailContainer = container.NewVBox(widget.NewLabel("Select a container to see its twin."))
	right := container.NewVScroll(a.detailContainer)

	split := container.NewHSplit(left, right)
	split.Offset = 0.3

	a.refreshList()

	return container.NewBorder(
		container.NewVBox(a.summaryLabel, a.warningLabel),
		nil, nil, nil,
		split,
	)
}

func containerChipColor(cat model.ContainerCategory) color.Color {
	if cat == model.ContainerRefrigerated {
		return color.NRGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff}
	}
	return color.NRGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff}
}

func (a *App) refreshList() {
	a.listContainer.RemoveAll()

	if a.session == nil || len(a.session.Twins) == 0 {
		a.listContainer.Add(widget.NewLabel("No containers."))
		a.pageLabel.SetText("")
		return
	}

	selected, _ := a.session.Selected()
	for _, t := range a.session.PageItems() {
		tw := t
		chip := canvas.NewRectangle(containerChipColor(tw.Container().Category))
		chip.SetMinSize(fyne.NewSize(10, 28))

		title := fmt.Sprintf("%s  %s", tw.Shipment.ID, tw.Shipment.Type)
		btn := newContainerButton(title, tw.Container(), func() {
			a.session.Select(tw.Shipment.ID)
			a.refreshList()
			a.refreshDetails(true)
		})
		if tw.Shipment.ID == selected.Shipment.ID {
			btn.Importance = widget.HighImportance
		}

		info := widget.NewLabel(fmt.Sprintf("→ %s · %d boxes · %.1f%%",
			tw.Shipment.Destination, tw.Result.InputCount(), tw.Result.Utilization()))
		if tw.Result.SkippedCount() > 0 {
			info.Importance = widget.WarningImportance
		}

		a.listContainer.Add(container.NewBorder(nil, nil, chip, nil, container.NewVBox(btn, info)))
	}
	a.pageLabel.SetText(fmt.Sprintf("Page %d of %d", a.session.Page(), a.session.PageCount()))
}

func (a *App) refreshDetails(animate bool) {
	a.detailContainer.RemoveAll()
	a.twinPanel = nil

	if a.session == nil {
		a.detailContainer.Add(widget.NewLabel("Select a container to see its twin."))
		a.detailContainer.Refresh()
		return
	}
	t, ok := a.session.Selected()
	if !ok {
		a.detailContainer.Add(widget.NewLabel("Select a container to see its twin."))
		a.detailContainer.Refresh()
		return
	}

	s := t.Shipment
	details := container.NewGridWithColumns(2,
		widget.NewLabel("Products"), widget.NewLabel(fmt.Sprintf("%d", len(s.Products))),
		widget.NewLabel("Reported volume"), widget.NewLabel(fmt.Sprintf("%.2f m³", s.TotalVolumeM3)),
		widget.NewLabel("Reported weight"), widget.NewLabel(fmt.Sprintf("%.0f kg", s.TotalWeightKg)),
		widget.NewLabel("Reported utilization"), widget.NewLabel(fmt.Sprintf("%.1f%%", s.UtilizationPct)),
		widget.NewLabel("Twin occupancy"), widget.NewLabel(fmt.Sprintf("%.1f%%", t.Result.Utilization())),
	)
	a.detailContainer.Add(widget.NewCard(s.ID, s.Type+" → "+s.Destination, details))

	opts := widgets.ViewOptions{
		MeshGap: a.config.MeshGap,
		Stagger: time.Duration(a.config.AnimationStagger) * time.Millisecond,
	}
	a.twinPanel = widgets.RenderTwin(t, opts, 640)
	a.detailContainer.Add(a.twinPanel)
	a.detailContainer.Refresh()

	if animate {
		a.twinPanel.Animate()
	}
}

func (a *App) refreshSummary(warnings []string) {
	if a.session == nil {
		a.summaryLabel.SetText("No manifest loaded.")
		a.warningLabel.Hide()
		return
	}
	containers, boxes, omitted := twin.Counts(a.session.Twins)
	a.summaryLabel.SetText(fmt.Sprintf("%s: %d containers, %d boxes, %d omitted · strategy %s",
		a.session.Source, containers, boxes, omitted, a.engine.Strategy.Name()))

	if len(warnings) == 0 {
		a.warningLabel.Hide()
		return
	}
	a.warningLabel.SetText("WARNING: " + strings.Join(warnings, "; "))
	a.warningLabel.Show()
}

// ─── History Panel ─────────────────────────────────────────

func (a *App) buildHistoryPanel() fyne.CanvasObject {
	a.historyContainer = container.NewVBox()
	a.refreshHistory()

	clearBtn := widget.NewButtonWithIcon("Clear History", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Clear History", "Remove all processing history entries?", func(ok bool) {
			if !ok {
				return
			}
			a.history = nil
			if err := project.SaveHistory(a.historyPath, a.history); err != nil {
				dialog.ShowError(err, a.window)
			}
			a.refreshHistory()
		}, a.window)
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Processing History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			clearBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.historyContainer),
	)
}

func (a *App) refreshHistory() {
	a.historyContainer.RemoveAll()

	if len(a.history) == 0 {
		a.historyContainer.Add(widget.NewLabel("No manifests processed yet."))
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Date", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Source", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Containers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Boxes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Omitted", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Status", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	a.historyContainer.Add(header)
	a.historyContainer.Add(widget.NewSeparator())

	for _, e := range a.history {
		status := widget.NewLabel(e.Status)
		switch e.Status {
		case project.StatusPartial:
			status.Importance = widget.WarningImportance
		case project.StatusFailed:
			status.Importance = widget.DangerImportance
		}
		row := container.NewGridWithColumns(6,
			widget.NewLabel(e.Date.Local().Format("2006-01-02 15:04")),
			widget.NewLabel(e.Source),
			widget.NewLabel(fmt.Sprintf("%d", e.Containers)),
			widget.NewLabel(fmt.Sprintf("%d", e.Boxes)),
			widget.NewLabel(fmt.Sprintf("%d", e.Omitted)),
			status,
		)
		a.historyContainer.Add(row)
	}
	a.historyContainer.Refresh()
}

// ─── Configuration Panel ───────────────────────────────────

func (a *App) buildConfigPanel() fyne.CanvasObject {
	a.configContainer = container.NewVBox()
	a.refreshConfig()
	return container.NewVScroll(a.configContainer)
}

func (a *App) refreshConfig() {
	a.configContainer.RemoveAll()
	data, err := json.MarshalIndent(a.config, "", "  ")
	if err != nil {
		a.configContainer.Add(widget.NewLabel(err.Error()))
		return
	}
	a.configContainer.Add(widget.NewLabelWithStyle(string(data), fyne.TextAlignLeading, fyne.TextStyle{Monospace: true}))
	a.configContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

// currentSnapshot captures the loaded manifest for undo.
func (a *App) currentSnapshot(label string) Snapshot {
	return MakeSnapshot(a.source, a.manifest, a.config.PlacementMode, label)
}

// loadManifest replaces the current manifest, recording an undo step.
func (a *App) loadManifest(source string, m model.Manifest, label string) {
	if a.manifest != nil {
		a.undo.Push(a.currentSnapshot(label))
	}
	a.source = source
	a.manifest = m
	a.rebuild(true)
}

// rebuild runs the engine over the current manifest and refreshes every
// view. When record is set the run is appended to the processing history.
func (a *App) rebuild(record bool) {
	if a.manifest == nil {
		a.session = nil
		a.refreshAll(nil)
		return
	}

	twins, warnings, err := twin.Build(context.Background(), a.manifest.Shipments(), a.inventory, a.engine)
	if err != nil {
		a.log.Error().Err(err).Str("source", a.source).Msg("building twins failed")
		if record {
			entry := project.NewHistoryEntry(a.source, len(a.manifest), 0, 0)
			entry.Status = project.StatusFailed
			a.recordHistory(entry)
		}
		dialog.ShowError(err, a.window)
		return
	}

	a.session = twin.NewSession(a.source, twins, warnings, a.config.ItemsPerPage)
	if record {
		containers, boxes, omitted := twin.Counts(twins)
		a.recordHistory(project.NewHistoryEntry(a.source, containers, boxes, omitted))
	}
	a.log.Info().Str("source", a.source).Int("containers", len(twins)).Int("warnings", len(warnings)).Msg("manifest loaded")
	a.refreshAll(warnings)
}

func (a *App) recordHistory(entry project.HistoryEntry) {
	history, err := project.AppendHistory(a.historyPath, entry)
	if err != nil {
		a.log.Warn().Err(err).Msg("cannot save processing history")
		history = project.PrependHistory(a.history, entry)
	}
	a.history = history
}

// updateUndoItems names the pending undo and redo actions in the Edit menu.
func (a *App) updateUndoItems() {
	if a.undoItem == nil {
		return
	}
	a.undoItem.Label = "Undo"
	if l := a.undo.UndoLabel(); l != "" {
		a.undoItem.Label = "Undo " + l
	}
	a.undoItem.Disabled = !a.undo.CanUndo()
	a.redoItem.Label = "Redo"
	if l := a.undo.RedoLabel(); l != "" {
		a.redoItem.Label = "Redo " + l
	}
	a.redoItem.Disabled = !a.undo.CanRedo()
	if menu := a.window.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

func (a *App) refreshAll(warnings []string) {
	a.updateUndoItems()
	a.refreshSummary(warnings)
	a.refreshList()
	a.refreshDetails(true)
	a.refreshAnalytics()
	a.refreshHistory()
	a.refreshConfig()
}

func (a *App) restore(s Snapshot) {
	a.source = s.Source
	a.manifest = s.Manifest
	if s.Mode != a.config.PlacementMode {
		a.setMode(s.Mode)
		a.SetupMenus()
	}
	a.rebuild(false)
}

func (a *App) undoLast() {
	s, ok := a.undo.Undo(a.currentSnapshot(""))
	if !ok {
		return
	}
	a.restore(s)
}

func (a *App) redoLast() {
	s, ok := a.undo.Redo(a.currentSnapshot(""))
	if !ok {
		return
	}
	a.restore(s)
}

// changeMode switches the placement strategy and re-runs the manifest.
func (a *App) changeMode(mode model.PlacementMode) {
	if mode == a.config.PlacementMode {
		return
	}
	if a.manifest != nil {
		a.undo.Push(a.currentSnapshot("Placement Mode"))
	}
	a.setMode(mode)
	a.rebuild(false)
}

func (a *App) openManifest() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openManifestPath(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// OpenManifest loads a manifest file, as passed on the command line.
func (a *App) OpenManifest(path string) {
	a.openManifestPath(path)
}

func (a *App) openManifestPath(path string) {
	m, err := importer.ImportManifestJSON(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.config.AddRecentManifest(path)
	if err := a.saveConfig(); err != nil {
		a.log.Warn().Err(err).Msg("cannot save recent manifests")
	}
	a.SetupMenus()
	a.loadManifest(path, m, "Open manifest")
}

func (a *App) saveManifest() {
	if a.manifest == nil {
		dialog.ShowInformation("No manifest", "Open or fetch a manifest first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := importer.SaveManifestJSON(writer.URI().Path(), a.manifest); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("manifest.json")
	d.Show()
}

// showFetchDialog asks for product IDs and calls the optimization service
// off the UI goroutine.
func (a *App) showFetchDialog() {
	idsEntry := widget.NewMultiLineEntry()
	idsEntry.SetPlaceHolder("Product IDs, comma or newline separated")

	form := dialog.NewForm("Fetch from Service", "Fetch", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Service", widget.NewLabel(a.config.ServiceURL)),
			widget.NewFormItem("Product IDs", idsEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			a.fetch(parseIDs(idsEntry.Text))
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 300))
	form.Show()
}

// parseIDs splits a free-form list of product IDs.
func parseIDs(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';' || r == ' ' || r == '\t'
	})
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			ids = append(ids, f)
		}
	}
	return ids
}

func (a *App) fetch(ids []string) {
	timeout := time.Duration(a.config.RequestTimeout) * time.Second
	c := client.New(a.config.ServiceURL, timeout, a.log)

	progress := dialog.NewCustomWithoutButtons("Fetching", widget.NewProgressBarInfinite(), a.window)
	progress.Show()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		m, err := c.Optimize(ctx, ids, nil)

		fyne.Do(func() {
			progress.Hide()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.loadManifest(a.config.ServiceURL, m, "Fetch from service")
		})
	}()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		a.handleImportResult(path, importer.ImportCSV(path))
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		a.handleImportResult(path, importer.ImportExcel(path))
	}, a.window)
}

// handleImportResult loads an imported product sheet as a single container
// of the catalog's default type.
func (a *App) handleImportResult(path string, result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Warnings) > 0 {
		a.log.Warn().Strs("warnings", result.Warnings).Str("path", path).Msg("import warnings")
	}

	if len(result.Products) == 0 {
		return
	}
	m, err := importer.ManifestFromProducts(result.Products, a.inventory.DefaultName)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.loadManifest(path, m, "Import products")

	msg := fmt.Sprintf("Successfully imported %d products.", len(result.Products))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}
