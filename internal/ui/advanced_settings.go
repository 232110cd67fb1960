package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadTwin/internal/engine"
	"github.com/piwi3910/LoadTwin/internal/model"
)

var placementModeOptions = []string{
	string(model.PlacementShelf),
	string(model.PlacementUpstream),
	string(model.PlacementAuto),
}

// showAdvancedSettingsDialog opens the placement and viewer settings along
// with a what-if comparison of every strategy for the selected container.
func (a *App) showAdvancedSettingsDialog() {
	cfg := a.config

	// --- Placement ---
	modeSelect := widget.NewSelect(placementModeOptions, func(selected string) {
		if mode, err := model.ParsePlacementMode(selected); err == nil {
			cfg.PlacementMode = mode
		}
	})
	modeSelect.SetSelected(string(cfg.PlacementMode))

	placementSection := widget.NewCard("Placement",
		"shelf packs in manifest order; upstream trusts service coordinates; auto picks upstream when every box has one",
		container.NewGridWithColumns(2,
			widget.NewLabel("Placement Mode"), modeSelect,
		))

	// --- Viewer ---
	viewerSection := widget.NewCard("Viewer",
		"How placed boxes are drawn",
		container.NewGridWithColumns(2,
			widget.NewLabel("Mesh Gap (m)"), boundFloat(&cfg.MeshGap),
			widget.NewLabel("Animation Stagger (ms, 0=off)"), boundInt(&cfg.AnimationStagger),
		))

	applyBtn := widget.NewButton("Apply", func() {
		if a.manifest != nil && cfg.PlacementMode != a.config.PlacementMode {
			a.undo.Push(a.currentSnapshot("Placement Mode"))
		}
		a.applyConfig(cfg)
		if err := a.saveConfig(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
		}
	})
	applyBtn.Importance = widget.HighImportance

	content := container.NewVScroll(container.NewVBox(
		placementSection,
		viewerSection,
		a.buildComparisonCard(cfg.PlacementMode),
		applyBtn,
	))

	d := dialog.NewCustom("Placement & Viewer", "Close", content, a.window)
	d.Resize(fyne.NewSize(650, 600))
	d.Show()
}

// buildComparisonCard runs every strategy over the selected container and
// tabulates the outcome.
func (a *App) buildComparisonCard(mode model.PlacementMode) fyne.CanvasObject {
	if a.session == nil {
		return widget.NewCard("Strategy Comparison", "", widget.NewLabel("Load a manifest to compare strategies."))
	}
	t, ok := a.session.Selected()
	if !ok {
		return widget.NewCard("Strategy Comparison", "", widget.NewLabel("Select a container to compare strategies."))
	}

	results := engine.CompareStrategies(t.Container(), t.Shipment.BoxSpecs(), engine.DefaultStrategies(mode))
	best, _ := engine.Best(results)

	grid := container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Strategy", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Placed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Omitted", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Occupancy", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, r := range results {
		name := widget.NewLabel(r.Strategy)
		if r.Strategy == best.Strategy {
			name.TextStyle = fyne.TextStyle{Bold: true}
			name.Importance = widget.SuccessImportance
		}
		grid.Add(name)
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", r.Placed)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", r.Skipped)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", r.Utilization)))
	}

	return widget.NewCard("Strategy Comparison", t.Shipment.ID+" "+t.Shipment.Type, grid)
}
