package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadTwin/internal/analytics"
)

// ─── Analytics Panel ───────────────────────────────────────

func (a *App) buildAnalyticsPanel() fyne.CanvasObject {
	a.analyticsContainer = container.NewVBox()
	a.refreshAnalytics()
	return container.NewVScroll(a.analyticsContainer)
}

func kpiCard(title, value string) fyne.CanvasObject {
	v := widget.NewLabelWithStyle(value, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return widget.NewCard("", title, v)
}

func (a *App) refreshAnalytics() {
	a.analyticsContainer.RemoveAll()

	if a.session == nil || len(a.session.Twins) == 0 {
		a.analyticsContainer.Add(widget.NewLabel("No containers to analyze."))
		return
	}

	sum := analytics.Summarize(a.session.Twins)

	a.analyticsContainer.Add(container.NewGridWithColumns(4,
		kpiCard("Containers", fmt.Sprintf("%d", sum.Containers)),
		kpiCard("Boxes placed", fmt.Sprintf("%d / %d", sum.Placed, sum.TotalBoxes)),
		kpiCard("Placed volume", fmt.Sprintf("%.2f m³", sum.TotalVolume)),
		kpiCard("Cargo weight", fmt.Sprintf("%.0f kg", sum.TotalWeight)),
	))
	a.analyticsContainer.Add(container.NewGridWithColumns(4,
		kpiCard("Mean occupancy", fmt.Sprintf("%.1f%%", sum.MeanOccupancy)),
		kpiCard("Std deviation", fmt.Sprintf("%.1f", sum.StdOccupancy)),
		kpiCard("Min occupancy", fmt.Sprintf("%.1f%%", sum.MinOccupancy)),
		kpiCard("Max occupancy", fmt.Sprintf("%.1f%%", sum.MaxOccupancy)),
	))

	// Occupancy per container, coloured by band
	bars := container.NewVBox()
	for i, t := range a.session.Twins {
		occ := sum.Occupancy[i]
		bar := widget.NewProgressBar()
		bar.Max = 100
		bar.SetValue(occ)
		chip := canvas.NewRectangle(bandColor(analytics.Band(occ)))
		chip.SetMinSize(fyne.NewSize(10, 10))
		bars.Add(container.NewBorder(nil, nil,
			container.NewHBox(chip, widget.NewLabel(t.Shipment.ID)), nil, bar))
	}
	a.analyticsContainer.Add(widget.NewCard("Occupancy per Container", "", bars))

	// Volume by cargo type
	cats := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Cargo type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Boxes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Volume", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, cv := range sum.ByCategory {
		swatch := canvas.NewRectangle(cv.Category.Color())
		swatch.SetMinSize(fyne.NewSize(12, 12))
		cats.Add(container.NewHBox(swatch, widget.NewLabel(cv.Name)))
		cats.Add(widget.NewLabel(fmt.Sprintf("%d", cv.Boxes)))
		cats.Add(widget.NewLabel(fmt.Sprintf("%.2f m³", cv.Volume)))
	}
	a.analyticsContainer.Add(widget.NewCard("Volume by Cargo Type", "", cats))
	a.analyticsContainer.Refresh()
}

func bandColor(b analytics.OccupancyBand) color.Color {
	switch b {
	case analytics.BandFull:
		return color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	case analytics.BandGood:
		return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	default:
		return color.NRGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	}
}
