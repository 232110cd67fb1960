// Package export provides functionality for exporting container load plans
// to various file formats.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadTwin/internal/analytics"
	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/twin"
)

// rgb represents an RGB color for fpdf calls.
type rgb struct {
	R, G, B int
}

// categoryRGB mirrors the colour scheme used by the twin view.
func categoryRGB(c model.Category) rgb {
	col := c.Color()
	return rgb{R: int(col.R), G: int(col.G), B: int(col.B)}
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	viewGap      = 10.0
	drawAreaTop  = marginTop + headerHeight + 10.0
)

// projection selects which pair of container axes a view draws.
type projection int

const (
	projectionTop  projection = iota // X across, Z down
	projectionSide                   // X across, Y up
)

func (p projection) String() string {
	if p == projectionSide {
		return "Side view"
	}
	return "Top view"
}

// ExportPDF generates a PDF load-plan report. Each container is rendered on
// its own page with top and side projections, followed by a summary page
// with overall statistics.
func ExportPDF(path string, twins []twin.Twin) error {
	if len(twins) == 0 {
		return fmt.Errorf("no containers to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, t := range twins {
		pdf.AddPage()
		renderContainerPage(pdf, t, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, twins)

	return pdf.OutputFileAndClose(path)
}

// renderContainerPage draws a single container placement on the current page.
func renderContainerPage(pdf *fpdf.Fpdf, t twin.Twin, num int) {
	c := t.Container()
	r := t.Result

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %d: %s %s (%.2f x %.2f x %.2f m) -> %s",
		num, t.Shipment.ID, t.Shipment.Type, c.Length, c.Height, c.Width, t.Shipment.Destination)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Placed: %d | Omitted: %d | Used volume: %.2f m3 | Container volume: %.2f m3 | Occupancy: %.1f%% | Strategy: %s",
		r.InputCount(), len(r.Placed), r.SkippedCount(), r.UsedVolume(), c.Volume(), r.Utilization(), r.Strategy)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if w := r.Warning(); w != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, marginTop+headerHeight+5)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, "WARNING: "+w, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := (pageHeight - drawAreaTop - marginBottom - statsHeight - viewGap) / 2

	y := drawAreaTop
	for _, proj := range []projection{projectionTop, projectionSide} {
		h := drawProjection(pdf, r, proj, marginLeft, y, drawWidth, drawHeight)
		y += h + viewGap
	}

	drawCategoryLegend(pdf, r, pageHeight-marginBottom-statsHeight+viewGap)
}

// viewExtent returns the container extent along the vertical axis of a view.
func viewExtent(c model.Container, proj projection) float64 {
	if proj == projectionSide {
		return c.Height
	}
	return c.Width
}

// viewRect maps a placed box to page coordinates relative to the view's
// top-left corner. The side view puts the floor at the bottom.
func viewRect(c model.Container, p model.PlacedBox, proj projection, scale float64) (x, y, w, h float64) {
	lo, hi := p.Min(), p.Max()
	x = (lo.X + c.Length/2) * scale
	w = p.Length * scale
	if proj == projectionSide {
		y = (c.Height/2 - hi.Y) * scale
		h = p.Height * scale
		return x, y, w, h
	}
	y = (lo.Z + c.Width/2) * scale
	h = p.Width * scale
	return x, y, w, h
}

// drawOrder sorts placed boxes so the ones nearest the viewer are painted
// last: highest boxes for the top view, front boxes for the side view.
func drawOrder(placed []model.PlacedBox, proj projection) []model.PlacedBox {
	out := append([]model.PlacedBox(nil), placed...)
	sort.SliceStable(out, func(i, j int) bool {
		if proj == projectionSide {
			return out[i].Position.Z < out[j].Position.Z
		}
		return out[i].Position.Y < out[j].Position.Y
	})
	return out
}

// drawProjection renders one orthographic view of the container and returns
// the height it used.
func drawProjection(pdf *fpdf.Fpdf, r model.PlacementResult, proj projection, x, y, maxW, maxH float64) float64 {
	c := r.Container
	extent := viewExtent(c, proj)
	scale := math.Min(maxW/c.Length, (maxH-5)/extent)

	canvasW := c.Length * scale
	canvasH := extent * scale
	offsetX := x + (maxW-canvasW)/2
	offsetY := y + 5

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(offsetX, y)
	pdf.CellFormat(40, 4, proj.String(), "", 0, "L", false, 0, "")

	// Container floor
	if c.Category == model.ContainerRefrigerated {
		pdf.SetFillColor(224, 242, 254)
	} else {
		pdf.SetFillColor(241, 245, 249)
	}
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range drawOrder(r.Placed, proj) {
		col := categoryRGB(p.Box.Kind())
		bx, by, bw, bh := viewRect(c, p, proj, scale)

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(offsetX+bx, offsetY+by, bw, bh, "FD")

		if bw > 15 && bh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(bw, bh))
			pdf.SetTextColor(255, 255, 255)
			label := p.Box.DisplayName()
			labelW := pdf.GetStringWidth(label)
			if labelW < bw-2 {
				pdf.SetXY(offsetX+bx+(bw-labelW)/2, offsetY+by+bh/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			pdf.SetTextColor(0, 0, 0)
		}
	}

	drawDimensionAnnotations(pdf, c.Length, extent, offsetX, offsetY, canvasW, canvasH)
	return canvasH + 5
}

// drawDimensionAnnotations adds length and height labels outside the view.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, across, down, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	acrossLabel := fmt.Sprintf("%.2f m", across)
	aW := pdf.GetStringWidth(acrossLabel)
	pdf.SetXY(offsetX+(canvasW-aW)/2, offsetY+canvasH+0.5)
	pdf.CellFormat(aW, 4, acrossLabel, "", 0, "C", false, 0, "")

	downLabel := fmt.Sprintf("%.2f m", down)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dW := pdf.GetStringWidth(downLabel)
	pdf.SetXY(offsetX-3-dW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dW, 4, downLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawCategoryLegend renders a swatch per cargo category present on the page.
func drawCategoryLegend(pdf *fpdf.Fpdf, r model.PlacementResult, startY float64) {
	counts := make(map[model.Category]int)
	for _, p := range r.Placed {
		counts[p.Box.Kind()]++
	}
	if len(counts) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Cargo types:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	for _, cat := range model.Categories {
		n, ok := counts[cat]
		if !ok {
			continue
		}
		col := categoryRGB(cat)
		label := fmt.Sprintf("%s (%d)", cat, n)
		labelW := pdf.GetStringWidth(label) + 6

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, twins []twin.Twin) {
	sum := analytics.Summarize(twins)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Containers", fmt.Sprintf("%d", sum.Containers)},
		{"Total Boxes", fmt.Sprintf("%d", sum.TotalBoxes)},
		{"Boxes Placed", fmt.Sprintf("%d", sum.Placed)},
		{"Boxes Omitted", fmt.Sprintf("%d", sum.Skipped)},
		{"Placed Volume", fmt.Sprintf("%.2f m3", sum.TotalVolume)},
		{"Placed Weight", fmt.Sprintf("%.0f kg", sum.TotalWeight)},
		{"Mean Occupancy", fmt.Sprintf("%.1f%% (std %.1f)", sum.MeanOccupancy, sum.StdOccupancy)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Container Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 70, 40, 45, 25, 25, 30}
	headers := []string{"ID", "Type", "Destination", "Dimensions", "Placed", "Omitted", "Occupancy"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, t := range twins {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		c := t.Container()
		xPos = marginLeft
		rowData := []string{
			t.Shipment.ID,
			t.Shipment.Type,
			t.Shipment.Destination,
			fmt.Sprintf("%.2f x %.2f x %.2f", c.Length, c.Height, c.Width),
			fmt.Sprintf("%d", len(t.Result.Placed)),
			fmt.Sprintf("%d", t.Result.SkippedCount()),
			fmt.Sprintf("%.1f%%", t.Result.Utilization()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LoadTwin - Container Load Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
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
