package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/twin"
	"github.com/xuri/excelize/v2"
)

// Sheet names written by ExportPackingList.
const (
	PackingListSheet = "Packing List"
	PlacementSheet   = "Placement"
)

var packingListHeaders = []string{
	"Container", "Destination", "Product ID", "Product", "Type",
	"Quantity", "Total Weight (kg)", "Total Volume (m3)", "Rotated", "Omitted",
}

var placementHeaders = []string{
	"Container", "Index", "Product ID", "Product", "Type",
	"X", "Y", "Z", "Length", "Height", "Width", "Status",
}

// PackingLine is one product group of a container.
type PackingLine struct {
	ContainerID string
	Destination string
	ProductID   string
	Name        string
	Type        string
	Quantity    int
	WeightKg    float64
	VolumeM3    float64
	Rotated     bool
	Omitted     int
}

// boxVolume prefers the volume reported upstream and falls back to the
// effective dimensions.
func boxVolume(b model.BoxSpec) float64 {
	if b.Volume > 0 {
		return b.Volume
	}
	l, h, w := b.EffectiveDims()
	return l * h * w
}

// PackingLines groups the boxes of every container by product ID, in order
// of first appearance. Boxes without an ID are grouped by name.
func PackingLines(twins []twin.Twin) []PackingLine {
	var lines []PackingLine
	for _, t := range twins {
		type entry struct {
			box     model.BoxSpec
			index   int
			omitted bool
		}
		entries := make([]entry, 0, t.Result.InputCount())
		for _, p := range t.Result.Placed {
			entries = append(entries, entry{box: p.Box, index: p.Index})
		}
		for _, s := range t.Result.Skipped {
			entries = append(entries, entry{box: s.Box, index: s.Index, omitted: true})
		}
		byIndex := make([]*entry, t.Result.InputCount())
		for i := range entries {
			if idx := entries[i].index; idx >= 0 && idx < len(byIndex) {
				byIndex[idx] = &entries[i]
			}
		}

		groups := make(map[string]int)
		for _, e := range byIndex {
			if e == nil {
				continue
			}
			key := e.box.ID
			if key == "" {
				key = "name:" + e.box.DisplayName()
			}
			pos, ok := groups[key]
			if !ok {
				pos = len(lines)
				groups[key] = pos
				lines = append(lines, PackingLine{
					ContainerID: t.Shipment.ID,
					Destination: t.Shipment.Destination,
					ProductID:   e.box.ID,
					Name:        e.box.DisplayName(),
					Type:        e.box.Category,
				})
			}
			line := &lines[pos]
			line.Quantity++
			line.WeightKg += e.box.Weight
			line.VolumeM3 += boxVolume(e.box)
			line.Rotated = line.Rotated || e.box.Rotated
			if e.omitted {
				line.Omitted++
			}
		}
	}
	return lines
}

// ExportPackingList writes an xlsx workbook with a per-product packing list
// and a per-box placement sheet. Omitted boxes are flagged on both sheets.
func ExportPackingList(path string, twins []twin.Twin) error {
	if len(twins) == 0 {
		return fmt.Errorf("no containers to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PackingListSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(PlacementSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	warnStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#C80000"},
	})
	if err != nil {
		return fmt.Errorf("failed to create warning style: %w", err)
	}

	if err := writeHeader(f, PackingListSheet, packingListHeaders, headerStyle); err != nil {
		return err
	}
	for i, line := range PackingLines(twins) {
		row := i + 2
		values := []interface{}{
			line.ContainerID, line.Destination, line.ProductID, line.Name, line.Type,
			line.Quantity, round(line.WeightKg, 2), round(line.VolumeM3, 3), yesNo(line.Rotated), line.Omitted,
		}
		if err := setRow(f, PackingListSheet, row, values); err != nil {
			return err
		}
		if line.Omitted > 0 {
			if err := styleRow(f, PackingListSheet, row, len(values), warnStyle); err != nil {
				return err
			}
		}
	}

	if err := writeHeader(f, PlacementSheet, placementHeaders, headerStyle); err != nil {
		return err
	}
	row := 2
	for _, t := range twins {
		for _, p := range t.Result.Placed {
			values := []interface{}{
				t.Shipment.ID, p.Index + 1, p.Box.ID, p.Box.DisplayName(), p.Box.Category,
				round(p.Position.X, 4), round(p.Position.Y, 4), round(p.Position.Z, 4),
				p.Length, p.Height, p.Width, "placed",
			}
			if err := setRow(f, PlacementSheet, row, values); err != nil {
				return err
			}
			row++
		}
		for _, s := range t.Result.Skipped {
			l, h, w := s.Box.EffectiveDims()
			values := []interface{}{
				t.Shipment.ID, s.Index + 1, s.Box.ID, s.Box.DisplayName(), s.Box.Category,
				"", "", "", l, h, w, "omitted: " + string(s.Reason),
			}
			if err := setRow(f, PlacementSheet, row, values); err != nil {
				return err
			}
			if err := styleRow(f, PlacementSheet, row, len(values), warnStyle); err != nil {
				return err
			}
			row++
		}
	}

	for _, sheet := range []string{PackingListSheet, PlacementSheet} {
		if err := f.SetColWidth(sheet, "A", "L", 16); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	return f.SaveAs(path)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := setRow(f, sheet, 1, values); err != nil {
		return err
	}
	return styleRow(f, sheet, 1, len(headers), style)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
