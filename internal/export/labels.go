package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadTwin/internal/twin"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each container label's QR code.
type LabelInfo struct {
	ContainerID   string  `json:"container"`
	Type          string  `json:"type"`
	Destination   string  `json:"destination"`
	Boxes         int     `json:"boxes"`
	Placed        int     `json:"placed"`
	Omitted       int     `json:"omitted"`
	VolumeM3      float64 `json:"volume_m3"`
	WeightKg      float64 `json:"weight_kg"`
	OccupancyPct  float64 `json:"occupancy_pct"`
	ContainerSize string  `json:"size"`
}

// Door placards on A4 sheets of 99.1 x 67.7 mm labels, two across and four
// down (Avery L7165 layout).
const (
	placardTop     = 13.1
	placardLeft    = 4.65
	placardGapX    = 2.5
	placardW       = 99.1
	placardH       = 67.7
	placardCols    = 2
	placardRows    = 4
	placardPerPage = placardCols * placardRows
	placardQR      = 42.0
	placardPad     = 4.0
)

// placardOrigin returns the top-left corner of the i-th placard on its page
// and whether a new page starts there.
func placardOrigin(i int) (x, y float64, newPage bool) {
	slot := i % placardPerPage
	col, row := slot%placardCols, slot/placardCols
	x = placardLeft + float64(col)*(placardW+placardGapX)
	y = placardTop + float64(row)*placardH
	return x, y, slot == 0
}

// ExportLabels writes one QR door placard per container. The QR code holds
// the LabelInfo as JSON so the load can be checked at the yard without the
// full report.
func ExportLabels(path string, twins []twin.Twin) error {
	if len(twins) == 0 {
		return fmt.Errorf("no containers to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	for i, info := range CollectLabelInfos(twins) {
		x, y, newPage := placardOrigin(i)
		if newPage {
			pdf.AddPage()
		}
		if err := drawPlacard(pdf, x, y, fmt.Sprintf("qr%d", i), info); err != nil {
			return fmt.Errorf("label for %s: %w", info.ContainerID, err)
		}
	}
	return pdf.OutputFileAndClose(path)
}

type placardLine struct {
	style string
	size  float64
	gray  int
	text  string
}

func placardLines(info LabelInfo) []placardLine {
	lines := []placardLine{
		{"B", 16, 0, info.ContainerID},
		{"", 9, 0, info.Type},
		{"B", 11, 0, "To: " + info.Destination},
		{"", 8, 90, fmt.Sprintf("%s m", info.ContainerSize)},
		{"", 8, 90, fmt.Sprintf("%d of %d boxes placed", info.Placed, info.Boxes)},
		{"", 8, 90, fmt.Sprintf("%.2f m3, %.0f kg", info.VolumeM3, info.WeightKg)},
		{"", 8, 90, fmt.Sprintf("Occupancy %.1f%%", info.OccupancyPct)},
	}
	if info.Omitted > 0 {
		lines = append(lines, placardLine{"I", 8, -1, fmt.Sprintf("%d omitted from load plan", info.Omitted)})
	}
	return lines
}

func drawPlacard(pdf *fpdf.Fpdf, x, y float64, imgName string, info LabelInfo) error {
	pdf.SetDrawColor(190, 190, 190)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, placardW, placardH, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 512)
	if err != nil {
		return fmt.Errorf("encode QR: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+placardW-placardQR-placardPad, y+(placardH-placardQR)/2,
		placardQR, placardQR, false, opts, 0, "")

	textW := placardW - placardQR - 3*placardPad
	cy := y + placardPad
	for _, l := range placardLines(info) {
		pdf.SetFont("Helvetica", l.style, l.size)
		if l.gray < 0 {
			pdf.SetTextColor(200, 0, 0)
		} else {
			pdf.SetTextColor(l.gray, l.gray, l.gray)
		}
		h := l.size * 0.45
		pdf.SetXY(x+placardPad, cy)
		pdf.CellFormat(textW, h, truncate(pdf, l.text, textW), "", 0, "L", false, 0, "")
		cy += h + 1
	}
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits within w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos summarizes each twin for its placard.
func CollectLabelInfos(twins []twin.Twin) []LabelInfo {
	labels := make([]LabelInfo, 0, len(twins))
	for _, t := range twins {
		c := t.Container()
		var weight float64
		for _, p := range t.Result.Placed {
			weight += p.Box.Weight
		}
		labels = append(labels, LabelInfo{
			ContainerID:   t.Shipment.ID,
			Type:          t.Shipment.Type,
			Destination:   t.Shipment.Destination,
			Boxes:         t.Result.InputCount(),
			Placed:        len(t.Result.Placed),
			Omitted:       t.Result.SkippedCount(),
			VolumeM3:      t.Result.UsedVolume(),
			WeightKg:      weight,
			OccupancyPct:  t.Result.Utilization(),
			ContainerSize: fmt.Sprintf("%.2fx%.2fx%.2f", c.Length, c.Height, c.Width),
		})
	}
	return labels
}
