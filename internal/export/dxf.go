package export

import (
	"fmt"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// ContainerLayer holds the container frame in DXF exports.
const ContainerLayer = "CONTAINER"

// aciColor maps a cargo category to the nearest AutoCAD colour index.
func aciColor(c model.Category) color.ColorNumber {
	switch c {
	case model.CategoryAgricultural:
		return color.ColorNumber(3) // green
	case model.CategoryMining:
		return color.ColorNumber(8) // grey
	case model.CategoryTextile:
		return color.ColorNumber(6) // magenta
	case model.CategoryChemical:
		return color.ColorNumber(2) // yellow
	case model.CategoryFishing:
		return color.ColorNumber(4) // cyan
	default:
		return color.ColorNumber(5) // blue
	}
}

// LayerName returns the DXF layer used for a cargo category.
func LayerName(c model.Category) string {
	return "CARGO_" + c.String()
}

// cadPoint converts a point in the centred container frame to CAD
// coordinates with the container corner at the origin and Z up.
func cadPoint(c model.Container, p model.Position) [3]float64 {
	return [3]float64{p.X + c.Length/2, p.Z + c.Width/2, p.Y + c.Height/2}
}

// boxEdges returns the 12 edges of an axis-aligned box.
func boxEdges(lo, hi [3]float64) [12][2][3]float64 {
	v := [8][3]float64{
		{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], hi[1], lo[2]}, {lo[0], hi[1], lo[2]},
		{lo[0], lo[1], hi[2]}, {hi[0], lo[1], hi[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]},
	}
	pairs := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // floor
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // roof
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // uprights
	}
	var edges [12][2][3]float64
	for i, pr := range pairs {
		edges[i] = [2][3]float64{v[pr[0]], v[pr[1]]}
	}
	return edges
}

func drawBox(d *drawing.Drawing, lo, hi [3]float64) error {
	for _, e := range boxEdges(lo, hi) {
		if _, err := d.Line(e[0][0], e[0][1], e[0][2], e[1][0], e[1][1], e[1][2]); err != nil {
			return err
		}
	}
	return nil
}

// ExportDXF writes a 3D wireframe of one placement: the container frame on
// its own layer and every placed box as 12 edges on its category layer.
// Units are metres.
func ExportDXF(path string, result model.PlacementResult) error {
	c := result.Container
	if err := c.Validate(); err != nil {
		return fmt.Errorf("cannot export DXF: %w", err)
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(ContainerLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add container layer: %w", err)
	}
	lo, hi := c.Bounds()
	if err := drawBox(d, cadPoint(c, lo), cadPoint(c, hi)); err != nil {
		return fmt.Errorf("failed to draw container: %w", err)
	}
	label := fmt.Sprintf("%s %.2fx%.2fx%.2f m", c.Label, c.Length, c.Height, c.Width)
	if _, err := d.Text(label, 0, -0.5, 0, 0.25); err != nil {
		return fmt.Errorf("failed to write container label: %w", err)
	}

	layers := make(map[model.Category]bool)
	for _, p := range result.Placed {
		cat := p.Box.Kind()
		name := LayerName(cat)
		if !layers[cat] {
			if _, err := d.AddLayer(name, aciColor(cat), dxf.DefaultLineType, false); err != nil {
				return fmt.Errorf("failed to add layer %s: %w", name, err)
			}
			layers[cat] = true
		}
		if err := d.ChangeLayer(name); err != nil {
			return fmt.Errorf("failed to select layer %s: %w", name, err)
		}
		if err := drawBox(d, cadPoint(c, p.Min()), cadPoint(c, p.Max())); err != nil {
			return fmt.Errorf("failed to draw box #%d: %w", p.Index, err)
		}
	}

	return d.SaveAs(path)
}
