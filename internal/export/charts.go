package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/LoadTwin/internal/analytics"
	"github.com/piwi3910/LoadTwin/internal/twin"
)

// ChartsPageTitle is the HTML title of the analytics page.
const ChartsPageTitle = "LoadTwin Analytics"

// volumePie builds the doughnut of placed volume by cargo category.
func volumePie(sum analytics.Summary) *charts.Pie {
	data := make([]opts.PieData, 0, len(sum.ByCategory))
	for _, cv := range sum.ByCategory {
		data = append(data, opts.PieData{
			Name:      cv.Name,
			Value:     math.Round(cv.Volume*100) / 100,
			ItemStyle: &opts.ItemStyle{Color: cv.Category.Hex()},
		})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Volume by Cargo Type", Subtitle: fmt.Sprintf("%.2f m³ placed", sum.TotalVolume)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	pie.AddSeries("volume", data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return pie
}

// occupancyBar builds the bar of occupancy per container, coloured by band.
func occupancyBar(twins []twin.Twin, sum analytics.Summary) *charts.Bar {
	x := make([]string, 0, len(twins))
	y := make([]opts.BarData, 0, len(twins))
	for i, t := range twins {
		occ := sum.Occupancy[i]
		x = append(x, t.Shipment.ID)
		y = append(y, opts.BarData{
			Name:      t.Shipment.Type,
			Value:     math.Round(occ*10) / 10,
			ItemStyle: &opts.ItemStyle{Color: analytics.Band(occ).Hex()},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Occupancy per Container",
			Subtitle: fmt.Sprintf("mean %.1f%%, std %.1f", sum.MeanOccupancy, sum.StdOccupancy),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: 0, Max: 100}),
	)
	bar.SetXAxis(x).
		AddSeries("occupancy", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// RenderCharts writes the analytics HTML page for the twins to w.
func RenderCharts(w io.Writer, twins []twin.Twin) error {
	if len(twins) == 0 {
		return fmt.Errorf("no containers to chart")
	}
	sum := analytics.Summarize(twins)

	page := components.NewPage()
	page.SetPageTitle(ChartsPageTitle)
	page.AddCharts(volumePie(sum), occupancyBar(twins, sum))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ExportCharts writes the analytics HTML page to path.
func ExportCharts(path string, twins []twin.Twin) error {
	var buf bytes.Buffer
	if err := RenderCharts(&buf, twins); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
