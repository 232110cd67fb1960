package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/twin"
)

func cube() model.Container {
	return model.Container{Label: "Cube", Length: 2, Height: 2, Width: 2}
}

func placed(cat string, l, h, w, kg float64) model.PlacedBox {
	return model.PlacedBox{
		Box:    model.BoxSpec{Category: cat, Length: l, Height: h, Width: w, Weight: kg},
		Length: l, Height: h, Width: w,
	}
}

func TestSummarize(t *testing.T) {
	twins := []twin.Twin{
		{Result: model.PlacementResult{
			Container: cube(),
			Placed:    []model.PlacedBox{placed("MINERO", 1, 1, 1, 100)},
			Skipped:   []model.SkippedBox{{Index: 1, Reason: model.ReasonOversize}},
		}},
		{Result: model.PlacementResult{
			Container: cube(),
			Placed: []model.PlacedBox{
				placed("TEXTIL", 2, 1, 1, 50),
				placed("MINERO", 2, 1, 1, 25),
			},
		}},
	}

	s := Summarize(twins)
	assert.Equal(t, 2, s.Containers)
	assert.Equal(t, 4, s.TotalBoxes)
	assert.Equal(t, 3, s.Placed)
	assert.Equal(t, 1, s.Skipped)
	assert.InDelta(t, 5.0, s.TotalVolume, 1e-9)
	assert.InDelta(t, 175.0, s.TotalWeight, 1e-9)
	assert.InDelta(t, 75.0, s.PlacedRatio(), 1e-9)

	require.Len(t, s.Occupancy, 2)
	assert.InDelta(t, 12.5, s.Occupancy[0], 1e-9)
	assert.InDelta(t, 50.0, s.Occupancy[1], 1e-9)
	assert.InDelta(t, 31.25, s.MeanOccupancy, 1e-9)
	assert.InDelta(t, math.Sqrt(703.125), s.StdOccupancy, 1e-9)
	assert.InDelta(t, 12.5, s.MinOccupancy, 1e-9)
	assert.InDelta(t, 50.0, s.MaxOccupancy, 1e-9)

	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, model.CategoryMining, s.ByCategory[0].Category)
	assert.InDelta(t, 3.0, s.ByCategory[0].Volume, 1e-9)
	assert.Equal(t, 2, s.ByCategory[0].Boxes)
	assert.Equal(t, "Textile", s.ByCategory[1].Name)
}

func TestSummarizeSingleAndEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Containers)
	assert.Zero(t, s.MeanOccupancy)
	assert.Zero(t, s.PlacedRatio())
	assert.Empty(t, s.ByCategory)

	s = Summarize([]twin.Twin{{Result: model.PlacementResult{
		Container: cube(),
		Placed:    []model.PlacedBox{placed("", 2, 2, 2, 0)},
	}}})
	assert.InDelta(t, 100.0, s.MeanOccupancy, 1e-9)
	assert.Zero(t, s.StdOccupancy)
	require.Len(t, s.ByCategory, 1)
	assert.Equal(t, model.CategoryDefault, s.ByCategory[0].Category)
}

func TestBand(t *testing.T) {
	tests := []struct {
		occ  float64
		want OccupancyBand
	}{
		{95, BandFull},
		{90, BandGood},
		{80, BandGood},
		{75, BandLow},
		{0, BandLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Band(tt.occ), "occupancy %.1f", tt.occ)
	}
	assert.NotEqual(t, BandFull.Hex(), BandLow.Hex())
}
