// Package analytics computes load-plan KPIs across the containers of a
// manifest.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/twin"
)

// CategoryVolume is the placed volume of one cargo category.
type CategoryVolume struct {
	Category model.Category `json:"category"`
	Name     string         `json:"name"`
	Volume   float64        `json:"volume"` // m³
	Boxes    int            `json:"boxes"`
}

// Summary aggregates placement figures for a set of twins.
type Summary struct {
	Containers    int              `json:"containers"`
	TotalBoxes    int              `json:"total_boxes"`
	Placed        int              `json:"placed"`
	Skipped       int              `json:"skipped"`
	TotalVolume   float64          `json:"total_volume"` // Placed volume, m³
	TotalWeight   float64          `json:"total_weight"` // Placed weight, kg
	MeanOccupancy float64          `json:"mean_occupancy"`
	StdOccupancy  float64          `json:"std_occupancy"`
	MinOccupancy  float64          `json:"min_occupancy"`
	MaxOccupancy  float64          `json:"max_occupancy"`
	Occupancy     []float64        `json:"occupancy"` // Per container, input order
	ByCategory    []CategoryVolume `json:"by_category"`
}

// Summarize walks every placement once. Occupancy is the engine's
// utilization percentage for each container.
func Summarize(twins []twin.Twin) Summary {
	s := Summary{
		Containers: len(twins),
		Occupancy:  make([]float64, 0, len(twins)),
	}

	byCat := make(map[model.Category]*CategoryVolume)
	for _, t := range twins {
		r := t.Result
		s.TotalBoxes += r.InputCount()
		s.Placed += len(r.Placed)
		s.Skipped += r.SkippedCount()
		s.Occupancy = append(s.Occupancy, r.Utilization())

		for _, p := range r.Placed {
			v := p.Volume()
			s.TotalVolume += v
			s.TotalWeight += p.Box.Weight

			k := p.Box.Kind()
			cv, ok := byCat[k]
			if !ok {
				cv = &CategoryVolume{Category: k, Name: k.String()}
				byCat[k] = cv
			}
			cv.Volume += v
			cv.Boxes++
		}
	}

	switch len(s.Occupancy) {
	case 0:
	case 1:
		s.MeanOccupancy = s.Occupancy[0]
	default:
		s.MeanOccupancy, s.StdOccupancy = stat.MeanStdDev(s.Occupancy, nil)
	}
	if len(s.Occupancy) > 0 {
		s.MinOccupancy, s.MaxOccupancy = s.Occupancy[0], s.Occupancy[0]
		for _, o := range s.Occupancy[1:] {
			if o < s.MinOccupancy {
				s.MinOccupancy = o
			}
			if o > s.MaxOccupancy {
				s.MaxOccupancy = o
			}
		}
	}

	for _, k := range model.Categories {
		if cv, ok := byCat[k]; ok {
			s.ByCategory = append(s.ByCategory, *cv)
		}
	}
	sort.SliceStable(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Volume > s.ByCategory[j].Volume
	})
	return s
}

// PlacedRatio returns placed boxes as a percentage of input boxes.
func (s Summary) PlacedRatio() float64 {
	if s.TotalBoxes == 0 {
		return 0
	}
	return float64(s.Placed) / float64(s.TotalBoxes) * 100.0
}

// OccupancyBand classifies an occupancy percentage for colour coding.
type OccupancyBand int

const (
	BandLow OccupancyBand = iota
	BandGood
	BandFull
)

// Band returns BandFull above 90%, BandGood above 75% and BandLow otherwise.
func Band(occupancy float64) OccupancyBand {
	switch {
	case occupancy > 90:
		return BandFull
	case occupancy > 75:
		return BandGood
	default:
		return BandLow
	}
}

// Hex returns the display colour of the band.
func (b OccupancyBand) Hex() string {
	switch b {
	case BandFull:
		return "#10b981"
	case BandGood:
		return "#3b82f6"
	default:
		return "#f59e0b"
	}
}
