package engine

import (
	"github.com/piwi3910/LoadTwin/internal/model"
)

// ComparisonResult holds the placement and computed statistics for a single
// strategy.
type ComparisonResult struct {
	Strategy     string
	Result       model.PlacementResult
	Placed       int
	Skipped      int
	Utilization  float64
	WastePercent float64
}

// CompareStrategies runs every strategy over the same input and returns the
// results in strategy order. This enables side-by-side comparison of
// placement modes for one container.
func CompareStrategies(c model.Container, boxes []model.BoxSpec, strategies []Strategy) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(strategies))

	for _, s := range strategies {
		result := s.Place(c, boxes)
		util := result.Utilization()

		results = append(results, ComparisonResult{
			Strategy:     s.Name(),
			Result:       result,
			Placed:       len(result.Placed),
			Skipped:      result.SkippedCount(),
			Utilization:  util,
			WastePercent: 100.0 - util,
		})
	}

	return results
}

// DefaultStrategies returns the configured strategy first, followed by the
// what-if alternatives.
func DefaultStrategies(mode model.PlacementMode) []Strategy {
	current := New(mode)
	strategies := []Strategy{current}

	for _, s := range []Strategy{Shelf{}, ShelfSorted{}, Upstream{}} {
		if s.Name() != current.Name() {
			strategies = append(strategies, s)
		}
	}
	return strategies
}

// Best returns the comparison entry that placed the most boxes, preferring
// higher utilization on ties. It returns false for an empty slice.
func Best(results []ComparisonResult) (ComparisonResult, bool) {
	if len(results) == 0 {
		return ComparisonResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Placed > best.Placed || (r.Placed == best.Placed && r.Utilization > best.Utilization+Epsilon) {
			best = r
		}
	}
	return best, true
}
