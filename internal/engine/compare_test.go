package engine

import (
	"testing"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareStrategies(t *testing.T) {
	c := mustContainer(t, 2, 1, 2)
	// In input order the big box opens a second row after the small one and
	// the last box hits the ceiling. Sorted by footprint all three fit.
	boxes := []model.BoxSpec{box("small", 1, 1, 1), box("big", 2, 1, 1), box("fill", 1, 1, 1)}

	results := CompareStrategies(c, boxes, []Strategy{Shelf{}, ShelfSorted{}})

	require.Len(t, results, 2)
	assert.Equal(t, "shelf", results[0].Strategy)
	assert.Equal(t, 2, results[0].Placed)
	assert.Equal(t, 1, results[0].Skipped)
	assert.Equal(t, 3, results[1].Placed)
	assert.InDelta(t, 100.0, results[1].Utilization, 1e-9)
	assert.InDelta(t, 0.0, results[1].WastePercent, 1e-9)

	best, ok := Best(results)
	require.True(t, ok)
	assert.Equal(t, "shelf-sorted", best.Strategy)
}

func TestDefaultStrategies(t *testing.T) {
	names := func(ss []Strategy) []string {
		out := make([]string, len(ss))
		for i, s := range ss {
			out[i] = s.Name()
		}
		return out
	}

	assert.Equal(t, []string{"shelf", "shelf-sorted", "upstream"}, names(DefaultStrategies(model.PlacementShelf)))
	assert.Equal(t, []string{"upstream", "shelf", "shelf-sorted"}, names(DefaultStrategies(model.PlacementUpstream)))
	assert.Equal(t, []string{"auto", "shelf", "shelf-sorted", "upstream"}, names(DefaultStrategies(model.PlacementAuto)))
}

func TestBest_Empty(t *testing.T) {
	_, ok := Best(nil)
	assert.False(t, ok)
}
