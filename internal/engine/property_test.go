package engine

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomBoxes builds n boxes with sizes between 0.1 m and maxDim, leaving
// some dimensions missing to exercise the default.
func randomBoxes(rng *rand.Rand, n int, maxDim float64) []model.BoxSpec {
	dim := func() float64 {
		if rng.Intn(20) == 0 {
			return 0
		}
		return 0.1 + rng.Float64()*(maxDim-0.1)
	}
	boxes := make([]model.BoxSpec, n)
	for i := range boxes {
		boxes[i] = model.NewBoxSpec("", "", "MINERO", dim(), dim(), dim())
	}
	return boxes
}

func TestStrategies_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	strategies := []Strategy{Shelf{}, ShelfSorted{}, Auto{}}

	for run := 0; run < 200; run++ {
		l := 0.5 + rng.Float64()*12
		h := 0.5 + rng.Float64()*3
		w := 0.5 + rng.Float64()*3
		c, err := model.NewContainer("random", l, h, w, model.ContainerDry)
		require.NoError(t, err)
		boxes := randomBoxes(rng, rng.Intn(60), 3)

		for _, s := range strategies {
			result := s.Place(c, boxes)

			require.NoError(t, CheckCoverage(result, len(boxes)), "%s run %d", s.Name(), run)
			require.NoError(t, Validate(result), "%s run %d", s.Name(), run)

			for i := 1; i < len(result.Placed); i++ {
				assert.Less(t, result.Placed[i-1].Index, result.Placed[i].Index, "placed order must follow input")
			}
			for _, p := range result.Placed {
				bl, bh, bw := boxes[p.Index].EffectiveDims()
				assert.Equal(t, []float64{bl, bh, bw}, []float64{p.Length, p.Height, p.Width})
			}
		}
	}
}

func TestShelf_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, err := model.NewContainer("det", 12.03, 2.69, 2.35, model.ContainerDry)
	require.NoError(t, err)
	boxes := randomBoxes(rng, 80, 1.5)

	first := Shelf{}.Place(c, boxes)
	for i := 0; i < 5; i++ {
		again := Shelf{}.Place(c, boxes)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("placement changed between runs (-first +again):\n%s", diff)
		}
	}
}

func TestShelf_InputNotMutated(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c, err := model.NewContainer("ro", 4, 2, 2, model.ContainerDry)
	require.NoError(t, err)
	boxes := randomBoxes(rng, 30, 1)
	snapshot := make([]model.BoxSpec, len(boxes))
	copy(snapshot, boxes)

	ShelfSorted{}.Place(c, boxes)
	Shelf{}.Place(c, boxes)

	if diff := cmp.Diff(snapshot, boxes); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}
