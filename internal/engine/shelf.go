package engine

import (
	"sort"

	"github.com/piwi3910/LoadTwin/internal/model"
)

// Shelf fills the container row by row along X, starting a new row further
// along Z when the current row is full and a new layer higher up Y when the
// floor is full. Boxes are never rotated or reordered.
type Shelf struct{}

func (Shelf) Name() string { return string(model.PlacementShelf) }

// Place runs the shelf heuristic over boxes in input order.
func (s Shelf) Place(c model.Container, boxes []model.BoxSpec) model.PlacementResult {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	return packShelf(c, boxes, order, s.Name())
}

// ShelfSorted runs the same heuristic after ordering boxes by footprint,
// largest first. Placed boxes are still reported in input order.
type ShelfSorted struct{}

func (ShelfSorted) Name() string { return "shelf-sorted" }

// Place sorts a copy of the input order and packs it.
func (s ShelfSorted) Place(c model.Container, boxes []model.BoxSpec) model.PlacementResult {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	// Stable so equal footprints keep their input order.
	sort.SliceStable(order, func(i, j int) bool {
		li, hi, wi := boxes[order[i]].EffectiveDims()
		lj, hj, wj := boxes[order[j]].EffectiveDims()
		ai, aj := li*wi, lj*wj
		if ai != aj {
			return ai > aj
		}
		return hi > hj
	})

	result := packShelf(c, boxes, order, s.Name())
	sort.Slice(result.Placed, func(i, j int) bool { return result.Placed[i].Index < result.Placed[j].Index })
	sort.Slice(result.Skipped, func(i, j int) bool { return result.Skipped[i].Index < result.Skipped[j].Index })
	return result
}

// shelfCursor is the run-local packing state. It lives for one run only.
type shelfCursor struct {
	halfL, halfH, halfW float64
	x, y, z             float64
	maxRowHeight        float64 // tallest box since the last layer start
	maxLayerDepth       float64 // deepest box since the last row start
}

func newShelfCursor(c model.Container) *shelfCursor {
	min, max := c.Bounds()
	return &shelfCursor{
		halfL: max.X,
		halfH: max.Y,
		halfW: max.Z,
		x:     min.X,
		y:     min.Y,
		z:     min.Z,
	}
}

// next advances the cursor for a box of the given size and returns the
// box centre, or a skip reason when the box does not fit.
func (s *shelfCursor) next(l, h, w float64) (model.Position, model.SkipReason, bool) {
	if l > 2*s.halfL+Epsilon || h > 2*s.halfH+Epsilon || w > 2*s.halfW+Epsilon {
		return model.Position{}, model.ReasonOversize, false
	}

	if s.x+l > s.halfL+Epsilon {
		s.x = -s.halfL
		s.z += s.maxLayerDepth
		s.maxLayerDepth = 0
	}
	if s.z+w > s.halfW+Epsilon {
		s.z = -s.halfW
		s.x = -s.halfL
		s.y += s.maxRowHeight
		s.maxRowHeight = 0
	}
	if s.y+h > s.halfH+Epsilon {
		return model.Position{}, model.ReasonCeiling, false
	}

	pos := model.Position{X: s.x + l/2, Y: s.y + h/2, Z: s.z + w/2}
	if h > s.maxRowHeight {
		s.maxRowHeight = h
	}
	if w > s.maxLayerDepth {
		s.maxLayerDepth = w
	}
	s.x += l
	return pos, "", true
}

// packShelf places boxes in the given index order.
func packShelf(c model.Container, boxes []model.BoxSpec, order []int, name string) model.PlacementResult {
	result := model.PlacementResult{
		Container: c,
		Strategy:  name,
		Placed:    make([]model.PlacedBox, 0, len(boxes)),
		Skipped:   []model.SkippedBox{},
	}

	cur := newShelfCursor(c)
	for _, idx := range order {
		b := boxes[idx]
		l, h, w := b.EffectiveDims()
		pos, reason, ok := cur.next(l, h, w)
		if !ok {
			result.Skipped = append(result.Skipped, model.SkippedBox{Box: b, Index: idx, Reason: reason})
			continue
		}
		result.Placed = append(result.Placed, model.PlacedBox{
			Box:      b,
			Index:    idx,
			Position: pos,
			Length:   l,
			Height:   h,
			Width:    w,
		})
	}
	return result
}
