package engine

import (
	"github.com/piwi3910/LoadTwin/internal/model"
)

// Upstream trusts the coordinates computed by the optimization service.
// The service reports the min corner of each box measured from the
// container's corner, so positions are shifted into the centred frame.
type Upstream struct{}

func (Upstream) Name() string { return string(model.PlacementUpstream) }

// Place converts each supplied position and checks it against the bounds.
func (u Upstream) Place(c model.Container, boxes []model.BoxSpec) model.PlacementResult {
	result := model.PlacementResult{
		Container: c,
		Strategy:  u.Name(),
		Placed:    make([]model.PlacedBox, 0, len(boxes)),
		Skipped:   []model.SkippedBox{},
	}
	min, max := c.Bounds()

	for i, b := range boxes {
		if b.Position == nil {
			result.Skipped = append(result.Skipped, model.SkippedBox{Box: b, Index: i, Reason: model.ReasonNoPosition})
			continue
		}
		l, h, w := b.EffectiveDims()
		pb := model.PlacedBox{
			Box:   b,
			Index: i,
			Position: model.Position{
				X: b.Position.X + l/2 - c.Length/2,
				Y: b.Position.Y + h/2 - c.Height/2,
				Z: b.Position.Z + w/2 - c.Width/2,
			},
			Length: l,
			Height: h,
			Width:  w,
		}
		if !within(pb, min, max) {
			result.Skipped = append(result.Skipped, model.SkippedBox{Box: b, Index: i, Reason: model.ReasonOutOfBounds})
			continue
		}
		result.Placed = append(result.Placed, pb)
	}
	return result
}

// Auto uses upstream coordinates when every box carries one and the shelf
// heuristic otherwise.
type Auto struct{}

func (Auto) Name() string { return string(model.PlacementAuto) }

// Place picks the strategy for this input and reports which one ran.
func (Auto) Place(c model.Container, boxes []model.BoxSpec) model.PlacementResult {
	if hasPositions(boxes) {
		return Upstream{}.Place(c, boxes)
	}
	return Shelf{}.Place(c, boxes)
}

func hasPositions(boxes []model.BoxSpec) bool {
	if len(boxes) == 0 {
		return false
	}
	for _, b := range boxes {
		if b.Position == nil {
			return false
		}
	}
	return true
}

func within(p model.PlacedBox, min, max model.Position) bool {
	lo, hi := p.Min(), p.Max()
	return lo.X >= min.X-Epsilon && lo.Y >= min.Y-Epsilon && lo.Z >= min.Z-Epsilon &&
		hi.X <= max.X+Epsilon && hi.Y <= max.Y+Epsilon && hi.Z <= max.Z+Epsilon
}
