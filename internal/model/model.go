package model

import (
	"fmt"
	"math"
)

// DefaultDimension is substituted for any missing or non-positive box
// dimension so incomplete upstream data still renders.
const DefaultDimension = 1.0

// Position is a point in the container's local frame in metres. The origin
// is the geometric centre of the container; X runs along the length, Y along
// the height and Z along the width.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoxSpec is one product unit handed in by the optimization service.
// A zero, negative or NaN dimension means "missing".
type BoxSpec struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"` // Raw upstream identifier, passed through
	Length   float64 `json:"length"`
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	Weight   float64 `json:"weight,omitempty"` // kg
	Volume   float64 `json:"volume,omitempty"` // m³ as reported upstream
	Rotated  bool    `json:"rotated,omitempty"`

	// Position is the min corner supplied by the upstream solver, measured
	// from the container's corner. Nil when the service did not compute one.
	Position *Position `json:"position,omitempty"`
}

// NewBoxSpec builds a BoxSpec with the given identity and dimensions.
func NewBoxSpec(id, name, category string, length, height, width float64) BoxSpec {
	return BoxSpec{
		ID:       id,
		Name:     name,
		Category: category,
		Length:   length,
		Height:   height,
		Width:    width,
	}
}

func effective(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return DefaultDimension
	}
	return v
}

// EffectiveDims returns the dimensions used for placement, with missing
// values replaced by DefaultDimension.
func (b BoxSpec) EffectiveDims() (l, h, w float64) {
	return effective(b.Length), effective(b.Height), effective(b.Width)
}

// Kind returns the closed category used for colouring.
func (b BoxSpec) Kind() Category {
	return ParseCategory(b.Category)
}

// DisplayName returns the name, falling back to the ID.
func (b BoxSpec) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	if b.ID != "" {
		return b.ID
	}
	return "Unnamed"
}

// PlacedBox is a BoxSpec with an assigned centre position.
type PlacedBox struct {
	Box      BoxSpec  `json:"box"`
	Index    int      `json:"index"` // Position in the input list
	Position Position `json:"position"`
	Length   float64  `json:"length"` // Effective dimensions used for placement
	Height   float64  `json:"height"`
	Width    float64  `json:"width"`
}

// Min returns the lower corner of the placed box.
func (p PlacedBox) Min() Position {
	return Position{X: p.Position.X - p.Length/2, Y: p.Position.Y - p.Height/2, Z: p.Position.Z - p.Width/2}
}

// Max returns the upper corner of the placed box.
func (p PlacedBox) Max() Position {
	return Position{X: p.Position.X + p.Length/2, Y: p.Position.Y + p.Height/2, Z: p.Position.Z + p.Width/2}
}

// Volume returns the effective volume of the placed box.
func (p PlacedBox) Volume() float64 {
	return p.Length * p.Height * p.Width
}

// Overlaps reports whether two placed boxes share interior volume.
// Touching faces do not count, within tolerance eps.
func (p PlacedBox) Overlaps(o PlacedBox, eps float64) bool {
	a1, a2 := p.Min(), p.Max()
	b1, b2 := o.Min(), o.Max()
	return a1.X < b2.X-eps && a2.X > b1.X+eps &&
		a1.Y < b2.Y-eps && a2.Y > b1.Y+eps &&
		a1.Z < b2.Z-eps && a2.Z > b1.Z+eps
}

// SkipReason explains why a box was left out of the placement.
type SkipReason string

const (
	ReasonOversize    SkipReason = "oversize"      // Larger than the container on some axis
	ReasonCeiling     SkipReason = "ceiling"       // No vertical room left in this scan order
	ReasonNoPosition  SkipReason = "no_position"   // Upstream mode without coordinates
	ReasonOutOfBounds SkipReason = "out_of_bounds" // Upstream coordinates leave the container
)

// SkippedBox records a box that could not be placed.
type SkippedBox struct {
	Box    BoxSpec    `json:"box"`
	Index  int        `json:"index"`
	Reason SkipReason `json:"reason"`
}

// PlacementMode selects how positions are obtained.
type PlacementMode string

const (
	PlacementShelf    PlacementMode = "shelf"    // Greedy shelf heuristic (default)
	PlacementUpstream PlacementMode = "upstream" // Trust coordinates supplied by the service
	PlacementAuto     PlacementMode = "auto"     // Upstream when every box has a position, else shelf
)

// ParsePlacementMode validates a mode string.
func ParsePlacementMode(s string) (PlacementMode, error) {
	switch PlacementMode(s) {
	case PlacementShelf, PlacementUpstream, PlacementAuto:
		return PlacementMode(s), nil
	case "":
		return PlacementShelf, nil
	default:
		return "", fmt.Errorf("unknown placement mode %q", s)
	}
}

// PlacementResult is the data contract handed to renderers.
type PlacementResult struct {
	Container Container    `json:"container"`
	Strategy  string       `json:"strategy"`
	Placed    []PlacedBox  `json:"placed"`
	Skipped   []SkippedBox `json:"skipped"`
}

// SkippedCount returns the number of boxes left out of the twin.
func (r PlacementResult) SkippedCount() int {
	return len(r.Skipped)
}

// InputCount returns the number of boxes the run was given.
func (r PlacementResult) InputCount() int {
	return len(r.Placed) + len(r.Skipped)
}

// UsedVolume returns the total effective volume of the placed boxes.
func (r PlacementResult) UsedVolume() float64 {
	var total float64
	for _, p := range r.Placed {
		total += p.Volume()
	}
	return total
}

// Utilization returns placed volume as a percentage of container volume.
func (r PlacementResult) Utilization() float64 {
	v := r.Container.Volume()
	if v == 0 {
		return 0
	}
	return (r.UsedVolume() / v) * 100.0
}

// Warning returns the non-fatal message a renderer should surface when
// boxes were omitted, or an empty string.
func (r PlacementResult) Warning() string {
	n := r.SkippedCount()
	switch {
	case n == 0:
		return ""
	case n == 1:
		return "1 item omitted from visualization"
	default:
		return fmt.Sprintf("%d items omitted from visualization", n)
	}
}
