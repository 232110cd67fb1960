// Package engine turns an ordered list of box specifications into positions
// inside a container.
package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/rs/zerolog"
)

// Epsilon absorbs floating point noise in fit checks so that boxes which
// exactly fill a row, layer or height are accepted.
const Epsilon = 1e-9

// Strategy computes a placement for one container. Implementations must be
// deterministic and must account for every input box exactly once, either
// as placed or as skipped.
type Strategy interface {
	Name() string
	Place(c model.Container, boxes []model.BoxSpec) model.PlacementResult
}

// New returns the strategy for a placement mode. Unknown modes fall back to
// the shelf heuristic.
func New(mode model.PlacementMode) Strategy {
	switch mode {
	case model.PlacementUpstream:
		return Upstream{}
	case model.PlacementAuto:
		return Auto{}
	default:
		return Shelf{}
	}
}

// Engine wraps a Strategy with validation and logging.
type Engine struct {
	Strategy Strategy
	log      zerolog.Logger
}

// NewEngine creates an Engine for the given strategy.
func NewEngine(s Strategy, log zerolog.Logger) *Engine {
	if s == nil {
		s = Shelf{}
	}
	return &Engine{Strategy: s, log: log}
}

// Place validates the container and runs the strategy. The run itself is
// synchronous; ctx is only checked before starting so a cancelled batch stops
// between containers.
func (e *Engine) Place(ctx context.Context, c model.Container, boxes []model.BoxSpec) (model.PlacementResult, error) {
	if err := ctx.Err(); err != nil {
		return model.PlacementResult{}, err
	}
	if err := c.Validate(); err != nil {
		return model.PlacementResult{}, fmt.Errorf("placing %d boxes in %q: %w", len(boxes), c.Label, err)
	}

	result := e.Strategy.Place(c, boxes)

	ev := e.log.Debug()
	if result.SkippedCount() > 0 {
		ev = e.log.Warn()
	}
	ev.Str("container", c.Label).
		Str("strategy", result.Strategy).
		Int("boxes", len(boxes)).
		Int("placed", len(result.Placed)).
		Int("skipped", result.SkippedCount()).
		Float64("utilization", result.Utilization()).
		Msg("placement finished")

	return result, nil
}
