package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/LoadTwin/internal/model"
)

var (
	// ErrOutOfBounds marks a placed box that leaves the container.
	ErrOutOfBounds = errors.New("box outside container")
	// ErrOverlap marks two placed boxes sharing interior volume.
	ErrOverlap = errors.New("boxes overlap")
	// ErrCountMismatch marks a result whose placed and skipped lists do not
	// account for the input exactly once.
	ErrCountMismatch = errors.New("placed and skipped do not cover input")
)

// Validate checks that every placed box lies inside the container and that
// no two placed boxes overlap. All violations are joined into one error.
func Validate(result model.PlacementResult) error {
	var errs []error
	min, max := result.Container.Bounds()

	for _, p := range result.Placed {
		if !within(p, min, max) {
			errs = append(errs, fmt.Errorf("%w: #%d %s at (%.3f, %.3f, %.3f)",
				ErrOutOfBounds, p.Index, p.Box.DisplayName(), p.Position.X, p.Position.Y, p.Position.Z))
		}
	}

	for i := 0; i < len(result.Placed); i++ {
		for j := i + 1; j < len(result.Placed); j++ {
			a, b := result.Placed[i], result.Placed[j]
			if a.Overlaps(b, Epsilon) {
				errs = append(errs, fmt.Errorf("%w: #%d and #%d", ErrOverlap, a.Index, b.Index))
			}
		}
	}

	return errors.Join(errs...)
}

// CheckCoverage verifies that a result accounts for n inputs, each index
// appearing exactly once across placed and skipped.
func CheckCoverage(result model.PlacementResult, n int) error {
	if result.InputCount() != n {
		return fmt.Errorf("%w: %d placed + %d skipped != %d", ErrCountMismatch, len(result.Placed), result.SkippedCount(), n)
	}
	seen := make([]bool, n)
	mark := func(idx int) error {
		if idx < 0 || idx >= n || seen[idx] {
			return fmt.Errorf("%w: index %d", ErrCountMismatch, idx)
		}
		seen[idx] = true
		return nil
	}
	for _, p := range result.Placed {
		if err := mark(p.Index); err != nil {
			return err
		}
	}
	for _, s := range result.Skipped {
		if err := mark(s.Index); err != nil {
			return err
		}
	}
	return nil
}
