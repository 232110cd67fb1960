// Package twin assembles per-container placements for a manifest and keeps
// the browsing state the viewer pages through.
package twin

import (
	"context"
	"fmt"

	"github.com/piwi3910/LoadTwin/internal/engine"
	"github.com/piwi3910/LoadTwin/internal/model"
)

// Twin is one container of a manifest together with its placement.
type Twin struct {
	Shipment model.Shipment        `json:"shipment"`
	Result   model.PlacementResult `json:"result"`
}

// Container returns the resolved container geometry.
func (t Twin) Container() model.Container {
	return t.Result.Container
}

// Build resolves a container for every shipment and runs the engine over its
// products, one shipment at a time. Skipped boxes never fail the build; they
// are reported as warnings prefixed with the shipment ID.
func Build(ctx context.Context, shipments []model.Shipment, inv model.Inventory, eng *engine.Engine) ([]Twin, []string, error) {
	twins := make([]Twin, 0, len(shipments))
	var warnings []string

	for _, s := range shipments {
		c, err := inv.Resolve(s.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("shipment %s: %w", s.ID, err)
		}
		c.Label = s.Type

		result, err := eng.Place(ctx, c, s.BoxSpecs())
		if err != nil {
			return nil, nil, fmt.Errorf("shipment %s: %w", s.ID, err)
		}
		if w := result.Warning(); w != "" {
			warnings = append(warnings, fmt.Sprintf("%s: %s", s.ID, w))
		}
		twins = append(twins, Twin{Shipment: s, Result: result})
	}
	return twins, warnings, nil
}

// Counts returns the number of containers, input boxes and omitted boxes.
func Counts(twins []Twin) (containers, boxes, omitted int) {
	for _, t := range twins {
		boxes += t.Result.InputCount()
		omitted += t.Result.SkippedCount()
	}
	return len(twins), boxes, omitted
}

// Paginate returns the items on a 1-based page and the total page count.
// Out of range pages are clamped; an empty list has one empty page.
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		perPage = 1
	}
	pages := (len(items) + perPage - 1) / perPage
	if pages == 0 {
		return []T{}, 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pages
}
