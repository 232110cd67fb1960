package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/LoadTwin/internal/model"
)

// DefaultInventoryPath is ~/.loadtwin/containers.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".loadtwin", "containers.json"), nil
}

// SaveInventory writes the container catalog to path.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the container catalog at path. A missing file is
// seeded with model.DefaultInventory so users have something to edit.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	err := readJSON(path, &inv)
	switch {
	case isMissing(err):
		inv = model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	case err != nil:
		return model.Inventory{}, err
	}
	if inv.Containers == nil {
		inv.Containers = []model.ContainerPreset{}
	}
	return inv, nil
}

// LoadOrCreateInventory is LoadInventory at DefaultInventoryPath. The path is
// returned so edits can be saved back.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path, err := DefaultInventoryPath()
	if err != nil {
		return model.DefaultInventory(), "", err
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ExportInventory writes a shareable copy of the catalog.
func ExportInventory(path string, inv model.Inventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory merges the catalog at path into existing. Presets whose ID
// is already known are ignored, and the imported default only applies when
// existing has none. On error existing is returned untouched.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	if err := readJSON(path, &imported); err != nil {
		return existing, err
	}

	seen := make(map[string]struct{}, len(existing.Containers)+len(imported.Containers))
	merged := append([]model.ContainerPreset(nil), existing.Containers...)
	for _, c := range merged {
		seen[c.ID] = struct{}{}
	}
	for _, c := range imported.Containers {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		merged = append(merged, c)
	}

	out := existing
	out.Containers = merged
	if out.DefaultName == "" {
		out.DefaultName = imported.DefaultName
	}
	return out, nil
}
