package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ContainerPreset is a reusable container type definition. Interior
// dimensions are in metres.
type ContainerPreset struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Length      float64           `json:"length"`
	Height      float64           `json:"height"`
	Width       float64           `json:"width"`
	Category    ContainerCategory `json:"category"`
	MaxVolumeM3 float64           `json:"max_volume_m3"`
	MaxWeightKg float64           `json:"max_weight_kg"`
	// Keywords select this preset from a service container_type label
	// (case-insensitive substring match).
	Keywords []string `json:"keywords"`
}

// NewContainerPreset creates a new ContainerPreset with a generated ID.
func NewContainerPreset(name string, length, height, width float64, cat ContainerCategory, keywords ...string) ContainerPreset {
	return ContainerPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Height:   height,
		Width:    width,
		Category: cat,
		Keywords: keywords,
	}
}

// ToContainer converts the preset into a validated Container.
func (cp ContainerPreset) ToContainer() (Container, error) {
	return NewContainer(cp.Name, cp.Length, cp.Height, cp.Width, cp.Category)
}

// Matches reports whether the preset's keywords appear in a container type label.
func (cp ContainerPreset) Matches(containerType string) bool {
	lower := strings.ToLower(containerType)
	for _, k := range cp.Keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Inventory holds the known container presets. DefaultName selects the
// preset used when no keyword matches.
type Inventory struct {
	Containers  []ContainerPreset `json:"containers"`
	DefaultName string            `json:"default_name"`
}

// DefaultInventory returns the container types the optimization service uses.
func DefaultInventory() Inventory {
	highCube := NewContainerPreset("High Cube", 12.03, 2.69, 2.35, ContainerDry, "high cube", "seco", "dry")
	highCube.MaxVolumeM3 = 76.0
	highCube.MaxWeightKg = 28000

	reefer := NewContainerPreset("Refrigerated", 11.58, 2.40, 2.29, ContainerRefrigerated, "refrigerado", "refrigerated", "reefer", "perecible")
	reefer.MaxVolumeM3 = 58.0
	reefer.MaxWeightKg = 26000

	dashboard := NewContainerPreset("Dashboard 40'", 12.0, 2.68, 2.35, ContainerDry)
	dashboard.MaxVolumeM3 = 76.4
	dashboard.MaxWeightKg = 28000

	return Inventory{
		Containers:  []ContainerPreset{highCube, reefer, dashboard},
		DefaultName: highCube.Name,
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].ID == id {
			return &inv.Containers[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindByName(name string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].Name == name {
			return &inv.Containers[i]
		}
	}
	return nil
}

// Names returns the preset names for UI dropdowns.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.Containers))
	for i, c := range inv.Containers {
		names[i] = c.Name
	}
	return names
}

// Resolve picks the preset for a service container_type label. Keyword
// matches are checked in order; the first match wins. Without a match the
// default preset is used.
func (inv *Inventory) Resolve(containerType string) (Container, error) {
	for _, cp := range inv.Containers {
		if cp.Matches(containerType) {
			return cp.ToContainer()
		}
	}
	if def := inv.FindByName(inv.DefaultName); def != nil {
		return def.ToContainer()
	}
	if len(inv.Containers) > 0 {
		return inv.Containers[0].ToContainer()
	}
	return Container{}, fmt.Errorf("no container preset for %q", containerType)
}
