package model

import (
	"testing"
)

func TestDefaultInventoryPresetsAreValid(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Containers) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(inv.Containers))
	}
	for _, cp := range inv.Containers {
		if _, err := cp.ToContainer(); err != nil {
			t.Errorf("preset %s invalid: %v", cp.Name, err)
		}
	}
}

func TestResolveByContainerType(t *testing.T) {
	inv := DefaultInventory()

	c, err := inv.Resolve("Refrigerado - Perecible_Refrigerado #1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Category != ContainerRefrigerated || c.Length != 11.58 {
		t.Errorf("expected reefer preset, got %+v", c)
	}

	c, err = inv.Resolve("High Cube - MIXTO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Category != ContainerDry || c.Length != 12.03 {
		t.Errorf("expected high cube preset, got %+v", c)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	inv := DefaultInventory()
	c, err := inv.Resolve("Flat Rack")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Label != "High Cube" {
		t.Errorf("expected default High Cube, got %s", c.Label)
	}

	inv.DefaultName = "missing"
	c, err = inv.Resolve("Flat Rack")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Label != inv.Containers[0].Name {
		t.Errorf("expected first preset fallback, got %s", c.Label)
	}

	empty := Inventory{}
	if _, err := empty.Resolve("anything"); err == nil {
		t.Error("expected error for empty inventory")
	}
}

func TestFindByIDAndName(t *testing.T) {
	inv := DefaultInventory()
	first := inv.Containers[0]

	if got := inv.FindByID(first.ID); got == nil || got.Name != first.Name {
		t.Errorf("FindByID failed, got %v", got)
	}
	if inv.FindByID("nope") != nil {
		t.Error("expected nil for unknown ID")
	}
	if got := inv.FindByName("Refrigerated"); got == nil {
		t.Error("expected to find Refrigerated")
	}
	names := inv.Names()
	if len(names) != len(inv.Containers) || names[0] != first.Name {
		t.Errorf("unexpected names %v", names)
	}
}

func TestPresetWithInvalidGeometry(t *testing.T) {
	cp := NewContainerPreset("Broken", 0, 2, 2, ContainerDry)
	if _, err := cp.ToContainer(); err == nil {
		t.Error("expected error for zero length preset")
	}
}
