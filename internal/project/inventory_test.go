package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadTwin/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path, err := DefaultInventoryPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "containers.json" {
		t.Errorf("expected filename containers.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".loadtwin" {
		t.Errorf("expected parent dir .loadtwin, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_containers.json")

	inv := model.Inventory{
		Containers: []model.ContainerPreset{
			model.NewContainerPreset("Open Top", 12.0, 2.3, 2.35, model.ContainerDry, "open top"),
		},
		DefaultName: "Open Top",
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Containers) != 1 {
		t.Fatalf("expected 1 container, got %d", len(loaded.Containers))
	}
	if loaded.Containers[0].Name != "Open Top" || loaded.Containers[0].Height != 2.3 {
		t.Errorf("unexpected preset %+v", loaded.Containers[0])
	}
	if loaded.DefaultName != "Open Top" {
		t.Errorf("expected default Open Top, got %q", loaded.DefaultName)
	}

	c, err := loaded.Resolve("Open Top - MINERO")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if c.Height != 2.3 {
		t.Errorf("expected resolved height 2.3, got %f", c.Height)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "containers.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Containers) == 0 {
		t.Error("expected default containers, got none")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default inventory file to be created")
	}
}

func TestImportInventory(t *testing.T) {
	tmpDir := t.TempDir()

	existing := model.Inventory{
		Containers: []model.ContainerPreset{
			{ID: "c-001", Name: "Existing HC", Length: 12, Height: 2.6, Width: 2.3},
		},
	}
	imported := model.Inventory{
		Containers: []model.ContainerPreset{
			{ID: "c-001", Name: "Duplicate HC", Length: 12, Height: 2.6, Width: 2.3}, // same ID, skipped
			{ID: "c-002", Name: "Flat Rack", Length: 11.6, Height: 2.1, Width: 2.4},  // new
		},
		DefaultName: "Flat Rack",
	}

	importPath := filepath.Join(tmpDir, "import.json")
	data, _ := json.MarshalIndent(imported, "", "  ")
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	merged, err := ImportInventory(importPath, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Containers) != 2 {
		t.Fatalf("expected 2 containers after merge, got %d", len(merged.Containers))
	}
	if merged.Containers[0].Name != "Existing HC" {
		t.Errorf("expected first container to be 'Existing HC', got %q", merged.Containers[0].Name)
	}
	if merged.Containers[1].Name != "Flat Rack" {
		t.Errorf("expected second container to be 'Flat Rack', got %q", merged.Containers[1].Name)
	}
	if merged.DefaultName != "Flat Rack" {
		t.Errorf("expected imported default name, got %q", merged.DefaultName)
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	merged, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(merged.Containers) != len(existing.Containers) {
		t.Error("existing inventory should be returned unchanged")
	}
}

func TestExportInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")

	inv := model.DefaultInventory()
	if err := ExportInventory(path, inv); err != nil {
		t.Fatalf("ExportInventory failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}
	var loaded model.Inventory
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to unmarshal exported inventory: %v", err)
	}
	if len(loaded.Containers) != len(inv.Containers) {
		t.Errorf("expected %d containers, got %d", len(inv.Containers), len(loaded.Containers))
	}
}
