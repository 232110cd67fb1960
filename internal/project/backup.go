package project

import (
	"errors"
	"time"

	"github.com/piwi3910/LoadTwin/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// ErrNoVersion marks a backup file without a version field.
var ErrNoVersion = errors.New("backup has no version")

// BackupData bundles everything the viewer persists between sessions.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Inventory model.Inventory `json:"inventory"`
	History   []HistoryEntry  `json:"history"`
}

// normalize replaces nil slices so callers can range and index freely.
func (b *BackupData) normalize() {
	if b.Config.RecentManifests == nil {
		b.Config.RecentManifests = []string{}
	}
	if b.Inventory.Containers == nil {
		b.Inventory.Containers = []model.ContainerPreset{}
	}
	if b.History == nil {
		b.History = []HistoryEntry{}
	}
}

// ExportAllData writes config, container catalog and processing history to a
// single backup file.
func ExportAllData(path string, cfg model.AppConfig, inv model.Inventory, history []HistoryEntry) error {
	b := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    cfg,
		Inventory: inv,
		History:   history,
	}
	b.normalize()
	return writeJSON(path, b)
}

// ImportAllData reads a backup written by ExportAllData. Applying it is left
// to the caller.
func ImportAllData(path string) (BackupData, error) {
	var b BackupData
	if err := readJSON(path, &b); err != nil {
		return BackupData{}, err
	}
	if b.Version == "" {
		return BackupData{}, ErrNoVersion
	}
	b.normalize()
	return b, nil
}
