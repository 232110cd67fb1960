package project

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MaxHistoryEntries bounds the processing history kept on disk.
const MaxHistoryEntries = 50

// History status values.
const (
	StatusCompleted = "Completed"
	StatusPartial   = "Partial" // Some boxes were omitted from the twin
	StatusFailed    = "Failed"
)

// HistoryEntry records one processed manifest.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Source     string    `json:"source"` // Manifest path or service URL
	Containers int       `json:"containers"`
	Boxes      int       `json:"boxes"`
	Omitted    int       `json:"omitted"`
	Status     string    `json:"status"`
}

// NewHistoryEntry creates an entry stamped with the current time. The status
// is derived from the omitted count.
func NewHistoryEntry(source string, containers, boxes, omitted int) HistoryEntry {
	status := StatusCompleted
	if omitted > 0 {
		status = StatusPartial
	}
	return HistoryEntry{
		ID:         uuid.New().String()[:8],
		Date:       time.Now().UTC(),
		Source:     source,
		Containers: containers,
		Boxes:      boxes,
		Omitted:    omitted,
		Status:     status,
	}
}

// DefaultHistoryPath returns ~/.loadtwin/history.json.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultConfigDir(), "history.json")
}

// SaveHistory writes the history to path as indented JSON.
func SaveHistory(path string, entries []HistoryEntry) error {
	return writeJSON(path, entries)
}

// LoadHistory reads the history from path. A missing file yields an empty
// history.
func LoadHistory(path string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := readJSON(path, &entries); err != nil {
		if isMissing(err) {
			return []HistoryEntry{}, nil
		}
		return nil, err
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}

// PrependHistory puts entry first and drops the oldest entries beyond
// MaxHistoryEntries.
func PrependHistory(entries []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)
	if len(out) > MaxHistoryEntries {
		out = out[:MaxHistoryEntries]
	}
	return out
}

// AppendHistory loads the history at path, records entry as the newest item
// and saves it back.
func AppendHistory(path string, entry HistoryEntry) ([]HistoryEntry, error) {
	entries, err := LoadHistory(path)
	if err != nil {
		return nil, err
	}
	entries = PrependHistory(entries, entry)
	if err := SaveHistory(path, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
