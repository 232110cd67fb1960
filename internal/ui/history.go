package ui

import "github.com/piwi3910/LoadTwin/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the loaded manifest and placement mode at a point in time.
type Snapshot struct {
	Source   string
	Manifest model.Manifest
	Mode     model.PlacementMode
	Label    string // Human-readable description (e.g. "Open manifest")
}

// History keeps bounded undo and redo stacks of session snapshots. Each
// snapshot is the state before the action named by its label.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History holding up to 50 snapshots per stack.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// push appends s to stack, dropping the oldest entries beyond the limit.
func (h *History) push(stack []Snapshot, s Snapshot) []Snapshot {
	stack = append(stack, s)
	if len(stack) > h.maxDepth {
		stack = stack[len(stack)-h.maxDepth:]
	}
	return stack
}

// Push records the state before an action and invalidates redo.
func (h *History) Push(s Snapshot) {
	h.undoStack = h.push(h.undoStack, s)
	h.redoStack = nil
}

// Undo returns the state to restore and files current for redo under the
// undone action's label.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	n := len(h.undoStack)
	if n == 0 {
		return Snapshot{}, false
	}
	prev := h.undoStack[n-1]
	h.undoStack = h.undoStack[:n-1]
	current.Label = prev.Label
	h.redoStack = h.push(h.redoStack, current)
	return prev, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	n := len(h.redoStack)
	if n == 0 {
		return Snapshot{}, false
	}
	next := h.redoStack[n-1]
	h.redoStack = h.redoStack[:n-1]
	current.Label = next.Label
	h.undoStack = h.push(h.undoStack, current)
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoLabel names the action Undo would revert, or "" when there is none.
func (h *History) UndoLabel() string {
	if n := len(h.undoStack); n > 0 {
		return h.undoStack[n-1].Label
	}
	return ""
}

// RedoLabel names the action Redo would reapply, or "" when there is none.
func (h *History) RedoLabel() string {
	if n := len(h.redoStack); n > 0 {
		return h.redoStack[n-1].Label
	}
	return ""
}

// Clear drops both stacks, e.g. after a backup import replaces the session.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// copyManifest returns a deep copy of a manifest.
func copyManifest(m model.Manifest) model.Manifest {
	if m == nil {
		return nil
	}
	cp := make(model.Manifest, len(m))
	for i, load := range m {
		cp[i] = load
		if load.Products == nil {
			continue
		}
		products := make([]model.Product, len(load.Products))
		copy(products, load.Products)
		for j := range products {
			if pos := products[j].Position; pos != nil {
				dup := *pos
				products[j].Position = &dup
			}
		}
		cp[i].Products = products
	}
	return cp
}

// MakeSnapshot captures the session; label names the action about to run.
func MakeSnapshot(source string, manifest model.Manifest, mode model.PlacementMode, label string) Snapshot {
	return Snapshot{
		Source:   source,
		Manifest: copyManifest(manifest),
		Mode:     mode,
		Label:    label,
	}
}
