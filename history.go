package doodle

// DefaultHistoryCapacity is the number of snapshots kept when no other capacity is requested.
const DefaultHistoryCapacity = 20

// History is a bounded, linear undo/redo stack of surface snapshots.
//
// The cursor points at the snapshot reflecting the current surface state.
// It stays within [-1, len-1], -1 meaning an empty history. Snapshots after
// the cursor can be redone; capturing a new state discards them first.
// When the capacity is reached the oldest snapshot is dropped.
type History struct {
	entries  []*Snapshot
	cursor   int
	capacity int
}

// NewHistory creates an empty history. A non positive capacity falls back to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		entries:  make([]*Snapshot, 0, capacity),
		cursor:   -1,
		capacity: capacity,
	}
}

// Capture snapshots the surface and pushes it onto the history.
func (h *History) Capture(s *Surface) *Snapshot {
	snap := NewSnapshot(s)
	h.Push(snap)

	return snap
}

// Push appends an already taken snapshot, with the same rules as Capture.
func (h *History) Push(snap *Snapshot) {
	// Drop the redo branch.
	for i := h.cursor + 1; i < len(h.entries); i++ {
		h.entries[i] = nil
	}
	h.entries = h.entries[:h.cursor+1]

	if len(h.entries) >= h.capacity {
		// Slide the window: the cursor keeps its index, which now holds the next entry.
		copy(h.entries, h.entries[1:])
		h.entries[len(h.entries)-1] = nil
		h.entries = h.entries[:len(h.entries)-1]
	} else {
		h.cursor++
	}
	h.entries = append(h.entries, snap)
}

// Undo steps back one state. It returns false if there is nothing to undo.
func (h *History) Undo() (*Snapshot, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--

	return h.entries[h.cursor], true
}

// Redo steps forward one state. It returns false if there is nothing to redo.
func (h *History) Redo() (*Snapshot, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++

	return h.entries[h.cursor], true
}

// Reset clears the history and captures the blank surface as the single initial state.
func (h *History) Reset(blank *Surface) *Snapshot {
	for i := range h.entries {
		h.entries[i] = nil
	}
	h.entries = h.entries[:0]
	h.cursor = -1

	return h.Capture(blank)
}

// CanUndo reports whether there is an older state to go back to.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether an undone state can be reapplied.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Current returns the snapshot under the cursor, or nil for an empty history.
func (h *History) Current() *Snapshot {
	if h.cursor < 0 {
		return nil
	}
	return h.entries[h.cursor]
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the current snapshot, -1 for an empty history.
func (h *History) Cursor() int { return h.cursor }

// Capacity returns the maximum number of stored snapshots.
func (h *History) Capacity() int { return h.capacity }
