package doodle

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertCursorInRange(t *testing.T, h *History) {
	t.Helper()
	assert.GreaterOrEqual(t, h.Cursor(), -1)
	assert.LessOrEqual(t, h.Cursor(), h.Len()-1)
	assert.LessOrEqual(t, h.Len(), h.Capacity())
}

func TestHistory_Empty(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(0)
	assert.Equal(DefaultHistoryCapacity, h.Capacity())
	assert.Equal(-1, h.Cursor())
	assert.Equal(0, h.Len())
	assert.Nil(h.Current())
	assert.False(h.CanUndo())
	assert.False(h.CanRedo())

	_, ok := h.Undo()
	assert.False(ok)
	_, ok = h.Redo()
	assert.False(ok)
	assertCursorInRange(t, h)
}

func TestHistory_ResetHoldsBlankState(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 4, 4)
	h := NewHistory(5)
	h.Capture(s)
	h.Capture(s)

	blank := h.Reset(s)
	assert.Equal(1, h.Len())
	assert.Equal(0, h.Cursor())
	assert.Same(blank, h.Current())
	assert.False(h.CanUndo())
	assert.False(h.CanRedo())
}

func TestHistory_UndoRedo(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 4, 4)
	h := NewHistory(DefaultHistoryCapacity)
	a := h.Reset(s)

	s.Fill(red)
	b := h.Capture(s)
	assert.Equal(1, h.Cursor())
	assert.True(h.CanUndo())
	assert.False(h.CanRedo())

	snap, ok := h.Undo()
	assert.True(ok)
	assert.Same(a, snap)
	assert.True(h.CanRedo())

	_, ok = h.Undo()
	assert.False(ok, "the blank state can not be undone")
	assert.Equal(0, h.Cursor())

	snap, ok = h.Redo()
	assert.True(ok)
	assert.Same(b, snap)

	_, ok = h.Redo()
	assert.False(ok)
	assertCursorInRange(t, h)
}

func TestHistory_CaptureTruncatesRedoBranch(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 4, 4)
	h := NewHistory(DefaultHistoryCapacity)
	h.Reset(s)
	for i := 0; i < 4; i++ {
		h.Capture(s)
	}
	assert.Equal(5, h.Len())

	h.Undo()
	h.Undo()
	assert.Equal(2, h.Cursor())
	assert.True(h.CanRedo())

	c := h.Capture(s)
	assert.Equal(4, h.Len())
	assert.Equal(3, h.Cursor())
	assert.Same(c, h.Current())
	assert.False(h.CanRedo())
	assertCursorInRange(t, h)
}

func TestHistory_ShouldBeBounded(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 2, 2)
	h := NewHistory(DefaultHistoryCapacity)
	h.Reset(s)

	var snaps []*Snapshot
	for i := 0; i < 25; i++ {
		s.Fill(color.NRGBA{R: uint8(i), A: 0xff})
		snaps = append(snaps, h.Capture(s))
		assertCursorInRange(t, h)
	}

	assert.Equal(DefaultHistoryCapacity, h.Len())
	assert.Equal(DefaultHistoryCapacity-1, h.Cursor())
	assert.Same(snaps[len(snaps)-1], h.Current())

	// Only the latest 20 states survive, the oldest ones are gone.
	undos := 0
	for h.CanUndo() {
		_, ok := h.Undo()
		assert.True(ok)
		undos++
	}
	assert.Equal(DefaultHistoryCapacity-1, undos)
	assert.Same(snaps[len(snaps)-DefaultHistoryCapacity], h.Current())
}

func TestHistory_CapacityOne(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 2, 2)
	h := NewHistory(1)
	h.Reset(s)
	last := h.Capture(s)

	assert.Equal(1, h.Len())
	assert.Equal(0, h.Cursor())
	assert.Same(last, h.Current())
	assert.False(h.CanUndo())
}

func TestHistory_Push(t *testing.T) {
	s := newTestSurface(t, 2, 2)
	h := NewHistory(3)
	snap := NewSnapshot(s)
	h.Push(snap)

	assert.Equal(t, 0, h.Cursor())
	assert.Same(t, snap, h.Current())
}

func TestHistory_UndoAvailability(t *testing.T) {
	s := newTestSurface(t, 2, 2)

	for n := 0; n <= 19; n++ {
		h := NewHistory(DefaultHistoryCapacity)
		h.Reset(s)
		assert.False(t, h.CanUndo())

		for i := 0; i < n; i++ {
			h.Capture(s)
			assert.True(t, h.CanUndo())
			assert.False(t, h.CanRedo())
		}
		assertCursorInRange(t, h)
	}
}

func TestHistory_SegmentScenario(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 12, 12)
	r := NewRenderer(nil)
	h := NewHistory(DefaultHistoryCapacity)

	h.Reset(s)
	a := h.Capture(s)
	assert.NoError(r.ApplySegment(s, Pen, DefaultConfig().Style(), Point{X: 0, Y: 0}, Point{X: 10, Y: 10}))
	b := h.Capture(s)

	snap, ok := h.Undo()
	assert.True(ok)
	assert.Same(a, snap)
	assert.NoError(s.Restore(snap))
	assert.Equal(a.Image().Pix, s.Image().Pix)

	snap, ok = h.Redo()
	assert.True(ok)
	assert.Same(b, snap)
	assert.NoError(s.Restore(snap))
	assert.Equal(b.Image().Pix, s.Image().Pix)
}
