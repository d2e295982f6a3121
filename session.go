package doodle

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// State is the interaction state of a drawing session.
type State int

const (
	// Idle waits for a pointer press.
	Idle State = iota
	// Drawing renders every pointer move until the pointer is released or leaves the surface.
	Drawing
	// Restoring replaces the surface contents. Pointer input is discarded meanwhile.
	Restoring
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Restoring:
		return "restoring"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session owns the surface and the history of a single drawing, together with the
// drawing options and the viewport. It translates pointer and keyboard input into
// stroke rendering, snapshot captures and restores.
//
// A Session is not safe for concurrent use: it is meant to be driven by a single event loop.
type Session struct {
	ID uuid.UUID

	surface  *Surface
	history  *History
	renderer *Renderer
	config   DrawingConfig
	viewport Viewport
	quality  int

	state State
	prev  Point
}

// Option customizes a new Session.
type Option func(*Session)

// WithHistoryCapacity sets the maximum number of undo states.
func WithHistoryCapacity(n int) Option {
	return func(s *Session) {
		s.history = NewHistory(n)
	}
}

// WithRandSource sets the random source used by the spray tool.
func WithRandSource(src rand.Source) Option {
	return func(s *Session) {
		s.renderer = NewRenderer(src)
	}
}

// WithQuality sets the quality of the lossy export formats.
func WithQuality(q int) Option {
	return func(s *Session) {
		s.quality = q
	}
}

// NewSession creates a drawing session with a blank surface of the given size
// and a history holding the blank state.
func NewSession(width, height int, cfg DrawingConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	surface, err := NewSurface(width, height, cfg.Background)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:       uuid.New(),
		surface:  surface,
		config:   cfg,
		viewport: NewViewport(),
		quality:  DefaultQuality,
		state:    Idle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = NewHistory(DefaultHistoryCapacity)
	}
	if s.renderer == nil {
		s.renderer = NewRenderer(nil)
	}
	s.history.Reset(s.surface)

	return s, nil
}

// Surface returns the current surface. It is replaced on resize.
func (s *Session) Surface() *Surface { return s.surface }

// History returns the undo/redo history.
func (s *Session) History() *History { return s.history }

// Viewport gives access to the zoom and offset used for mapping the pointer positions.
func (s *Session) Viewport() *Viewport { return &s.viewport }

// State returns the current interaction state.
func (s *Session) State() State { return s.state }

// Config returns the active drawing options.
func (s *Session) Config() DrawingConfig { return s.config }

// SetConfig replaces the drawing options. A changed background color
// is applied the same way as SetBackground does.
func (s *Session) SetConfig(cfg DrawingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	bg := s.config.Background
	s.config = cfg
	if cfg.Background != bg {
		s.SetBackground(cfg.Background)
	}
	return nil
}

// SetTool activates the tool for the following interactions.
func (s *Session) SetTool(t Tool) error {
	cfg := s.config.WithTool(t)
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.config = cfg
	return nil
}

// SwapColors exchanges the primary and the secondary color.
func (s *Session) SwapColors() {
	s.config = s.config.SwapColors()
}

// PointerDown starts a new interaction at the raw viewport position.
// A dot is rendered right away, so a click without movement still leaves a mark.
func (s *Session) PointerDown(raw Point) {
	switch s.state {
	case Restoring:
		Logger().Debug("pointer down dropped while restoring", "session", s.ID)
		return
	case Drawing:
		return
	}
	p := s.viewport.ToSurface(raw)
	s.state = Drawing
	s.prev = p
	s.render(p, p)
}

// PointerMove renders the segment from the previous to the current position while drawing.
func (s *Session) PointerMove(raw Point) {
	if s.state != Drawing {
		if s.state == Restoring {
			Logger().Debug("pointer move dropped while restoring", "session", s.ID)
		}
		return
	}
	p := s.viewport.ToSurface(raw)
	s.render(s.prev, p)
	s.prev = p
}

// PointerUp ends the current interaction and captures the resulting surface.
func (s *Session) PointerUp() {
	if s.state == Restoring {
		Logger().Debug("pointer up dropped while restoring", "session", s.ID)
		return
	}
	s.endInteraction()
}

// PointerLeave behaves exactly like PointerUp.
func (s *Session) PointerLeave() {
	s.PointerUp()
}

// Hover returns the surface position under the pointer, rounded to whole pixels.
func (s *Session) Hover(raw Point) image.Point {
	return s.viewport.CursorPosition(raw)
}

// Undo restores the previous state. It reports whether the surface changed.
// An interaction in progress is completed first.
func (s *Session) Undo() (bool, error) {
	s.endInteraction()

	snap, ok := s.history.Undo()
	if !ok {
		return false, nil
	}
	return true, s.restore(snap)
}

// Redo restores the next state. It reports whether the surface changed.
func (s *Session) Redo() (bool, error) {
	s.endInteraction()

	snap, ok := s.history.Redo()
	if !ok {
		return false, nil
	}
	return true, s.restore(snap)
}

// Clear fills the surface with the background color and captures the result.
func (s *Session) Clear() {
	s.endInteraction()
	s.surface.Clear()
	s.capture()
}

// New starts a new drawing: the surface is cleared and the history holds only the blank state.
func (s *Session) New() {
	s.endInteraction()
	s.surface.Clear()
	s.history.Reset(s.surface)
	Logger().Debug("new drawing", "session", s.ID)
}

// SetBackground changes the page color. The whole surface is filled with it, then captured.
func (s *Session) SetBackground(c color.NRGBA) {
	s.endInteraction()
	s.config = s.config.WithBackground(c)
	s.surface.SetBackground(c)
	s.surface.Clear()
	s.capture()
}

// Resize replaces the surface with a new one of the requested size and
// restores the latest snapshot on it at the origin, without scaling it.
func (s *Session) Resize(width, height int) error {
	if width == s.surface.Width() && height == s.surface.Height() {
		return nil
	}
	surface, err := NewSurface(width, height, s.surface.Background())
	if err != nil {
		return err
	}
	s.endInteraction()
	s.surface = surface

	if snap := s.history.Current(); snap != nil {
		return s.restore(snap)
	}
	return nil
}

// Restore paints the snapshot back onto the surface, adopting the snapshot's page color.
// A corrupt snapshot leaves the surface filled with the current background color
// and ErrCorruptSnapshot is returned.
func (s *Session) Restore(snap *Snapshot) error {
	s.endInteraction()
	return s.restore(snap)
}

// Snapshot returns the snapshot under the history cursor.
func (s *Session) Snapshot() *Snapshot {
	return s.history.Current()
}

// Export encodes the current surface in the requested format.
func (s *Session) Export(w io.Writer, f Format) error {
	return Encode(w, s.surface.Image(), f, s.quality)
}

// Import draws an external image scaled to the surface bounds over a background fill,
// then captures the result. An empty reader leaves everything unchanged.
func (s *Session) Import(r io.Reader) error {
	img, err := Decode(r)
	if err != nil {
		return err
	}
	if img == nil {
		return nil
	}
	s.endInteraction()

	s.state = Restoring
	scaled := imaging.Resize(img, s.surface.Width(), s.surface.Height(), imaging.Lanczos)
	s.surface.Clear()
	s.surface.DrawImage(scaled, image.Point{})
	s.state = Idle

	s.capture()
	return nil
}

// render applies the current tool between the two surface points.
func (s *Session) render(prev, curr Point) {
	if err := s.renderer.ApplySegment(s.surface, s.config.Tool, s.config.Style(), prev, curr); err != nil {
		Logger().Warn("could not render the stroke", "session", s.ID, "error", err)
	}
}

// endInteraction completes the interaction in progress, if any.
func (s *Session) endInteraction() {
	if s.state != Drawing {
		return
	}
	s.state = Idle
	s.capture()
}

func (s *Session) capture() {
	snap := s.history.Capture(s.surface)
	Logger().Debug("snapshot captured",
		"session", s.ID,
		"snapshot", snap.ID,
		"cursor", s.history.Cursor(),
		"len", s.history.Len(),
	)
}

func (s *Session) restore(snap *Snapshot) error {
	s.state = Restoring
	defer func() { s.state = Idle }()

	if snap.validate() == nil && snap.Background != s.surface.Background() {
		s.surface.SetBackground(snap.Background)
		s.config = s.config.WithBackground(snap.Background)
	}
	if err := s.surface.Restore(snap); err != nil {
		Logger().Warn("snapshot restore failed, the surface holds only the background", "session", s.ID, "error", err)
		return err
	}
	Logger().Debug("snapshot restored", "session", s.ID, "snapshot", snap.ID, "cursor", s.history.Cursor())

	return nil
}
