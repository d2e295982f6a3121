// Package gui implements the desktop window of the drawing application.
// It forwards the pointer and keyboard input to a doodle.Session and
// paints the session surface scaled by the viewport zoom.
package gui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/esimov/doodle"
	"github.com/esimov/doodle/utils"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 768

	sliderWidth = unit.Dp(120)
	swatchSize  = unit.Dp(20)
)

var (
	statusBkgColor = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	selectionColor = color.NRGBA{R: 0x3f, G: 0x51, B: 0xb5, A: 0xff}
)

// Gui is the window driving a drawing session.
type Gui struct {
	session *doodle.Session
	theme   *material.Theme

	cfg struct {
		title  string
		width  int
		height int
	}
	out struct {
		path   string
		format doodle.Format
	}

	// Toolbar controls.
	size        widget.Float
	opacity     widget.Float
	presets     []widget.Clickable
	backgrounds []widget.Clickable

	cursor  image.Point
	message string
}

// NewGUI creates the window for the session. The drawing is exported to path
// in the provided format when the save shortcut is pressed.
func NewGUI(s *doodle.Session, path string, format doodle.Format) *Gui {
	g := &Gui{
		session: s,
		theme:   material.NewTheme(gofont.Collection()),
	}
	g.cfg.title = "Doodle"
	g.cfg.width, g.cfg.height = s.Surface().Width(), s.Surface().Height()
	if g.cfg.width <= 0 || g.cfg.height <= 0 {
		g.cfg.width, g.cfg.height = defaultWindowWidth, defaultWindowHeight
	}
	g.out.path = path
	g.out.format = format
	g.presets = make([]widget.Clickable, len(doodle.Palette))
	g.backgrounds = make([]widget.Clickable, len(doodle.BackgroundPalette))

	return g
}

// Run creates the window and processes its events until it gets closed.
func (g *Gui) Run() error {
	w := app.NewWindow(
		app.Title(g.cfg.title),
		app.Size(unit.Dp(float32(g.cfg.width)), unit.Dp(float32(g.cfg.height))),
	)

	var ops op.Ops
	for {
		e := <-w.Events()
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			g.draw(gtx)
			e.Frame(gtx.Ops)
		case key.Event:
			if e.State != key.Press {
				continue
			}
			if g.handleKey(e) {
				w.Invalidate()
			}
		case system.DestroyEvent:
			return e.Err
		}
	}
}

// handleKey translates a key press into a session action.
func (g *Gui) handleKey(e key.Event) bool {
	name := e.Name
	if name == key.NameDeleteForward {
		name = "Delete"
	}
	action := doodle.LookupShortcut(doodle.KeyStroke{
		Name:  name,
		Ctrl:  e.Modifiers.Contain(key.ModShortcut) || e.Modifiers.Contain(key.ModCtrl),
		Shift: e.Modifiers.Contain(key.ModShift),
	})

	switch action {
	case doodle.NoAction:
		return false
	case doodle.ActionSave:
		g.save()
		return true
	}

	changed, err := g.session.Dispatch(action)
	if err != nil {
		g.message = err.Error()
		doodle.Logger().Warn("shortcut failed", "action", action, "error", err)
		return true
	}
	g.message = ""
	return changed
}

// save exports the current drawing to the output path.
func (g *Gui) save() {
	path := g.out.path
	if path == "" {
		path = utils.DefaultFileName(time.Now(), g.out.format.Extension())
	}
	f, err := os.Create(path)
	if err != nil {
		g.message = fmt.Sprintf("save failed: %v", err)
		return
	}
	defer f.Close()

	if err := g.session.Export(f, g.out.format); err != nil {
		g.message = fmt.Sprintf("save failed: %v", err)
		doodle.Logger().Warn("export failed", "path", path, "error", err)
		return
	}
	g.message = "saved as " + path
}

// draw lays out the toolbar, the canvas and the status bar below it.
func (g *Gui) draw(gtx C) D {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(g.drawToolbar),
		layout.Flexed(1, g.drawCanvas),
		layout.Rigid(g.drawStatus),
	)
}

// drawToolbar applies the pending toolbar input to the session, then lays out
// the brush size and opacity sliders followed by the color and page presets.
func (g *Gui) drawToolbar(gtx C) D {
	g.handleToolbar()

	cfg := g.session.Config()
	if !g.size.Dragging() {
		g.size.Value = float32(cfg.BrushSize)
	}
	if !g.opacity.Dragging() {
		g.opacity.Value = float32(cfg.Opacity * 100)
	}

	children := []layout.FlexChild{
		layout.Rigid(g.label(fmt.Sprintf("Size %.0fpx", cfg.BrushSize))),
		layout.Rigid(g.slider(&g.size, doodle.MinBrushSize, doodle.MaxBrushSize)),
		layout.Rigid(g.label(fmt.Sprintf("Opacity %.0f%%", cfg.Opacity*100))),
		layout.Rigid(g.slider(&g.opacity, 0, 100)),
		layout.Rigid(g.label("Color")),
	}
	for i, c := range doodle.Palette {
		children = append(children, layout.Rigid(g.swatch(&g.presets[i], c, c == cfg.Primary)))
	}
	children = append(children, layout.Rigid(g.label("Page")))
	for i, c := range doodle.BackgroundPalette {
		children = append(children, layout.Rigid(g.swatch(&g.backgrounds[i], c, c == cfg.Background)))
	}

	return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

// handleToolbar forwards the slider changes and the preset clicks to the session.
func (g *Gui) handleToolbar() {
	var err error
	if g.size.Changed() {
		err = g.session.SetBrushSize(math.Round(float64(g.size.Value)))
	}
	if g.opacity.Changed() {
		err = g.session.SetOpacity(float64(g.opacity.Value) / 100)
	}
	for i := range g.presets {
		for g.presets[i].Clicked() {
			err = g.session.SelectPreset(i)
		}
	}
	for i := range g.backgrounds {
		for g.backgrounds[i].Clicked() {
			g.session.SetBackground(doodle.BackgroundPalette[i])
		}
	}
	if err != nil {
		g.message = err.Error()
		doodle.Logger().Warn("toolbar update failed", "error", err)
	}
}

func (g *Gui) label(text string) layout.Widget {
	return func(gtx C) D {
		return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(4)}.Layout(gtx, func(gtx C) D {
			return material.Body2(g.theme, text).Layout(gtx)
		})
	}
}

func (g *Gui) slider(f *widget.Float, lo, hi float32) layout.Widget {
	return func(gtx C) D {
		w := gtx.Dp(sliderWidth)
		gtx.Constraints.Min.X, gtx.Constraints.Max.X = w, w
		return material.Slider(g.theme, f, lo, hi).Layout(gtx)
	}
}

// swatch is a clickable color square, framed when selected.
func (g *Gui) swatch(btn *widget.Clickable, c color.NRGBA, selected bool) layout.Widget {
	return func(gtx C) D {
		return layout.UniformInset(unit.Dp(2)).Layout(gtx, func(gtx C) D {
			return material.Clickable(gtx, btn, func(gtx C) D {
				size := gtx.Dp(swatchSize)
				frame := image.Rectangle{Max: image.Pt(size, size)}
				if selected {
					fill(gtx, frame, selectionColor)
					frame = frame.Inset(gtx.Dp(2))
				}
				fill(gtx, frame, c)
				return D{Size: image.Pt(size, size)}
			})
		})
	}
}

func fill(gtx C, r image.Rectangle, c color.NRGBA) {
	area := clip.Rect(r).Push(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	area.Pop()
}

// drawCanvas processes the pointer events and paints the surface.
func (g *Gui) drawCanvas(gtx C) D {
	size := gtx.Constraints.Max
	if size.X > 0 && size.Y > 0 {
		if err := g.session.Resize(size.X, size.Y); err != nil {
			doodle.Logger().Warn("resize failed", "error", err)
		}
	}

	for _, ev := range gtx.Events(g) {
		if e, ok := ev.(pointer.Event); ok {
			g.handlePointer(e)
		}
	}

	area := clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops)
	pointer.InputOp{
		Tag:   g,
		Grab:  false,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Leave | pointer.Cancel,
	}.Add(gtx.Ops)

	zoom := float32(g.session.Viewport().Zoom)
	offset := g.session.Viewport().Offset
	tr := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(zoom, zoom)).
		Offset(f32.Pt(float32(offset.X), float32(offset.Y)))
	transform := op.Affine(tr).Push(gtx.Ops)

	paint.NewImageOp(g.session.Surface().Image()).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	transform.Pop()
	area.Pop()

	return D{Size: size}
}

// handlePointer forwards a pointer event to the session.
func (g *Gui) handlePointer(e pointer.Event) {
	raw := doodle.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}

	switch e.Type {
	case pointer.Press:
		if startsStroke(e) {
			g.session.PointerDown(raw)
		}
	case pointer.Drag:
		g.session.PointerMove(raw)
	case pointer.Release, pointer.Cancel:
		g.session.PointerUp()
	case pointer.Leave:
		g.session.PointerLeave()
	}
	g.cursor = g.session.Hover(raw)
}

// startsStroke reports whether a press begins a drawing interaction.
// Touch presses carry no button state.
func startsStroke(e pointer.Event) bool {
	return e.Source == pointer.Touch || e.Buttons.Contain(pointer.ButtonPrimary)
}

// drawStatus paints the status line.
func (g *Gui) drawStatus(gtx C) D {
	text := g.session.Status(g.cursor)
	if g.message != "" {
		text += " | " + g.message
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			fill(gtx, image.Rectangle{Max: gtx.Constraints.Min}, statusBkgColor)
			return D{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx C) D {
			return material.Body2(g.theme, text).Layout(gtx)
		}),
	)
}
