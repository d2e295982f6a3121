package doodle

import (
	"fmt"
	"strings"
)

// Action is a command triggered by a keyboard shortcut or a menu entry.
type Action int

const (
	NoAction Action = iota
	ActionUndo
	ActionRedo
	ActionSave
	ActionNew
	ActionClear
	ActionZoomIn
	ActionZoomOut
	ActionZoomReset
	ActionPen
	ActionMarker
	ActionSpray
	ActionEraser
	ActionSwapColors
	ActionBrushGrow
	ActionBrushShrink
	ActionOpacityUp
	ActionOpacityDown
	ActionNextBackground
	ActionPreset1
	ActionPreset2
	ActionPreset3
	ActionPreset4
	ActionPreset5
	ActionPreset6
	ActionPreset7
	ActionPreset8
	ActionPreset9
	ActionPreset10
)

// presetKeys binds the number keys to the palette colors.
var presetKeys = map[string]Action{
	"1": ActionPreset1,
	"2": ActionPreset2,
	"3": ActionPreset3,
	"4": ActionPreset4,
	"5": ActionPreset5,
	"6": ActionPreset6,
	"7": ActionPreset7,
	"8": ActionPreset8,
	"9": ActionPreset9,
	"0": ActionPreset10,
}

var actionNames = map[Action]string{
	NoAction:         "none",
	ActionUndo:       "undo",
	ActionRedo:       "redo",
	ActionSave:       "save",
	ActionNew:        "new",
	ActionClear:      "clear",
	ActionZoomIn:     "zoom-in",
	ActionZoomOut:    "zoom-out",
	ActionZoomReset:  "zoom-reset",
	ActionPen:        "pen",
	ActionMarker:     "marker",
	ActionSpray:      "spray",
	ActionEraser:     "eraser",
	ActionSwapColors: "swap-colors",

	ActionBrushGrow:      "brush-grow",
	ActionBrushShrink:    "brush-shrink",
	ActionOpacityUp:      "opacity-up",
	ActionOpacityDown:    "opacity-down",
	ActionNextBackground: "next-background",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	if a >= ActionPreset1 && a <= ActionPreset10 {
		return fmt.Sprintf("preset-%d", int(a-ActionPreset1)+1)
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// KeyStroke is a toolkit independent description of a key press.
// Name holds the key name, e.g. "Z", "+" or "Delete".
type KeyStroke struct {
	Name  string
	Ctrl  bool
	Shift bool
}

// LookupShortcut returns the action bound to the key stroke, or NoAction.
func LookupShortcut(k KeyStroke) Action {
	name := strings.ToLower(k.Name)

	if k.Ctrl {
		switch name {
		case "z":
			if k.Shift {
				return ActionRedo
			}
			return ActionUndo
		case "y":
			return ActionRedo
		case "s":
			return ActionSave
		case "n":
			return ActionNew
		case "+", "=":
			return ActionZoomIn
		case "-":
			return ActionZoomOut
		case "0":
			return ActionZoomReset
		case "delete":
			return ActionClear
		}
		return NoAction
	}

	switch name {
	case "p":
		return ActionPen
	case "m":
		return ActionMarker
	case "s":
		return ActionSpray
	case "e":
		return ActionEraser
	case "x":
		return ActionSwapColors
	case "b":
		return ActionNextBackground
	case "]":
		return ActionBrushGrow
	case "[":
		return ActionBrushShrink
	case ".":
		return ActionOpacityUp
	case ",":
		return ActionOpacityDown
	}
	if a, ok := presetKeys[name]; ok {
		return a
	}
	return NoAction
}

// Dispatch executes the action on the session and reports whether the surface
// or the view needs to be repainted. Saving involves the caller's output
// destination, so ActionSave is left to the caller and reports false.
func (s *Session) Dispatch(a Action) (bool, error) {
	switch a {
	case ActionUndo:
		return s.Undo()
	case ActionRedo:
		return s.Redo()
	case ActionNew:
		s.New()
	case ActionClear:
		s.Clear()
	case ActionZoomIn:
		s.viewport.ZoomIn()
	case ActionZoomOut:
		s.viewport.ZoomOut()
	case ActionZoomReset:
		s.viewport.ResetZoom()
	case ActionPen:
		return true, s.SetTool(Pen)
	case ActionMarker:
		return true, s.SetTool(Marker)
	case ActionSpray:
		return true, s.SetTool(Spray)
	case ActionEraser:
		return true, s.SetTool(Eraser)
	case ActionSwapColors:
		s.SwapColors()
	case ActionBrushGrow:
		return true, s.SetBrushSize(s.config.BrushSize + BrushSizeStep)
	case ActionBrushShrink:
		return true, s.SetBrushSize(s.config.BrushSize - BrushSizeStep)
	case ActionOpacityUp:
		return true, s.SetOpacity(s.config.Opacity + OpacityStep)
	case ActionOpacityDown:
		return true, s.SetOpacity(s.config.Opacity - OpacityStep)
	case ActionNextBackground:
		s.NextBackground()
	default:
		if a >= ActionPreset1 && a <= ActionPreset10 {
			return true, s.SelectPreset(int(a - ActionPreset1))
		}
		return false, nil
	}
	return true, nil
}
