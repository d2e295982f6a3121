package doodle

import (
	"fmt"
	"image"
	"strings"
)

// Status describes the session in a single line, as displayed on the status bar:
// the active tool and brush size, the pointer position, the zoom level and the
// availability of undo and redo.
func (s *Session) Status(cursor image.Point) string {
	tool := string(s.config.Tool)
	if tool != "" {
		tool = strings.ToUpper(tool[:1]) + tool[1:]
	}

	var hist []string
	if s.history.CanUndo() {
		hist = append(hist, "undo")
	}
	if s.history.CanRedo() {
		hist = append(hist, "redo")
	}
	if len(hist) == 0 {
		hist = append(hist, "-")
	}

	return fmt.Sprintf("Tool: %s | Size: %gpx | X: %d, Y: %d | %d%% | %s",
		tool, s.config.BrushSize, cursor.X, cursor.Y, s.viewport.Percent(), strings.Join(hist, "/"),
	)
}
