/*
Package doodle is a raster drawing library, providing the core of a simple paint
application: a fixed size drawing surface, a stroke renderer with pen, marker, spray
and eraser tools, and a bounded undo/redo history of flattened surface snapshots.

The package ships with a command line interface which can open a desktop window
for free hand drawing or can run headless, importing an image onto a canvas and
exporting the result to PNG, JPEG, WEBP, BMP or PDF. To check the supported flags type:

	$ doodle --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/doodle"
	)

	func main() {
		s, err := doodle.NewSession(800, 600, doodle.DefaultConfig())
		if err != nil {
			fmt.Printf("Error creating the session: %s", err.Error())
			return
		}

		s.PointerDown(doodle.Point{X: 10, Y: 10})
		s.PointerMove(doodle.Point{X: 200, Y: 120})
		s.PointerUp()

		if err := s.Export(os.Stdout, doodle.PNG); err != nil {
			fmt.Printf("Error exporting the drawing: %s", err.Error())
		}
	}
*/
package doodle
