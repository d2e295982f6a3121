package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"gioui.org/app"
	"github.com/esimov/doodle"
	"github.com/esimov/doodle/gui"
	"github.com/esimov/doodle/utils"
)

const HelpBanner = `
┌┬┐┌─┐┌─┐┌┬┐┬  ┌─┐
 │││ ││ │ │││  ├┤
─┴┘└─┘└─┘─┴┘┴─┘└─┘

Raster drawing tool.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	width       = flag.Int("width", 800, "Canvas width")
	height      = flag.Int("height", 600, "Canvas height")
	background  = flag.String("bg", "#ffffff", "Background color")
	primary     = flag.String("color", "#000000", "Primary (brush) color")
	secondary   = flag.String("secondary", "#ffffff", "Secondary color")
	tool        = flag.String("tool", string(doodle.Pen), "Drawing tool: pen, marker, spray or eraser")
	brushSize   = flag.Float64("size", 10, "Brush size")
	opacity     = flag.Int("opacity", 100, "Brush opacity (0-100)")
	source      = flag.String("in", "", "Image to load onto the canvas (file, URL or - for stdin)")
	destination = flag.String("out", "", "Destination (file or - for stdout)")
	format      = flag.String("format", "", "Output format: png, jpg, webp, bmp or pdf")
	quality     = flag.Int("quality", doodle.DefaultQuality, "Quality of the lossy output formats (1-100)")
	history     = flag.Int("history", doodle.DefaultHistoryCapacity, "Number of undo steps")
	headless    = flag.Bool("headless", false, "Run without opening a window")
	debug       = flag.Bool("debug", false, "Print debug logs")
	version     = flag.Bool("version", false, "Print the version and exit")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Printf("doodle version: %s\n", Version)
		return
	}

	if *debug {
		doodle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := parseConfig()
	if err != nil {
		flag.Usage()
		log.Fatal(utils.DecorateText(fmt.Sprintf("\nInvalid drawing options: %v", err), utils.ErrorMessage))
	}

	out := *destination
	if out == "" {
		out = utils.DefaultFileName(time.Now(), "png")
		if *format != "" {
			if f, err := doodle.ParseFormat(*format); err == nil {
				out = utils.DefaultFileName(time.Now(), f.Extension())
			}
		}
	}
	outFormat, err := resolveFormat(*format, out)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}

	session, err := doodle.NewSession(*width, *height, cfg,
		doodle.WithHistoryCapacity(*history),
		doodle.WithQuality(*quality),
	)
	if err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("Unable to create the canvas: %v", err), utils.ErrorMessage))
	}

	if *headless {
		now := time.Now()
		err := process(session, *source, out, outFormat)
		printStatus(out, err)
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
		return
	}

	if *source != "" {
		if err := load(session, *source); err != nil {
			log.Fatal(utils.DecorateText(fmt.Sprintf("Failed to load the source image: %v", err), utils.ErrorMessage))
		}
	}
	if out == pipeName {
		log.Fatal(utils.DecorateText("`-` can not be used as destination in windowed mode", utils.ErrorMessage))
	}

	// Launch the Gio GUI thread.
	go func() {
		w := gui.NewGUI(session, out, outFormat)
		if err := w.Run(); err != nil {
			log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
		os.Exit(0)
	}()
	app.Main()
}

// parseConfig builds the drawing options from the command line flags.
func parseConfig() (doodle.DrawingConfig, error) {
	cfg := doodle.DefaultConfig()

	t, err := doodle.ParseTool(*tool)
	if err != nil {
		return cfg, err
	}

	bg, err := utils.HexToNRGBA(*background)
	if err != nil {
		return cfg, fmt.Errorf("background: %w", err)
	}
	fg, err := utils.HexToNRGBA(*primary)
	if err != nil {
		return cfg, fmt.Errorf("color: %w", err)
	}
	sc, err := utils.HexToNRGBA(*secondary)
	if err != nil {
		return cfg, fmt.Errorf("secondary color: %w", err)
	}
	if *opacity < 0 || *opacity > 100 {
		return cfg, fmt.Errorf("opacity should be between 0 and 100, got %d", *opacity)
	}

	return cfg.
		WithTool(t).
		WithBackground(bg).
		WithPrimary(fg).
		WithSecondary(sc).
		WithBrushSize(*brushSize).
		WithOpacity(float64(*opacity) / 100), nil
}

// resolveFormat picks the output format from the -format flag,
// falling back to the destination file extension.
func resolveFormat(name, out string) (doodle.Format, error) {
	if name != "" {
		return doodle.ParseFormat(name)
	}
	if out == pipeName {
		return doodle.PNG, nil
	}
	return doodle.FormatFromPath(out)
}

// printStatus displays the relevant information about the export.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprint(os.Stderr,
			utils.DecorateText("\nError exporting the drawing: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		os.Exit(1)
	}
	if fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe drawing has been saved as: %s %s\n",
			utils.DecorateText(fname, utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}
