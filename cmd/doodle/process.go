package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/esimov/doodle"
	"github.com/esimov/doodle/utils"
	"golang.org/x/term"
)

// downloadTimeout limits the time spent on fetching a remote source image.
const downloadTimeout = 30 * time.Second

// process runs the headless pipeline: the source image (if any) is loaded onto
// the canvas, then the flattened drawing is written to the destination.
func process(s *doodle.Session, in, out string, f doodle.Format) error {
	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ DOODLE", utils.StatusMessage),
		utils.DecorateText("is rendering the drawing...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChan)
	go func() {
		if _, ok := <-signalChan; ok {
			spinner.RestoreCursor()
			os.Exit(1)
		}
	}()

	spinner.Start()
	err := func() error {
		if in != "" {
			if err := load(s, in); err != nil {
				return err
			}
		}
		dst, err := openDestination(out)
		if err != nil {
			return err
		}
		if err := s.Export(dst, f); err != nil {
			dst.Close()
			return err
		}
		return dst.Close()
	}()

	if err == nil {
		spinner.StopMsg = fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ DOODLE", utils.StatusMessage),
			utils.DecorateText("is rendering the drawing... ✔", utils.DefaultMessage))
	}
	spinner.Stop()

	return err
}

// load imports the source image onto the session canvas.
func load(s *doodle.Session, in string) error {
	src, cleanup, err := openSource(in)
	if err != nil {
		return err
	}
	defer cleanup()

	return s.Import(src)
}

// openSource opens the source image, be it a URL, the stdin pipe or a regular file.
// The returned cleanup function releases the underlying resources.
func openSource(in string) (io.Reader, func(), error) {
	// Check if the source path is a local image or URL.
	if utils.IsValidUrl(in) {
		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()

		f, err := utils.DownloadImage(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {
			f.Close()
			os.Remove(f.Name())
		}, nil
	}

	// Check if the source is a pipe name or a regular file.
	if in == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, func() {}, nil
	}

	ctype, err := utils.DetectContentType(in)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	// TIFF files are not recognized by the content sniffer, the decoder has the final word on them.
	if !strings.Contains(ctype, "image") && ctype != "application/octet-stream" {
		return nil, nil, fmt.Errorf("%s: %w", in, doodle.ErrNotImage)
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// openDestination returns a writable destination: the stdout pipe or a regular file.
func openDestination(out string) (io.WriteCloser, error) {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return nopCloser{os.Stdout}, nil
	}

	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
