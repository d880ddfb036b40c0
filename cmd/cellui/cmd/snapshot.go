package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/cellui/cmd/cellui/internal/demo"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/debug"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
)

var (
	snapWidth  int
	snapHeight int
	snapFormat string
	snapFrames int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the demo without a terminal",
	Long: `Render the demo headless and print the result.

The screen format prints the painted cells. json, yaml and text print the
widget tree of the last frame with ids, rects and layers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return renderSnapshot(cmd.OutOrStdout(), r.Title, snapWidth, snapHeight, snapFrames, snapFormat)
	},
}

func init() {
	f := snapshotCmd.Flags()
	f.IntVar(&snapWidth, "width", 60, "screen width in cells")
	f.IntVar(&snapHeight, "height", 16, "screen height in cells")
	f.IntVar(&snapFrames, "frames", 2, "frames to run before printing")
	f.StringVarP(&snapFormat, "format", "o", "screen", "output format: screen, json, yaml or text")
}

func renderSnapshot(w io.Writer, title string, width, height, frames int, format string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("size must be positive (got %dx%d)", width, height)
	}
	frames = max(frames, 1)

	e := core.New(geom.RectFromLTWH(0, 0, width, height))
	app := demo.New(title)
	for range frames {
		e.Frame(app.Build)
	}

	if strings.EqualFold(format, "screen") {
		s := paint.NewSurface(geom.Vec{X: width, Y: height})
		e.Paint(s)
		for y := range height {
			fmt.Fprintln(w, strings.TrimRight(s.Row(y), " "))
		}
		return nil
	}

	f, err := debug.ParseFormat(format)
	if err != nil {
		return err
	}
	data, err := debug.Encode(e.Snapshot(), f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
