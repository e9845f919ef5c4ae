package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/sheetstat/internal/dataset"
	"github.com/KaramelBytes/sheetstat/internal/plot"
	"github.com/KaramelBytes/sheetstat/internal/utils"
)

var (
	plotX          string
	plotY          string
	plotOutput     string
	plotFormat     string
	plotBackground string
	plotWidth      int
	plotHeight     int
)

var plotCmd = &cobra.Command{
	Use:   "plot <file>",
	Short: "Render a scatter plot of two columns to an image file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		bg, err := backgroundColor(plotBackground)
		if err != nil {
			return err
		}
		out := plotOutput
		if out == "" {
			out = c.PlotOutput
		}
		format := plotFormat
		if format == "" {
			format = formatFromPath(out, c.PlotFormat)
		}
		f, err := plot.ParseFormat(format)
		if err != nil {
			return err
		}
		w, h := c.PlotWidth, c.PlotHeight
		if plotWidth > 0 {
			w = plotWidth
		}
		if plotHeight > 0 {
			h = plotHeight
		}

		ds, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		fig := plot.NewFigure(w, h)
		if err := fig.Scatter(ds, plotX, plotY, bg); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := fig.Render(&buf, f); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		appLogger().Debug("chart written", "path", out, "points", len(fig.Points()), "format", string(f))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %q (%d points) to %s\n", fig.Title(), len(fig.Points()), out)
		return nil
	},
}

// formatFromPath picks svg for .svg paths and otherwise falls back to def.
func formatFromPath(path, def string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return string(plot.SVG)
	case ".png":
		return string(plot.PNG)
	}
	return def
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVar(&plotX, "x", "", "field for the horizontal axis")
	plotCmd.Flags().StringVar(&plotY, "y", "", "field for the vertical axis")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "image path (default from config plot_output)")
	plotCmd.Flags().StringVar(&plotFormat, "format", "", "png | svg (default from output extension, then config)")
	plotCmd.Flags().StringVar(&plotBackground, "background", "", "figure background colour, e.g. #efefef")
	plotCmd.Flags().IntVar(&plotWidth, "width", 0, "image width in pixels (overrides config)")
	plotCmd.Flags().IntVar(&plotHeight, "height", 0, "image height in pixels (overrides config)")
	_ = plotCmd.MarkFlagRequired("x")
	_ = plotCmd.MarkFlagRequired("y")
}
