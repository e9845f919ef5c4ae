package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/wcharczuk/go-chart/v2/drawing"

	cfgpkg "github.com/KaramelBytes/sheetstat/internal/config"
	"github.com/KaramelBytes/sheetstat/internal/logging"
	"github.com/KaramelBytes/sheetstat/internal/plot"
	"github.com/KaramelBytes/sheetstat/internal/shell"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sheetstat",
	Short: "sheetstat: describe spreadsheet columns and plot them",
	Long: `sheetstat loads the first sheet of an Excel workbook (or a CSV/TSV file),
computes descriptive statistics for every numeric column, and draws scatter
plots of two selected columns.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sheetstat/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logger = logging.New(level, cfg.LogFormat, os.Stderr)
}

// settings returns the loaded configuration, or defaults when none loaded.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	return cfg
}

func appLogger() *slog.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}

// backgroundColor resolves a --background override or the configured colour.
func backgroundColor(override string) (drawing.Color, error) {
	v := settings().Background
	if override != "" {
		v = override
	}
	return plot.ParseColor(v)
}

// newShell builds an interactive shell painting to the configured canvas file.
func newShell(output, format, background string) (*shell.Shell, *shell.FileCanvas, error) {
	c := settings()
	bg, err := backgroundColor(background)
	if err != nil {
		return nil, nil, err
	}
	if output == "" {
		output = c.PlotOutput
	}
	if format == "" {
		format = formatFromPath(output, c.PlotFormat)
	}
	f, err := plot.ParseFormat(format)
	if err != nil {
		return nil, nil, err
	}
	canvas := &shell.FileCanvas{Path: output, Format: f}
	sh := shell.New(shell.Options{Background: bg, Width: c.PlotWidth, Height: c.PlotHeight}, canvas, appLogger())
	return sh, canvas, nil
}
