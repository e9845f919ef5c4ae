package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/sheetstat/internal/config"
	"github.com/KaramelBytes/sheetstat/internal/plot"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set sheetstat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "background: %s\n", c.Background)
		fmt.Fprintf(out, "plot_width: %d\n", c.PlotWidth)
		fmt.Fprintf(out, "plot_height: %d\n", c.PlotHeight)
		fmt.Fprintf(out, "plot_output: %s\n", c.PlotOutput)
		fmt.Fprintf(out, "plot_format: %s\n", c.PlotFormat)
		fmt.Fprintf(out, "precision: %d\n", c.Precision)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "background":
			if _, err := plot.ParseColor(val); err != nil {
				return err
			}
			cfg.Background = val
		case "plot_width", "plot_height", "precision":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "plot_width":
				cfg.PlotWidth = i
			case "plot_height":
				cfg.PlotHeight = i
			default:
				cfg.Precision = i
			}
		case "plot_output":
			cfg.PlotOutput = val
		case "plot_format":
			f, err := plot.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.PlotFormat = string(f)
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				cfg.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
