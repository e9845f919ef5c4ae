package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Figure and plot area fill colour, "#rrggbb".
	Background string `mapstructure:"background" yaml:"background"`
	PlotWidth  int    `mapstructure:"plot_width" yaml:"plot_width"`
	PlotHeight int    `mapstructure:"plot_height" yaml:"plot_height"`
	// Canvas file the interactive shell paints the chart to.
	PlotOutput string `mapstructure:"plot_output" yaml:"plot_output"`
	PlotFormat string `mapstructure:"plot_format" yaml:"plot_format"`
	// Significant digits in statistics output.
	Precision int `mapstructure:"precision" yaml:"precision"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".sheetstat"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.sheetstat/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file (cfgFile or ~/.sheetstat/config.yaml) > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SHEETSTAT")
	v.AutomaticEnv()

	v.SetDefault("background", "#efefef")
	v.SetDefault("plot_width", 1500)
	v.SetDefault("plot_height", 1050)
	v.SetDefault("plot_output", "chart.png")
	v.SetDefault("plot_format", "png")
	v.SetDefault("precision", 6)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Default returns the built-in configuration without reading files or env.
func Default() *Global {
	return &Global{
		Background: "#efefef",
		PlotWidth:  1500,
		PlotHeight: 1050,
		PlotOutput: "chart.png",
		PlotFormat: "png",
		Precision:  6,
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}
