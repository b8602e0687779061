package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/user/refindex_go/internal/report"
)

// EnvPrefix is prepended to every environment variable, e.g. REFINDEX_OUTPUT.
const EnvPrefix = "REFINDEX"

// Config holds all settings for one run.
type Config struct {
	Plot    PlotConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// PlotConfig holds figure text and size. Width and Height are in points.
type PlotConfig struct {
	Title  string
	XLabel string
	YLabel string
	Width  float64
	Height float64
}

// OutputConfig holds output destinations. Empty Image means "next to the input".
type OutputConfig struct {
	Image  string
	Report string
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"output":    "output",
	"report":    "report",
	"width":     "width",
	"height":    "height",
	"title":     "title",
	"x-label":   "x_label",
	"y-label":   "y_label",
	"log-level": "log_level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "")
	v.SetDefault("report", "")
	v.SetDefault("width", 648.0) // 9in
	v.SetDefault("height", 324.0)
	v.SetDefault("title", report.DefaultTitle)
	v.SetDefault("x_label", report.DefaultXLabel)
	v.SetDefault("y_label", report.DefaultYLabel)
	v.SetDefault("log_level", "info")
}

// Load resolves configuration from defaults, an optional config file,
// REFINDEX_* environment variables and the given flags, in increasing
// priority. flags may be nil.
func Load(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Plot: PlotConfig{
			Title:  v.GetString("title"),
			XLabel: v.GetString("x_label"),
			YLabel: v.GetString("y_label"),
			Width:  v.GetFloat64("width"),
			Height: v.GetFloat64("height"),
		},
		Output: OutputConfig{
			Image:  v.GetString("output"),
			Report: v.GetString("report"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("log_level"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("invalid plot size %gx%g: width and height must be positive", c.Plot.Width, c.Plot.Height)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	return nil
}
