package config

// Run configuration
// Sources, lowest to highest priority:
// 1. built-in defaults
// 2. scatter.yaml in the working directory, or the file given by --config
// 3. .env file and SCATTER_* environment variables
// 4. command-line flags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"scatter-drawio/internal/infra/csvrows"
	"scatter-drawio/internal/scatter"
)

const (
	EnvPrefix      = "SCATTER"
	DefaultOutput  = "scatterplot.drawio"
	DefaultLogDir  = "logs"
	configFileName = "scatter"
)

var (
	// ErrMissingInput is returned when no input path was configured.
	ErrMissingInput = errors.New("input path is required (--input)")
	// ErrInvalidCanvas wraps canvas geometry that leaves no room to plot.
	ErrInvalidCanvas = errors.New("invalid canvas")
)

// Config is the full set of options for one conversion run.
type Config struct {
	Input      string `mapstructure:"input"`
	Output     string `mapstructure:"output"`
	Title      string `mapstructure:"title"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Padding    int    `mapstructure:"padding"`
	AxisOffset int    `mapstructure:"axis_offset"`
	Delimiter  string `mapstructure:"delimiter"`
	Preview    string `mapstructure:"preview"`
	Debug      bool   `mapstructure:"debug"`
	LogDir     string `mapstructure:"log_dir"`
	NoColor    bool   `mapstructure:"no_color"`

	PreviewScale float64 `mapstructure:"preview_scale"`
	PreviewFont  string  `mapstructure:"preview_font"`
}

// Canvas returns the drawing area described by c.
func (c *Config) Canvas() scatter.Canvas {
	return scatter.Canvas{
		Width:      c.Width,
		Height:     c.Height,
		Padding:    c.Padding,
		AxisOffset: c.AxisOffset,
		Title:      c.Title,
	}
}

// DelimiterRune returns the parsed field delimiter.
func (c *Config) DelimiterRune() (rune, error) {
	return csvrows.ParseDelimiter(c.Delimiter)
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return ErrMissingInput
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if err := c.Canvas().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCanvas, err)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if c.PreviewScale <= 0 {
		return fmt.Errorf("preview scale must be positive, got %v", c.PreviewScale)
	}
	return nil
}

// RegisterFlags defines the conversion flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "", "Input CSV file path (env: SCATTER_INPUT)")
	fs.StringP("output", "o", DefaultOutput, "Output draw.io file path (env: SCATTER_OUTPUT)")
	fs.StringP("title", "t", scatter.DefaultTitle, "Chart title (env: SCATTER_TITLE)")
	fs.IntP("width", "w", scatter.DefaultWidth, "Canvas width in pixels (env: SCATTER_WIDTH)")
	fs.IntP("height", "h", scatter.DefaultHeight, "Canvas height in pixels (env: SCATTER_HEIGHT)")
	fs.Int("padding", scatter.DefaultPadding, "Padding around the plot area in pixels (env: SCATTER_PADDING)")
	fs.Int("axis-offset", scatter.DefaultAxisOffset, "Distance of the axes from the plot area in pixels (env: SCATTER_AXIS_OFFSET)")
	fs.String("delimiter", ",", `Field delimiter, "\t" or "tab" for TSV (env: SCATTER_DELIMITER)`)
	fs.String("preview", "", "Also render a PNG preview to this path (env: SCATTER_PREVIEW)")
	fs.Float64("preview-scale", 1, "Pixel density of the PNG preview (env: SCATTER_PREVIEW_SCALE)")
	fs.String("preview-font", "", "TrueType font for preview labels (env: SCATTER_PREVIEW_FONT)")
	fs.Bool("debug", false, "Verbose console logging (env: SCATTER_DEBUG)")
	fs.String("log-dir", DefaultLogDir, "Directory for app.log, empty to disable (env: SCATTER_LOG_DIR)")
	fs.Bool("no-color", false, "Plain console output without ANSI colors (env: SCATTER_NO_COLOR)")
	fs.String("config", "", "YAML config file (default ./scatter.yaml if present)")
}

// flagKeys maps viper keys to flag names where they differ.
var flagKeys = map[string]string{
	"input":         "input",
	"output":        "output",
	"title":         "title",
	"width":         "width",
	"height":        "height",
	"padding":       "padding",
	"axis_offset":   "axis-offset",
	"delimiter":     "delimiter",
	"preview":       "preview",
	"preview_scale": "preview-scale",
	"preview_font":  "preview-font",
	"debug":         "debug",
	"log_dir":       "log-dir",
	"no_color":      "no-color",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("title", scatter.DefaultTitle)
	v.SetDefault("width", scatter.DefaultWidth)
	v.SetDefault("height", scatter.DefaultHeight)
	v.SetDefault("padding", scatter.DefaultPadding)
	v.SetDefault("axis_offset", scatter.DefaultAxisOffset)
	v.SetDefault("delimiter", ",")
	v.SetDefault("preview", "")
	v.SetDefault("preview_scale", 1.0)
	v.SetDefault("preview_font", "")
	v.SetDefault("debug", false)
	v.SetDefault("log_dir", DefaultLogDir)
	v.SetDefault("no_color", false)
}

// Load merges defaults, config file, environment and the flags in fs, then
// validates the result. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	if err := readConfigFile(v, fs); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	var path string
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
