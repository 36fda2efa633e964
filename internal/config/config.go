package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TOUCHSHOW_PREFIX.
const EnvPrefix = "TOUCHSHOW"

// Config is the resolved runtime configuration.
type Config struct {
	Prefix  string `mapstructure:"prefix"`
	Radius  int    `mapstructure:"radius"`
	Mapping string `mapstructure:"mapping"`

	Background string `mapstructure:"background"`
	Fill       string `mapstructure:"fill"`
	Border     string `mapstructure:"border"`
	Text       string `mapstructure:"text"`

	LogLevel string `mapstructure:"logLevel"`

	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	Scale  int `mapstructure:"scale"`

	Headless bool   `mapstructure:"headless"`
	Hz       int    `mapstructure:"hz"`
	Ticks    uint64 `mapstructure:"ticks"`
	Script   string `mapstructure:"script"`
	Snapshot string `mapstructure:"snapshot"`
}

// SetDefaults installs default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("prefix", "touch")
	v.SetDefault("radius", 12)
	v.SetDefault("mapping", "positional")

	v.SetDefault("background", "#101418")
	v.SetDefault("fill", "#CCCCCC")
	v.SetDefault("border", "#333333")
	v.SetDefault("text", "#333333")

	v.SetDefault("logLevel", "info")

	v.SetDefault("width", 480)
	v.SetDefault("height", 320)
	v.SetDefault("scale", 2)

	v.SetDefault("headless", false)
	v.SetDefault("hz", 60)
	v.SetDefault("ticks", 0)
	v.SetDefault("script", "")
	v.SetDefault("snapshot", "")
}

// Load resolves configuration from defaults, an optional config file,
// TOUCHSHOW_* environment variables and flags, in increasing precedence.
//
// An empty path skips the config file.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(path, flags)
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

// Watch loads the config file at path and reloads it whenever it changes.
// Every reload that passes validation is handed to onChange; failed reloads
// go to onError and leave the previous values in effect. Both callbacks run
// on the watcher goroutine.
func Watch(path string, flags *pflag.FlagSet, onChange func(Config), onError func(error)) error {
	if path == "" {
		return errors.New("watch: no config file")
	}
	v, err := newViper(path, flags)
	if err != nil {
		return err
	}
	if _, err := decode(v); err != nil {
		return err
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
	return nil
}

func newViper(path string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
		if f := flags.Lookup("log-level"); f != nil {
			if err := v.BindPFlag("logLevel", f); err != nil {
				return nil, fmt.Errorf("bind flags: %w", err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values that cannot be rendered. An invalid prefix is not an
// error; it falls back to the default when the pool is built.
func (c Config) Validate() error {
	var errs []error
	for _, kv := range []struct{ key, val string }{
		{"background", c.Background},
		{"fill", c.Fill},
		{"border", c.Border},
		{"text", c.Text},
	} {
		if _, err := ParseColor(kv.val); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kv.key, err))
		}
	}
	if c.Radius < 0 {
		errs = append(errs, fmt.Errorf("radius: must not be negative, got %d", c.Radius))
	} else if limit := c.maxRadius(); c.Radius > limit {
		errs = append(errs, fmt.Errorf("radius: must be at most %d for a %dx%d framebuffer, got %d",
			limit, c.Width, c.Height, c.Radius))
	}
	if c.Hz < 0 {
		errs = append(errs, fmt.Errorf("hz: must not be negative, got %d", c.Hz))
	}
	switch c.Mapping {
	case "", "positional", "sticky":
	default:
		errs = append(errs, fmt.Errorf("mapping: unknown mode %q", c.Mapping))
	}
	return errors.Join(errs...)
}

// maxRadius is half the smaller framebuffer side. Unset sides use the host
// defaults of 480x320.
func (c Config) maxRadius() int {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 480
	}
	if h <= 0 {
		h = 320
	}
	return min(w, h) / 2
}

// ParseColor parses "#RRGGBB" or "RRGGBB".
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF}, nil
}

// MustColor parses s and falls back to fallback on error.
func MustColor(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
