// Package config loads DigitPad settings from an optional TOML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvEndpoint   = "DIGITPAD_ENDPOINT"
	EnvUploadSize = "DIGITPAD_UPLOAD_SIZE"
)

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

type Canvas struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Ink        string `toml:"ink"`
}

type Brush struct {
	Default int `toml:"default"`
	Min     int `toml:"min"`
	Max     int `toml:"max"`
}

type Effects struct {
	Particles int `toml:"particles"`
	Confetti  int `toml:"confetti"`
}

type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Config struct {
	Endpoint        string   `toml:"endpoint"`
	RequestTimeout  Duration `toml:"request_timeout"`
	Discover        bool     `toml:"discover"`
	DiscoverService string   `toml:"discover_service"`
	UploadSize      int      `toml:"upload_size"`
	CelebrateAbove  float64  `toml:"celebrate_above"`
	Canvas          Canvas   `toml:"canvas"`
	Brush           Brush    `toml:"brush"`
	Effects         Effects  `toml:"effects"`
	Window          Window   `toml:"window"`
}

func Default() Config {
	return Config{
		Endpoint:        "http://localhost:5000/api/predict-digit",
		DiscoverService: "_digitpredict._tcp",
		CelebrateAbove:  90,
		Canvas: Canvas{
			Width:      280,
			Height:     280,
			Background: "#000000",
			Ink:        "#ffffff",
		},
		Brush:   Brush{Default: 15, Min: 5, Max: 40},
		Effects: Effects{Particles: 30, Confetti: 50},
		Window:  Window{Width: 900, Height: 560},
	}
}

// Load returns the defaults overlaid with the TOML file at path (if path
// is not empty) and then with environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			keys := make([]string, len(undec))
			for i, k := range undec {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	cfg.Endpoint = getEnv(EnvEndpoint, cfg.Endpoint)
	if v := getEnv(EnvUploadSize, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUploadSize, err)
		}
		cfg.UploadSize = n
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func (c Config) Validate() error {
	var errs []error
	if c.Endpoint == "" && !c.Discover {
		errs = append(errs, errors.New("endpoint is empty and discovery is off"))
	}
	if c.RequestTimeout.Duration < 0 {
		errs = append(errs, errors.New("request_timeout must not be negative"))
	}
	if c.UploadSize < 0 {
		errs = append(errs, errors.New("upload_size must not be negative"))
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d is not positive", c.Canvas.Width, c.Canvas.Height))
	}
	if _, err := ParseColor(c.Canvas.Background); err != nil {
		errs = append(errs, fmt.Errorf("canvas.background: %w", err))
	}
	if _, err := ParseColor(c.Canvas.Ink); err != nil {
		errs = append(errs, fmt.Errorf("canvas.ink: %w", err))
	}
	if c.Brush.Min <= 0 || c.Brush.Min > c.Brush.Max {
		errs = append(errs, fmt.Errorf("brush range [%d, %d] is invalid", c.Brush.Min, c.Brush.Max))
	} else if c.Brush.Default < c.Brush.Min || c.Brush.Default > c.Brush.Max {
		errs = append(errs, fmt.Errorf("brush.default %d is outside [%d, %d]", c.Brush.Default, c.Brush.Min, c.Brush.Max))
	}
	if c.Effects.Particles < 0 || c.Effects.Confetti < 0 {
		errs = append(errs, errors.New("effect counts must not be negative"))
	}
	return errors.Join(errs...)
}

// BackgroundColor and InkColor assume a validated config.
func (c Config) BackgroundColor() color.NRGBA {
	col, _ := ParseColor(c.Canvas.Background)
	return col
}

func (c Config) InkColor() color.NRGBA {
	col, _ := ParseColor(c.Canvas.Ink)
	return col
}

// ParseColor reads "#rrggbb" or "#rgb".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
