// Package config loads the settings shared by the down commands from a YAML
// file.
//
//	render:
//	  options: [smart, hardbreaks]
//	  width: 80
//	tokenize:
//	  gfm: true
//	  validateUTF8: true
//	dump:
//	  color: auto
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/mdforge/down/render"
	"github.com/mdforge/down/tokenize"
)

const DefaultFile = ".down.yaml"

var ErrConfig = errors.New("config error")

type Config struct {
	Render   RenderConfig   `yaml:"render" json:"render"`
	Tokenize TokenizeConfig `yaml:"tokenize" json:"tokenize"`
	Dump     DumpConfig     `yaml:"dump" json:"dump"`
}

type RenderConfig struct {
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
	Width   int      `yaml:"width,omitempty" json:"width,omitempty"`
}

type TokenizeConfig struct {
	GFM          bool `yaml:"gfm" json:"gfm"`
	ValidateUTF8 bool `yaml:"validateUTF8" json:"validateUTF8"`
	Smart        bool `yaml:"smart" json:"smart"`
}

type DumpConfig struct {
	Color ColorMode `yaml:"color,omitempty" json:"color,omitempty"`
}

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func Default() *Config {
	return &Config{
		Tokenize: TokenizeConfig{GFM: true},
		Dump:     DumpConfig{Color: ColorAuto},
	}
}

// Load reads the file at path over the defaults. An empty path reads
// DefaultFile from the working directory if it exists.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	d, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// fields are errors.
func Parse(d []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(d, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := render.ParseOptions(c.Render.Options); err != nil {
		return fmt.Errorf("%w: render.options: %w", ErrConfig, err)
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("%w: render.width must not be negative, got %d", ErrConfig, c.Render.Width)
	}
	switch c.Dump.Color {
	case "":
		c.Dump.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: dump.color must be auto, always or never, got %q", ErrConfig, c.Dump.Color)
	}
	return nil
}

func (c *Config) RenderOptions() ([]render.Option, error) {
	opts, err := render.ParseOptions(c.Render.Options)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if c.Render.Width > 0 {
		opts = append(opts, render.Width(c.Render.Width))
	}
	return opts, nil
}

func (c *Config) TokenizeOptions() []tokenize.Option {
	return []tokenize.Option{
		tokenize.WithGFM(c.Tokenize.GFM),
		tokenize.WithValidateUTF8(c.Tokenize.ValidateUTF8),
		tokenize.WithSmart(c.Tokenize.Smart),
	}
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
