package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/mdforge/down/config"
	"github.com/mdforge/down/render"
	"github.com/mdforge/down/tokenize"
	"github.com/mdforge/down/visit"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='config file (default .down.yaml if present)'"`
	Color      bool   `cli:"name=color desc='output with color'"`

	Out      string
	CloseOut func() error

	// loaded lazily from ConfigFile
	settings *config.Config

	Main *cli.Command
}

func (cfg *MainConfig) load() (*config.Config, error) {
	if cfg.settings != nil {
		return cfg.settings, nil
	}
	s, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg.settings = s
	return s, nil
}

func (cfg *MainConfig) tokenizeOpts() ([]tokenize.Option, error) {
	s, err := cfg.load()
	if err != nil {
		return nil, err
	}
	return s.TokenizeOptions(), nil
}

// useColor decides whether output to w is colored: -color forces it,
// otherwise the dump.color setting applies, with auto coloring terminals
// only.
func (cfg *MainConfig) useColor(w io.Writer) (bool, error) {
	if cfg.Color {
		return true, nil
	}
	s, err := cfg.load()
	if err != nil {
		return false, err
	}
	switch s.Dump.Color {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return false, nil
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
}

func (cfg *MainConfig) dumpOpts(w io.Writer) ([]visit.DumpOption, error) {
	ok, err := cfg.useColor(w)
	if err != nil || !ok {
		return nil, err
	}
	// fatih/color disables itself when stdout is not a terminal
	color.NoColor = false
	return []visit.DumpOption{visit.DumpColors(visit.NewColors())}, nil
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type FmtConfig struct {
	*MainConfig

	D     bool   `cli:"name=d desc='print a diff instead of the formatted document'"`
	W     bool   `cli:"name=w desc='write the result to the source file'"`
	R     string `cli:"name=r desc='comma separated render options, overriding the config file'"`
	Width int    `cli:"name=width desc='wrap paragraphs at this many columns'"`

	Fmt *cli.Command
}

func (cfg *FmtConfig) renderOpts() ([]render.Option, error) {
	s, err := cfg.load()
	if err != nil {
		return nil, err
	}
	var opts []render.Option
	if cfg.R == "" {
		opts, err = s.RenderOptions()
	} else {
		opts, err = render.ParseOptions(strings.Split(cfg.R, ","))
		if err != nil {
			err = fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	if err != nil {
		return nil, err
	}
	if cfg.Width != 0 {
		opts = append(opts, render.Width(cfg.Width))
	}
	return opts, nil
}

type JSONConfig struct {
	*MainConfig

	Compact bool `cli:"name=c desc='compact output'"`

	JSON *cli.Command
}

type DiffConfig struct {
	*MainConfig

	JSON bool `cli:"name=json desc='print a JSON merge patch from a to b'"`

	Diff *cli.Command
}

type SelectConfig struct {
	*MainConfig

	MD bool `cli:"name=md desc='print matches as markdown'"`

	Select *cli.Command
}

type EventsConfig struct {
	*MainConfig

	Events *cli.Command
}
