package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mdforge/down/render"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.D && cfg.W {
		return fmt.Errorf("%w: at most one of -d and -w", cli.ErrUsage)
	}
	ropts, err := cfg.renderOpts()
	if err != nil {
		return err
	}
	colored, err := cfg.useColor(cc.Out)
	if err != nil {
		return err
	}
	for _, file := range inputs(args) {
		src, doc, err := cfg.parseFile(cc, file)
		if err != nil {
			return err
		}
		out, err := render.CommonMark(doc, ropts...)
		if err != nil {
			return fmt.Errorf("error rendering %s: %w", file, err)
		}
		switch {
		case cfg.D:
			diffs := lineDiff(string(src), out)
			if !differs(diffs) {
				continue
			}
			if err := writeLineDiff(cc.Out, file, file+" (formatted)", diffs, colored); err != nil {
				return err
			}
		case cfg.W && file != "-":
			if string(src) == out {
				continue
			}
			if err := os.WriteFile(file, []byte(out), 0644); err != nil {
				return fmt.Errorf("error writing %s: %w", file, err)
			}
		default:
			if _, err := io.WriteString(cc.Out, out); err != nil {
				return err
			}
		}
	}
	return nil
}
