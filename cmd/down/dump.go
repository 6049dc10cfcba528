package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/mdforge/down/visit"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	opts, err := cfg.dumpOpts(cc.Out)
	if err != nil {
		return err
	}
	for i, file := range inputs(args) {
		_, doc, err := cfg.parseFile(cc, file)
		if err != nil {
			return err
		}
		if err := separate(cc.Out, i); err != nil {
			return err
		}
		if _, err := io.WriteString(cc.Out, visit.Dump(doc, opts...)); err != nil {
			return fmt.Errorf("error writing %s: %w", file, err)
		}
	}
	return nil
}
