package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/mdforge/down/query"
	"github.com/mdforge/down/render"
	"github.com/mdforge/down/visit"
)

func selectNodes(cfg *SelectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Select.Parse(cc, args)
	if err != nil {
		cfg.Select.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: select requires an expression", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	opts, err := cfg.dumpOpts(cc.Out)
	if err != nil {
		return err
	}
	for _, file := range inputs(args[1:]) {
		_, doc, err := cfg.parseFile(cc, file)
		if err != nil {
			return err
		}
		nodes, err := q.Select(doc)
		if err != nil {
			return fmt.Errorf("error selecting from %s: %w", file, err)
		}
		for _, n := range nodes {
			var out string
			if cfg.MD {
				out, err = render.CommonMark(n)
				if err != nil {
					return fmt.Errorf("error rendering match in %s: %w", file, err)
				}
			} else {
				out = visit.Dump(n, opts...)
			}
			if _, err := io.WriteString(cc.Out, out); err != nil {
				return err
			}
		}
	}
	return nil
}
