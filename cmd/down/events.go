package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/mdforge/down/event"
	"github.com/mdforge/down/tokenize"
)

func events(cfg *EventsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Events.Parse(cc, args)
	if err != nil {
		return err
	}
	opts, err := cfg.tokenizeOpts()
	if err != nil {
		return err
	}
	for i, file := range inputs(args) {
		src, err := readInput(cc, file)
		if err != nil {
			return err
		}
		rec := &event.Recorder{}
		if err := tokenize.Tokenize(src, rec, opts...); err != nil {
			return fmt.Errorf("error tokenizing %s: %w", file, err)
		}
		if err := separate(cc.Out, i); err != nil {
			return err
		}
		if _, err := io.WriteString(cc.Out, event.Format(rec.Events)); err != nil {
			return err
		}
	}
	return nil
}
