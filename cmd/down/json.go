package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"
)

func toJSON(cfg *JSONConfig, cc *cli.Context, args []string) error {
	args, err := cfg.JSON.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, file := range inputs(args) {
		_, doc, err := cfg.parseFile(cc, file)
		if err != nil {
			return err
		}
		var d []byte
		if cfg.Compact {
			d, err = json.Marshal(doc)
		} else {
			d, err = json.MarshalIndent(doc, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		if _, err := cc.Out.Write(append(d, '\n')); err != nil {
			return err
		}
	}
	return nil
}
