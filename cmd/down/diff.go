package main

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/visit"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	_, a, err := cfg.parseFile(cc, args[0])
	if err != nil {
		return err
	}
	_, b, err := cfg.parseFile(cc, args[1])
	if err != nil {
		return err
	}
	var differ bool
	if cfg.JSON {
		differ, err = diffJSON(cfg, cc, a, b)
	} else {
		differ, err = diffDumps(cfg, cc, args[0], args[1], a, b)
	}
	if err != nil {
		return err
	}
	if differ {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffDumps(cfg *DiffConfig, cc *cli.Context, aName, bName string, a, b *ast.Node) (bool, error) {
	if ast.Equal(a, b) {
		return false, nil
	}
	colored, err := cfg.useColor(cc.Out)
	if err != nil {
		return false, err
	}
	diffs := lineDiff(visit.Dump(a), visit.Dump(b))
	if err := writeLineDiff(cc.Out, aName, bName, diffs, colored); err != nil {
		return false, err
	}
	return true, nil
}

// diffJSON writes the RFC 7386 merge patch taking the JSON form of a to
// that of b.
func diffJSON(cfg *DiffConfig, cc *cli.Context, a, b *ast.Node) (bool, error) {
	aj, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	patch, err := jsonpatch.CreateMergePatch(aj, bj)
	if err != nil {
		return false, fmt.Errorf("error creating merge patch: %w", err)
	}
	if string(patch) == "{}" {
		return false, nil
	}
	if _, err := cc.Out.Write(append(patch, '\n')); err != nil {
		return false, err
	}
	return true, nil
}
