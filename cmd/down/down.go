package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/construct"
)

func downMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readInput reads the named file, or standard input for "-".
func readInput(cc *cli.Context, file string) ([]byte, error) {
	var r io.Reader
	if file == "-" {
		r = cc.In
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	return d, nil
}

// inputs lists the files to process, standard input when none are given.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func (cfg *MainConfig) parseFile(cc *cli.Context, file string) ([]byte, *ast.Node, error) {
	src, err := readInput(cc, file)
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.tokenizeOpts()
	if err != nil {
		return nil, nil, err
	}
	doc, err := construct.Parse(src, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing %s: %w", file, err)
	}
	if doc == nil {
		doc = ast.New(ast.DocumentKind)
	}
	return src, doc, nil
}

// separate writes a document separator before every document but the
// first.
func separate(w io.Writer, i int) error {
	if i == 0 {
		return nil
	}
	_, err := io.WriteString(w, "\n---\n")
	return err
}
