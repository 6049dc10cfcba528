package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "down").
		WithSynopsis("down [opts] command [opts]").
		WithDescription("down is a tool for working with markdown document trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return downMain(cfg, cc, args)
		}).
		WithSubs(
			DumpCommand(cfg),
			FmtCommand(cfg),
			JSONCommand(cfg),
			DiffCommand(cfg),
			SelectCommand(cfg),
			EventsCommand(cfg))
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [files]").
		WithDescription("print the debug tree of markdown documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-d] [-w] [-r opt[,opt]] [files]").
		WithDescription("reformat markdown documents as CommonMark").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
}

func JSONCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JSONConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.JSON, "json").
		WithAliases("j").
		WithSynopsis("json [-c] [files]").
		WithDescription("print the JSON form of markdown document trees").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return toJSON(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff [-json] a b").
		WithDescription("diff the trees of two markdown documents, exiting 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func SelectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SelectConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Select, "select").
		WithAliases("s", "sel").
		WithSynopsis("select [-md] <expr> [files]").
		WithDescription(selectDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return selectNodes(cfg, cc, args)
		})
}

const selectDescription = `select prints the nodes matching an expression.

The expression is evaluated against each node with the following variables:

  Kind     node kind, such as "heading", "link" or "text"
  Parent   kind of the parent node, "" at the root
  Index    position among its siblings
  Depth    distance from the root
  Level    heading level
  Literal  literal content of text, code and html nodes
  URL      link and image destination
  Title    link and image title
  Info     code block fence info
  Ordered  whether a list is ordered
  Start    start number of an ordered list
  Tight    whether a list is tight
  Text     concatenated literal content of the subtree

and the function Within(kind) reporting whether a node has an ancestor of
the given kind. For example

  down select 'Kind == "link" && Within("heading")' README.md
`

func EventsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EventsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Events, "events").
		WithAliases("e", "ev").
		WithSynopsis("events [files]").
		WithDescription("print the tokenizer event stream of markdown documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return events(cfg, cc, args)
		})
}
