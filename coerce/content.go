package coerce

import (
	"github.com/mdforge/down/ast"
)

// ContentKind tags the variants of Content.
type ContentKind int

const (
	AbsentContent ContentKind = iota
	LiteralContent
	NodeContent
	SeqContent
	failedContent
)

func (k ContentKind) String() string {
	switch k {
	case AbsentContent:
		return "absent"
	case LiteralContent:
		return "literal"
	case NodeContent:
		return "node"
	case SeqContent:
		return "sequence"
	default:
		return "failed"
	}
}

// Content is loosely typed input for a container: a literal string, a single
// node, an ordered sequence of contents, or nothing at all. A Content may
// also carry the error of a failed construction, which is reported when the
// content is appended.
type Content struct {
	kind ContentKind
	lit  string
	node *ast.Node
	seq  []Content
	err  error
}

func Lit(v string) Content {
	return Content{kind: LiteralContent, lit: v}
}

// N wraps a node. A nil node is absent.
func N(n *ast.Node) Content {
	if n == nil {
		return Absent()
	}
	return Content{kind: NodeContent, node: n}
}

func Seq(cs ...Content) Content {
	return Content{kind: SeqContent, seq: cs}
}

// Nodes is a sequence of node contents.
func Nodes(ns ...*ast.Node) Content {
	cs := make([]Content, len(ns))
	for i, n := range ns {
		cs[i] = N(n)
	}
	return Seq(cs...)
}

func Absent() Content {
	return Content{}
}

// If returns c when cond holds and Absent otherwise.
func If(cond bool, c Content) Content {
	if cond {
		return c
	}
	return Absent()
}

func Either(cond bool, first, second Content) Content {
	if cond {
		return first
	}
	return second
}

// Fail returns content which makes any append fail with err.
func Fail(err error) Content {
	return Content{kind: failedContent, err: err}
}

// Result turns a constructor result into content.
func Result(n *ast.Node, err error) Content {
	if err != nil {
		return Fail(err)
	}
	return N(n)
}

func (c Content) Kind() ContentKind { return c.kind }

// Err returns the first error carried by c or its nested contents.
func (c Content) Err() error {
	switch c.kind {
	case failedContent:
		return c.err
	case SeqContent:
		for _, cc := range c.seq {
			if err := cc.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flatten returns the literal and node leaves of cs in order, dropping
// absent content.
func Flatten(cs ...Content) ([]Content, error) {
	var res []Content
	var walk func(c Content) error
	walk = func(c Content) error {
		switch c.kind {
		case AbsentContent:
		case LiteralContent, NodeContent:
			res = append(res, c)
		case SeqContent:
			for _, cc := range c.seq {
				if err := walk(cc); err != nil {
					return err
				}
			}
		default:
			return c.err
		}
		return nil
	}
	for _, c := range cs {
		if err := walk(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Node returns the node held by leaf content, promoting literals to text
// nodes.
func (c Content) Node() *ast.Node {
	switch c.kind {
	case LiteralContent:
		return ast.NewText(c.lit)
	case NodeContent:
		return c.node
	}
	return nil
}
