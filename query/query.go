// Package query selects nodes of a tree with boolean expr-lang expressions.
//
// An expression is evaluated once per node, in document order, against an
// Env describing that node:
//
//	Kind == "heading" && Level <= 2
//	Kind == "link" && URL startsWith "https://"
//	Kind == "text" && Within("emph")
package query

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/debug"
)

var ErrQuery = errors.New("query error")

// Env is the environment of a query expression. Attributes which do not
// apply to the node's kind hold their zero value.
type Env struct {
	Kind    string
	Parent  string
	Index   int
	Depth   int
	Level   int
	Literal string
	URL     string
	Title   string
	Info    string
	Ordered bool
	Start   int
	Tight   bool
	Text    string

	node *ast.Node
}

// Within reports whether the node has an ancestor of the named kind.
func (e Env) Within(kind string) bool {
	for p := e.node.Parent(); p != nil; p = p.Parent() {
		if p.Kind().String() == kind {
			return true
		}
	}
	return false
}

// NewEnv describes n. depth and index locate n in the tree being queried.
func NewEnv(n *ast.Node, depth, index int) Env {
	e := Env{
		Kind:  n.Kind().String(),
		Index: index,
		Depth: depth,
		Text:  n.TextContent(),
		node:  n,
	}
	if p := n.Parent(); p != nil {
		e.Parent = p.Kind().String()
	}
	e.Literal, _ = n.Literal()
	e.Level, _ = n.HeadingLevel()
	e.URL, _ = n.URL()
	e.Title, _ = n.Title()
	e.Info, _ = n.FenceInfo()
	if lt, err := n.ListType(); err == nil {
		e.Ordered = lt == ast.OrderedList
		e.Start, _ = n.ListStart()
		e.Tight, _ = n.ListTight()
	}
	return e
}

type Query struct {
	src string
	prg *vm.Program
}

// Compile compiles src, which must be a boolean expression over Env.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %w", ErrQuery, src, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func (q *Query) String() string { return q.src }

// Match evaluates q against a single environment.
func (q *Query) Match(env Env) (bool, error) {
	res, err := expr.Run(q.prg, env)
	if err != nil {
		return false, fmt.Errorf("%w: evaluating %q: %w", ErrQuery, q.src, err)
	}
	ok, isBool := res.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %q yielded %T, not bool", ErrQuery, q.src, res)
	}
	return ok, nil
}

// Select returns the nodes of the tree rooted at root which match q, in
// document order.
func (q *Query) Select(root *ast.Node) ([]*ast.Node, error) {
	var res []*ast.Node
	var walk func(n *ast.Node, depth, index int) error
	walk = func(n *ast.Node, depth, index int) error {
		ok, err := q.Match(NewEnv(n, depth, index))
		if err != nil {
			return err
		}
		if ok {
			if debug.Query() {
				debug.Logf("query: %s matched %s\n", q.src, n.Kind())
			}
			res = append(res, n)
		}
		for i, c := range n.Children() {
			if err := walk(c, depth+1, i); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, 0, 0); err != nil {
		return nil, err
	}
	return res, nil
}

// Select compiles src and applies it to root.
func Select(root *ast.Node, src string) ([]*ast.Node, error) {
	q, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return q.Select(root)
}
