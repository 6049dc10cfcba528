// Package coerce appends loosely typed content to containers, inserting the
// paragraph and item wrappers the containment rules of package ast require.
//
// The wrapping ladder, applied when a child's category is not admitted by the
// container's class:
//
//   - block into an items container: wrap in an item
//   - inline into a blocks container: wrap in a paragraph
//   - inline into an items container: wrap in a paragraph, then an item
//
// Anything else, such as a block offered to an inlines container, fails with
// an *Error which matches ast.ErrInvalidOperation.
package coerce

import (
	"fmt"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/debug"
)

// Error reports content which no wrapping rule can make legal.
type Error struct {
	Kind     ast.Kind
	Category ast.Category
	Class    ast.Class

	// Container is the kind of the target container, if there is one.
	Container *ast.Kind
	Msg       string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", ast.ErrInvalidOperation, e.Msg)
	}
	where := "container of class " + e.Class.String()
	if e.Container != nil {
		where = fmt.Sprintf("%s (class %s)", *e.Container, e.Class)
	}
	return fmt.Sprintf("%s: cannot place %s content (%s) in %s",
		ast.ErrInvalidOperation, e.Category, e.Kind, where)
}

func (e *Error) Unwrap() error {
	return ast.ErrInvalidOperation
}

// Wrap returns n, or n inside the wrappers needed for a container of class
// cls to admit it.
func Wrap(cls ast.Class, n *ast.Node) (*ast.Node, error) {
	cat := n.Kind().Category()
	if cls.Admits(cat) {
		return n, nil
	}
	switch {
	case cat == ast.BlockCategory && cls.Has(ast.Items):
		return wrapIn(ast.ItemKind, n)
	case cat == ast.InlineCategory && cls.Has(ast.Blocks):
		return wrapIn(ast.ParagraphKind, n)
	case cat == ast.InlineCategory && cls.Has(ast.Items):
		p, err := wrapIn(ast.ParagraphKind, n)
		if err != nil {
			return nil, err
		}
		return wrapIn(ast.ItemKind, p)
	}
	return nil, &Error{Kind: n.Kind(), Category: cat, Class: cls}
}

func wrapIn(k ast.Kind, n *ast.Node) (*ast.Node, error) {
	if debug.Coerce() {
		debug.Logf("coerce: wrapping %s in %s\n", n.Kind(), k)
	}
	w := ast.New(k)
	if err := w.AppendChild(n); err != nil {
		return nil, err
	}
	return w, nil
}

// Append appends cs to container in order. Literals become text nodes and
// every node is wrapped as needed. If container holds a literal, cs must
// flatten to exactly one string, which becomes the payload.
func Append(container *ast.Node, cs ...Content) error {
	cls := container.Kind().Class()
	if cls.Has(ast.Literal) {
		return setLiteral(container, cs)
	}
	for _, c := range cs {
		if err := appendContent(container, cls, c); err != nil {
			return err
		}
	}
	return nil
}

func appendContent(container *ast.Node, cls ast.Class, c Content) error {
	switch c.kind {
	case AbsentContent:
		return nil
	case SeqContent:
		for _, cc := range c.seq {
			if err := appendContent(container, cls, cc); err != nil {
				return err
			}
		}
		return nil
	case LiteralContent, NodeContent:
		return AppendNode(container, c.Node())
	default:
		return c.err
	}
}

// AppendNode appends a single node to container, wrapping it as needed.
func AppendNode(container, n *ast.Node) error {
	if n == nil {
		return fmt.Errorf("%w: append nil node to %s", ast.ErrInvalidOperation, container.Kind())
	}
	cls := container.Kind().Class()
	w, err := Wrap(cls, n)
	if err != nil {
		if ce, ok := err.(*Error); ok {
			k := container.Kind()
			ce.Container = &k
		}
		return err
	}
	return container.AppendChild(w)
}

func setLiteral(container *ast.Node, cs []Content) error {
	leaves, err := Flatten(cs...)
	if err != nil {
		return err
	}
	k := container.Kind()
	if len(leaves) != 1 || leaves[0].kind != LiteralContent {
		return &Error{
			Kind:      k,
			Class:     k.Class(),
			Container: &k,
			Msg:       fmt.Sprintf("%s takes exactly one literal string, got %d values", k, len(leaves)),
		}
	}
	return container.SetLiteral(leaves[0].lit)
}
