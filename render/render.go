// Package render serializes document trees as CommonMark.
//
// A tree is converted to the block and inline types of rsc.io/markdown and
// printed with its Markdown printer. Output is a pure function of the tree
// and the options. Text is escaped so that reparsing the output yields the
// same tree, code blocks are always fenced and adjacent lists of the same
// type alternate their markers so they stay separate lists.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"rsc.io/markdown"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/debug"
)

var ErrRendering = errors.New("rendering error")

func renderErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRendering, fmt.Sprintf(format, args...))
}

type RenderState struct {
	sourcePos    bool
	hardBreaks   bool
	safe         bool
	unsafe       bool
	normalize    bool
	validateUTF8 bool
	smart        bool
	width        int
}

func (rs *RenderState) isSafe() bool { return rs.safe && !rs.unsafe }

// CommonMark renders the tree rooted at n.
func CommonMark(n *ast.Node, opts ...Option) (string, error) {
	b := &strings.Builder{}
	if err := Render(n, b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Render writes the CommonMark form of the tree rooted at n to w. Nothing
// is written if rendering fails.
func Render(n *ast.Node, w io.Writer, opts ...Option) error {
	if n == nil {
		return renderErr("nil node")
	}
	rs := &RenderState{}
	for _, opt := range opts {
		opt(rs)
	}
	if debug.Render() {
		debug.Logf("render: %+v\n%s", *rs, debug.Tree{Node: n})
	}
	doc, err := rs.Document(n)
	if err != nil {
		return err
	}
	out := markdown.Format(doc)
	if out == "" {
		return nil
	}
	_, err = io.WriteString(w, out)
	return err
}

// Document converts the tree rooted at n to an rsc.io/markdown document
// with every option applied. An inline root becomes a single paragraph.
func (rs *RenderState) Document(n *ast.Node) (*markdown.Document, error) {
	c := &converter{rs: rs}
	doc := &markdown.Document{}
	var err error
	switch {
	case n.Kind() == ast.DocumentKind || n.Kind() == ast.ItemKind:
		doc.Blocks, err = c.blocks(n.Children())
	case n.Kind().IsInline():
		var text *markdown.Text
		text, err = c.paragraph([]*ast.Node{n})
		if text != nil {
			doc.Blocks = []markdown.Block{&markdown.Paragraph{Text: text}}
		}
	default:
		doc.Blocks, err = c.blocks([]*ast.Node{n})
	}
	if err != nil {
		return nil, err
	}
	rs.transform(doc.Blocks, rs.width)
	return doc, nil
}

func (rs *RenderState) literal(n *ast.Node) string {
	v, _ := n.Literal()
	if rs.validateUTF8 {
		v = strings.ToValidUTF8(v, "\uFFFD")
	}
	return v
}

const omittedHTML = "<!-- raw HTML omitted -->"
