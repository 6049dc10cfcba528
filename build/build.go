// Package build constructs markdown trees declaratively.
//
// Constructors return coerce.Content so calls nest freely; a failure deep in
// the tree surfaces from the outermost call that produces a node:
//
//	doc, err := build.Document(
//		build.Lit("A very nice document"),
//		build.Strong(build.Lit("bold"), build.Emphasis(build.Lit("italic"))),
//		build.BulletList(true,
//			build.Lit("first"),
//			build.Paragraph(build.Lit("second")),
//			build.Item(build.BlockQuote(build.Lit("third"))),
//		),
//	)
//
// Loose content is wrapped per value: inlines given where blocks are
// expected become paragraphs, blocks given where items are expected become
// items, and inlines given where items are expected become items holding a
// paragraph.
package build

import (
	"fmt"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/coerce"
)

// Content re-exports coerce.Content for brevity at call sites.
type Content = coerce.Content

var (
	Lit    = coerce.Lit
	N      = coerce.N
	Seq    = coerce.Seq
	Absent = coerce.Absent
	If     = coerce.If
	Either = coerce.Either
)

// Blocks flattens cs into a sequence of block nodes.
func Blocks(cs ...Content) ([]*ast.Node, error) {
	return sequence(ast.Blocks, cs)
}

// Inlines flattens cs into a sequence of inline nodes. Blocks and items are
// rejected.
func Inlines(cs ...Content) ([]*ast.Node, error) {
	return sequence(ast.Inlines, cs)
}

// Items flattens cs into a sequence of item nodes.
func Items(cs ...Content) ([]*ast.Node, error) {
	return sequence(ast.Items, cs)
}

func sequence(cls ast.Class, cs []Content) ([]*ast.Node, error) {
	leaves, err := coerce.Flatten(cs...)
	if err != nil {
		return nil, err
	}
	res := make([]*ast.Node, 0, len(leaves))
	for _, leaf := range leaves {
		w, err := coerce.Wrap(cls, leaf.Node())
		if err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, nil
}

// Node returns the single node c describes.
func Node(c Content) (*ast.Node, error) {
	leaves, err := coerce.Flatten(c)
	if err != nil {
		return nil, err
	}
	if len(leaves) != 1 {
		return nil, fmt.Errorf("%w: expected one node, got %d", ast.ErrInvalidOperation, len(leaves))
	}
	return leaves[0].Node(), nil
}

// Must is like Node but panics on error. It is meant for static trees in
// tests and examples.
func Must(c Content) *ast.Node {
	n, err := Node(c)
	if err != nil {
		panic(err)
	}
	return n
}

// MustDocument panics if doc construction failed.
func MustDocument(n *ast.Node, err error) *ast.Node {
	if err != nil {
		panic(err)
	}
	return n
}

func container(k ast.Kind, cs []Content, init func(n *ast.Node) error) Content {
	n := ast.New(k)
	if init != nil {
		if err := init(n); err != nil {
			return coerce.Fail(err)
		}
	}
	if err := coerce.Append(n, cs...); err != nil {
		return coerce.Fail(fmt.Errorf("building %s: %w", k, err))
	}
	return coerce.N(n)
}

// Document builds a document root from block content.
func Document(cs ...Content) (*ast.Node, error) {
	n := ast.New(ast.DocumentKind)
	if err := coerce.Append(n, cs...); err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}
	return n, nil
}

func BlockQuote(cs ...Content) Content {
	return container(ast.BlockQuoteKind, cs, nil)
}

func Paragraph(cs ...Content) Content {
	return container(ast.ParagraphKind, cs, nil)
}

func Heading(level int, cs ...Content) Content {
	return container(ast.HeadingKind, cs, func(n *ast.Node) error {
		return n.SetHeadingLevel(level)
	})
}

func BulletList(tight bool, cs ...Content) Content {
	return container(ast.ListKind, cs, func(n *ast.Node) error {
		return n.SetListTight(tight)
	})
}

func OrderedList(delim ast.Delim, start int, tight bool, cs ...Content) Content {
	return container(ast.ListKind, cs, func(n *ast.Node) error {
		if err := n.SetListType(ast.OrderedList); err != nil {
			return err
		}
		if err := n.SetListDelim(delim); err != nil {
			return err
		}
		if err := n.SetListStart(start); err != nil {
			return err
		}
		return n.SetListTight(tight)
	})
}

func Item(cs ...Content) Content {
	return container(ast.ItemKind, cs, nil)
}

func CodeBlock(literal, fenceInfo string) Content {
	return container(ast.CodeBlockKind, []Content{Lit(literal)}, func(n *ast.Node) error {
		return n.SetFenceInfo(fenceInfo)
	})
}

func HTMLBlock(literal string) Content {
	return container(ast.HTMLBlockKind, []Content{Lit(literal)}, nil)
}

// CustomBlock emits onEnter and onExit around its content when rendered.
func CustomBlock(onEnter, onExit string, cs ...Content) Content {
	return container(ast.CustomBlockKind, cs, custom(onEnter, onExit))
}

func ThematicBreak() Content {
	return coerce.N(ast.New(ast.ThematicBreakKind))
}

func Text(v string) Content {
	return coerce.N(ast.NewText(v))
}

func SoftBreak() Content {
	return coerce.N(ast.New(ast.SoftBreakKind))
}

func LineBreak() Content {
	return coerce.N(ast.New(ast.LineBreakKind))
}

func Code(literal string) Content {
	return container(ast.CodeKind, []Content{Lit(literal)}, nil)
}

func HTMLInline(literal string) Content {
	return container(ast.HTMLInlineKind, []Content{Lit(literal)}, nil)
}

func CustomInline(onEnter, onExit string, cs ...Content) Content {
	return container(ast.CustomInlineKind, cs, custom(onEnter, onExit))
}

func Emphasis(cs ...Content) Content {
	return container(ast.EmphasisKind, cs, nil)
}

func Strong(cs ...Content) Content {
	return container(ast.StrongKind, cs, nil)
}

func Link(url, title string, cs ...Content) Content {
	return container(ast.LinkKind, cs, linkAttrs(url, title))
}

func Image(url, title string, cs ...Content) Content {
	return container(ast.ImageKind, cs, linkAttrs(url, title))
}

func linkAttrs(url, title string) func(*ast.Node) error {
	return func(n *ast.Node) error {
		if err := n.SetURL(url); err != nil {
			return err
		}
		return n.SetTitle(title)
	}
}

func custom(onEnter, onExit string) func(*ast.Node) error {
	return func(n *ast.Node) error {
		if err := n.SetOnEnter(onEnter); err != nil {
			return err
		}
		return n.SetOnExit(onExit)
	}
}
