// Package visit dispatches over node kinds.
//
// A Visitor has one method per kind. Visit calls the method matching a
// node's kind and Children applies the visitor to each child in order, so a
// visitor recurses by calling Children from the methods of container kinds.
package visit

import "github.com/mdforge/down/ast"

type Visitor[R any] interface {
	VisitDocument(n *ast.Node) R
	VisitBlockQuote(n *ast.Node) R
	VisitList(n *ast.Node) R
	VisitItem(n *ast.Node) R
	VisitCodeBlock(n *ast.Node) R
	VisitHTMLBlock(n *ast.Node) R
	VisitCustomBlock(n *ast.Node) R
	VisitParagraph(n *ast.Node) R
	VisitHeading(n *ast.Node) R
	VisitThematicBreak(n *ast.Node) R
	VisitText(n *ast.Node) R
	VisitSoftBreak(n *ast.Node) R
	VisitLineBreak(n *ast.Node) R
	VisitCode(n *ast.Node) R
	VisitHTMLInline(n *ast.Node) R
	VisitCustomInline(n *ast.Node) R
	VisitEmphasis(n *ast.Node) R
	VisitStrong(n *ast.Node) R
	VisitLink(n *ast.Node) R
	VisitImage(n *ast.Node) R
}

// Visit dispatches n to the method of v for its kind.
func Visit[R any](v Visitor[R], n *ast.Node) R {
	switch n.Kind() {
	case ast.DocumentKind:
		return v.VisitDocument(n)
	case ast.BlockQuoteKind:
		return v.VisitBlockQuote(n)
	case ast.ListKind:
		return v.VisitList(n)
	case ast.ItemKind:
		return v.VisitItem(n)
	case ast.CodeBlockKind:
		return v.VisitCodeBlock(n)
	case ast.HTMLBlockKind:
		return v.VisitHTMLBlock(n)
	case ast.CustomBlockKind:
		return v.VisitCustomBlock(n)
	case ast.ParagraphKind:
		return v.VisitParagraph(n)
	case ast.HeadingKind:
		return v.VisitHeading(n)
	case ast.ThematicBreakKind:
		return v.VisitThematicBreak(n)
	case ast.TextKind:
		return v.VisitText(n)
	case ast.SoftBreakKind:
		return v.VisitSoftBreak(n)
	case ast.LineBreakKind:
		return v.VisitLineBreak(n)
	case ast.CodeKind:
		return v.VisitCode(n)
	case ast.HTMLInlineKind:
		return v.VisitHTMLInline(n)
	case ast.CustomInlineKind:
		return v.VisitCustomInline(n)
	case ast.EmphasisKind:
		return v.VisitEmphasis(n)
	case ast.StrongKind:
		return v.VisitStrong(n)
	case ast.LinkKind:
		return v.VisitLink(n)
	case ast.ImageKind:
		return v.VisitImage(n)
	}
	panic("visit: unknown kind " + n.Kind().String())
}

// Children visits the children of n in order and returns the results.
func Children[R any](v Visitor[R], n *ast.Node) []R {
	res := make([]R, 0, n.Len())
	for c := range n.All() {
		res = append(res, Visit(v, c))
	}
	return res
}

// Func adapts a function to a Visitor which handles every kind alike.
type Func[R any] func(n *ast.Node) R

func (f Func[R]) VisitDocument(n *ast.Node) R      { return f(n) }
func (f Func[R]) VisitBlockQuote(n *ast.Node) R    { return f(n) }
func (f Func[R]) VisitList(n *ast.Node) R          { return f(n) }
func (f Func[R]) VisitItem(n *ast.Node) R          { return f(n) }
func (f Func[R]) VisitCodeBlock(n *ast.Node) R     { return f(n) }
func (f Func[R]) VisitHTMLBlock(n *ast.Node) R     { return f(n) }
func (f Func[R]) VisitCustomBlock(n *ast.Node) R   { return f(n) }
func (f Func[R]) VisitParagraph(n *ast.Node) R     { return f(n) }
func (f Func[R]) VisitHeading(n *ast.Node) R       { return f(n) }
func (f Func[R]) VisitThematicBreak(n *ast.Node) R { return f(n) }
func (f Func[R]) VisitText(n *ast.Node) R          { return f(n) }
func (f Func[R]) VisitSoftBreak(n *ast.Node) R     { return f(n) }
func (f Func[R]) VisitLineBreak(n *ast.Node) R     { return f(n) }
func (f Func[R]) VisitCode(n *ast.Node) R          { return f(n) }
func (f Func[R]) VisitHTMLInline(n *ast.Node) R    { return f(n) }
func (f Func[R]) VisitCustomInline(n *ast.Node) R  { return f(n) }
func (f Func[R]) VisitEmphasis(n *ast.Node) R      { return f(n) }
func (f Func[R]) VisitStrong(n *ast.Node) R        { return f(n) }
func (f Func[R]) VisitLink(n *ast.Node) R          { return f(n) }
func (f Func[R]) VisitImage(n *ast.Node) R         { return f(n) }
