package construct

import (
	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/event"
)

var blockKinds = map[event.BlockType]ast.Kind{
	event.BlockDoc:   ast.DocumentKind,
	event.BlockQuote: ast.BlockQuoteKind,
	event.BlockUL:    ast.ListKind,
	event.BlockOL:    ast.ListKind,
	event.BlockLI:    ast.ItemKind,
	event.BlockHR:    ast.ThematicBreakKind,
	event.BlockH:     ast.HeadingKind,
	event.BlockCode:  ast.CodeBlockKind,
	event.BlockHTML:  ast.HTMLBlockKind,
	event.BlockP:     ast.ParagraphKind,
}

var spanKinds = map[event.SpanType]ast.Kind{
	event.SpanEm:     ast.EmphasisKind,
	event.SpanStrong: ast.StrongKind,
	event.SpanA:      ast.LinkKind,
	event.SpanImg:    ast.ImageKind,
	event.SpanCode:   ast.CodeKind,
}

// detailOf accepts a detail struct by value or by pointer.
func detailOf[T any](d any) (T, bool) {
	switch v := d.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

// blockNode returns a node for t initialized from detail, or nil if t has no
// kind in the tree model.
func blockNode(t event.BlockType, detail any) (*ast.Node, error) {
	k, ok := blockKinds[t]
	if !ok {
		return nil, nil
	}
	n := ast.New(k)
	switch t {
	case event.BlockH:
		if d, ok := detailOf[event.HeadingDetail](detail); ok {
			if err := n.SetHeadingLevel(d.Level); err != nil {
				return nil, err
			}
		}
	case event.BlockUL:
		tight := true
		if d, ok := detailOf[event.ULDetail](detail); ok {
			tight = d.Tight
		}
		if err := n.SetListTight(tight); err != nil {
			return nil, err
		}
	case event.BlockOL:
		d, ok := detailOf[event.OLDetail](detail)
		if !ok {
			d = event.OLDetail{Start: 1, Tight: true}
		}
		delim := ast.PeriodDelim
		if d.Delimiter == ')' {
			delim = ast.ParenDelim
		}
		if err := n.SetListType(ast.OrderedList); err != nil {
			return nil, err
		}
		if err := n.SetListStart(d.Start); err != nil {
			return nil, err
		}
		if err := n.SetListTight(d.Tight); err != nil {
			return nil, err
		}
		if err := n.SetListDelim(delim); err != nil {
			return nil, err
		}
	case event.BlockCode:
		if d, ok := detailOf[event.CodeDetail](detail); ok {
			if err := n.SetFenceInfo(d.Info); err != nil {
				return nil, err
			}
		}
	}
	return n, nil
}

// spanNode is the span counterpart of blockNode.
func spanNode(t event.SpanType, detail any) (*ast.Node, error) {
	k, ok := spanKinds[t]
	if !ok {
		return nil, nil
	}
	n := ast.New(k)
	var url, title string
	switch t {
	case event.SpanA:
		d, _ := detailOf[event.LinkDetail](detail)
		url, title = d.Href, d.Title
	case event.SpanImg:
		d, _ := detailOf[event.ImageDetail](detail)
		url, title = d.Src, d.Title
	default:
		return n, nil
	}
	if err := n.SetURL(url); err != nil {
		return nil, err
	}
	if err := n.SetTitle(title); err != nil {
		return nil, err
	}
	return n, nil
}
