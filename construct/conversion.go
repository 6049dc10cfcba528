package construct

import (
	"fmt"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/event"
	"github.com/mdforge/down/tokenize"
)

// Parse tokenizes markdown source and builds its document tree.
func Parse(src []byte, opts ...tokenize.Option) (*ast.Node, error) {
	c := New()
	if err := tokenize.Tokenize(src, c, opts...); err != nil {
		return nil, err
	}
	return c.Result()
}

// EventsToNode builds a tree from recorded events.
func EventsToNode(events []event.Event) (*ast.Node, error) {
	c := New()
	for i := range events {
		err := event.Deliver(&events[i], c)
		if err != nil && err != ErrSkip {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return c.Result()
}

// NodeToEvents converts a tree to the event stream a tokenizer would
// produce for it, with explicit paragraph events. Custom blocks and inlines
// have no event form.
func NodeToEvents(node *ast.Node) ([]event.Event, error) {
	var res []event.Event
	err := node.Visit(func(n *ast.Node, isPost bool) (bool, error) {
		evs, err := nodeEvents(n, isPost)
		if err != nil {
			return false, err
		}
		res = append(res, evs...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func nodeEvents(n *ast.Node, isPost bool) ([]event.Event, error) {
	lit, _ := n.Literal()
	block := func(t event.BlockType, d any) []event.Event {
		if isPost {
			return []event.Event{event.Leave(t)}
		}
		return []event.Event{event.Enter(t, d)}
	}
	span := func(t event.SpanType, d any) []event.Event {
		if isPost {
			return []event.Event{event.LeaveS(t)}
		}
		return []event.Event{event.EnterS(t, d)}
	}
	leaf := func(evs ...event.Event) []event.Event {
		if isPost {
			return nil
		}
		return evs
	}
	switch n.Kind() {
	case ast.DocumentKind:
		return block(event.BlockDoc, nil), nil
	case ast.BlockQuoteKind:
		return block(event.BlockQuote, nil), nil
	case ast.ListKind:
		lt, _ := n.ListType()
		tight, _ := n.ListTight()
		if lt == ast.BulletList {
			return block(event.BlockUL, &event.ULDetail{Tight: tight, Mark: '-'}), nil
		}
		start, _ := n.ListStart()
		delim, _ := n.ListDelim()
		d := &event.OLDetail{Start: start, Tight: tight, Delimiter: '.'}
		if delim == ast.ParenDelim {
			d.Delimiter = ')'
		}
		return block(event.BlockOL, d), nil
	case ast.ItemKind:
		return block(event.BlockLI, nil), nil
	case ast.ParagraphKind:
		return block(event.BlockP, nil), nil
	case ast.HeadingKind:
		level, _ := n.HeadingLevel()
		return block(event.BlockH, &event.HeadingDetail{Level: level}), nil
	case ast.ThematicBreakKind:
		return block(event.BlockHR, nil), nil
	case ast.CodeBlockKind:
		info, _ := n.FenceInfo()
		return leaf(
			event.Enter(event.BlockCode, &event.CodeDetail{Info: info, Fence: '`'}),
			event.T(event.TextCode, lit),
			event.Leave(event.BlockCode),
		), nil
	case ast.HTMLBlockKind:
		return leaf(
			event.Enter(event.BlockHTML, nil),
			event.T(event.TextHTML, lit),
			event.Leave(event.BlockHTML),
		), nil
	case ast.TextKind:
		return leaf(event.T(event.TextNormal, lit)), nil
	case ast.SoftBreakKind:
		return leaf(event.T(event.TextSoftBR, "\n")), nil
	case ast.LineBreakKind:
		return leaf(event.T(event.TextBR, "\n")), nil
	case ast.CodeKind:
		return leaf(
			event.EnterS(event.SpanCode, nil),
			event.T(event.TextCode, lit),
			event.LeaveS(event.SpanCode),
		), nil
	case ast.HTMLInlineKind:
		return leaf(event.T(event.TextHTML, lit)), nil
	case ast.EmphasisKind:
		return span(event.SpanEm, nil), nil
	case ast.StrongKind:
		return span(event.SpanStrong, nil), nil
	case ast.LinkKind:
		url, _ := n.URL()
		title, _ := n.Title()
		return span(event.SpanA, &event.LinkDetail{Href: url, Title: title}), nil
	case ast.ImageKind:
		url, _ := n.URL()
		title, _ := n.Title()
		return span(event.SpanImg, &event.ImageDetail{Src: url, Title: title}), nil
	}
	return nil, fmt.Errorf("%w: %s has no event form", ast.ErrInvalidOperation, n.Kind())
}
