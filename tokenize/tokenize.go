// Package tokenize scans markdown source and reports its structure as an
// event stream.
//
// Parsing is done by goldmark. Its tree is walked in document order and each
// node is reported as the enter, text and leave events of package event,
// with attributes delivered at enter time. Paragraphs of tight lists are
// reported without paragraph events, leaving their inline content directly
// under the list item. Constructs without a node kind in package ast, such
// as tables and strikethrough, are reported with their own block and span
// types so handlers can skip them.
package tokenize

import (
	"bytes"
	"errors"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/mdforge/down/debug"
	"github.com/mdforge/down/event"
)

// Tokenize parses src and delivers its events to h. It stops at the first
// error h returns, other than event.ErrSkip, and returns it.
func Tokenize(src []byte, h event.Handler, opts ...Option) error {
	o := &tokenizeOpts{}
	for _, f := range opts {
		f(o)
	}
	var exts []goldmark.Extender
	if o.gfm {
		exts = append(exts, extension.GFM)
	}
	if o.smart {
		exts = append(exts, extension.Typographer)
	}
	md := goldmark.New(goldmark.WithExtensions(exts...))
	doc := md.Parser().Parse(text.NewReader(src))
	t := &tokenizer{src: src, h: h, opts: o}
	return gast.Walk(doc, t.walk)
}

type tokenizer struct {
	src  []byte
	h    event.Handler
	opts *tokenizeOpts
}

func status(err error) (gast.WalkStatus, error) {
	switch {
	case err == nil:
		return gast.WalkContinue, nil
	case errors.Is(err, event.ErrSkip):
		return gast.WalkSkipChildren, nil
	}
	return gast.WalkStop, err
}

func (t *tokenizer) walk(node gast.Node, entering bool) (gast.WalkStatus, error) {
	if debug.Tokenize() {
		debug.Logf("tokenize: %s entering=%t\n", node.Kind(), entering)
	}
	switch n := node.(type) {
	case *gast.Document:
		return t.block(entering, event.BlockDoc, nil)
	case *gast.Blockquote:
		return t.block(entering, event.BlockQuote, nil)
	case *gast.List:
		if n.IsOrdered() {
			return t.block(entering, event.BlockOL, &event.OLDetail{
				Start:     n.Start,
				Tight:     n.IsTight,
				Delimiter: n.Marker,
			})
		}
		return t.block(entering, event.BlockUL, &event.ULDetail{Tight: n.IsTight, Mark: n.Marker})
	case *gast.ListItem:
		return t.block(entering, event.BlockLI, itemDetail(n))
	case *gast.Paragraph:
		return t.block(entering, event.BlockP, nil)
	case *gast.TextBlock:
		return gast.WalkContinue, nil
	case *gast.Heading:
		return t.block(entering, event.BlockH, &event.HeadingDetail{Level: n.Level})
	case *gast.ThematicBreak:
		return t.block(entering, event.BlockHR, nil)
	case *gast.FencedCodeBlock:
		d := &event.CodeDetail{Fence: '`'}
		if n.Info != nil {
			d.Info = string(n.Info.Segment.Value(t.src))
			d.Lang = string(n.Language(t.src))
		}
		return t.verbatim(n, entering, event.BlockCode, d, event.TextCode)
	case *gast.CodeBlock:
		return t.verbatim(n, entering, event.BlockCode, &event.CodeDetail{}, event.TextCode)
	case *gast.HTMLBlock:
		return t.verbatim(n, entering, event.BlockHTML, nil, event.TextHTML)

	case *gast.Text:
		if !entering {
			return gast.WalkContinue, nil
		}
		return status(t.inlineText(n))
	case *gast.String:
		if !entering {
			return gast.WalkContinue, nil
		}
		v := n.Value
		if !n.IsRaw() {
			v = util.ResolveEntityNames(util.ResolveNumericReferences(v))
		}
		return status(t.text(event.TextNormal, v))
	case *gast.CodeSpan:
		if !entering {
			return status(t.h.LeaveSpan(event.SpanCode, nil))
		}
		st, err := status(t.h.EnterSpan(event.SpanCode, nil))
		if err != nil || st == gast.WalkSkipChildren {
			return gast.WalkSkipChildren, err
		}
		if err := t.text(event.TextCode, t.codeSpan(n)); err != nil {
			return gast.WalkStop, err
		}
		return gast.WalkSkipChildren, nil
	case *gast.Emphasis:
		if n.Level >= 2 {
			return t.span(entering, event.SpanStrong, nil)
		}
		return t.span(entering, event.SpanEm, nil)
	case *gast.Link:
		return t.span(entering, event.SpanA, &event.LinkDetail{
			Href:  string(unescape(n.Destination)),
			Title: string(unescape(n.Title)),
		})
	case *gast.Image:
		return t.span(entering, event.SpanImg, &event.ImageDetail{
			Src:   string(unescape(n.Destination)),
			Title: string(unescape(n.Title)),
		})
	case *gast.AutoLink:
		href := string(n.URL(t.src))
		if n.AutoLinkType == gast.AutoLinkEmail && !bytes.HasPrefix(n.URL(t.src), []byte("mailto:")) {
			href = "mailto:" + href
		}
		st, err := t.span(entering, event.SpanA, &event.LinkDetail{Href: href})
		if err != nil || !entering || st == gast.WalkSkipChildren {
			return st, err
		}
		return status(t.text(event.TextNormal, n.Label(t.src)))
	case *gast.RawHTML:
		if !entering {
			return gast.WalkContinue, nil
		}
		var buf []byte
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf = append(buf, seg.Value(t.src)...)
		}
		return status(t.text(event.TextHTML, buf))

	case *east.Table:
		return t.block(entering, event.BlockTable, nil)
	case *east.TableHeader:
		return t.blocks(entering, event.BlockTHead, event.BlockTR)
	case *east.TableRow:
		if entering {
			if _, ok := n.PreviousSibling().(*east.TableRow); !ok {
				return t.blocks(true, event.BlockTBody, event.BlockTR)
			}
			return t.block(true, event.BlockTR, nil)
		}
		if n.NextSibling() == nil {
			return t.blocks(false, event.BlockTBody, event.BlockTR)
		}
		return t.block(false, event.BlockTR, nil)
	case *east.TableCell:
		if _, ok := n.Parent().(*east.TableHeader); ok {
			return t.block(entering, event.BlockTH, nil)
		}
		return t.block(entering, event.BlockTD, nil)
	case *east.Strikethrough:
		return t.span(entering, event.SpanDel, nil)
	case *east.TaskCheckBox:
		// reported through the item detail
		return gast.WalkContinue, nil
	}
	if debug.Tokenize() {
		debug.Logf("tokenize: dropping unknown node %s\n", node.Kind())
	}
	return gast.WalkSkipChildren, nil
}

func (t *tokenizer) block(entering bool, bt event.BlockType, d any) (gast.WalkStatus, error) {
	if entering {
		return status(t.h.EnterBlock(bt, d))
	}
	return status(t.h.LeaveBlock(bt, d))
}

// blocks reports nested blocks for one node, outermost first. Every enter
// is delivered even when an outer one is skipped.
func (t *tokenizer) blocks(entering bool, bts ...event.BlockType) (gast.WalkStatus, error) {
	res := gast.WalkContinue
	if !entering {
		for i := len(bts) - 1; i >= 0; i-- {
			if err := t.h.LeaveBlock(bts[i], nil); err != nil {
				return gast.WalkStop, err
			}
		}
		return res, nil
	}
	for _, bt := range bts {
		st, err := status(t.h.EnterBlock(bt, nil))
		if err != nil {
			return st, err
		}
		if st == gast.WalkSkipChildren {
			res = st
		}
	}
	return res, nil
}

func (t *tokenizer) span(entering bool, st event.SpanType, d any) (gast.WalkStatus, error) {
	if entering {
		return status(t.h.EnterSpan(st, d))
	}
	return status(t.h.LeaveSpan(st, d))
}

func (t *tokenizer) verbatim(n gast.Node, entering bool, bt event.BlockType, d any, tt event.TextType) (gast.WalkStatus, error) {
	if !entering {
		return status(t.h.LeaveBlock(bt, d))
	}
	st, err := status(t.h.EnterBlock(bt, d))
	if err != nil || st == gast.WalkSkipChildren {
		return st, err
	}
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if err := t.text(tt, seg.Value(t.src)); err != nil {
			return gast.WalkStop, err
		}
	}
	if hb, ok := n.(*gast.HTMLBlock); ok && hb.HasClosure() {
		if err := t.text(tt, hb.ClosureLine.Value(t.src)); err != nil {
			return gast.WalkStop, err
		}
	}
	return gast.WalkSkipChildren, nil
}

func (t *tokenizer) inlineText(n *gast.Text) error {
	v := n.Segment.Value(t.src)
	if !n.IsRaw() {
		v = unescape(v)
	}
	if n.SoftLineBreak() || n.HardLineBreak() {
		v = bytes.TrimRight(v, " \t")
	}
	if len(v) > 0 {
		if err := t.text(event.TextNormal, v); err != nil {
			return err
		}
	}
	switch {
	case n.HardLineBreak():
		return t.text(event.TextBR, []byte("\n"))
	case n.SoftLineBreak():
		return t.text(event.TextSoftBR, []byte("\n"))
	}
	return nil
}

// unescape resolves backslash escapes and entity references in a single
// pass, so an escaped ampersand never starts a reference.
func unescape(v []byte) []byte {
	if bytes.IndexByte(v, '\\') < 0 && bytes.IndexByte(v, '&') < 0 {
		return v
	}
	buf := make([]byte, 0, len(v))
	for i := 0; i < len(v); {
		c := v[i]
		if c == '\\' && i+1 < len(v) && util.IsPunct(v[i+1]) {
			buf = append(buf, v[i+1])
			i += 2
			continue
		}
		if c == '&' {
			if end := bytes.IndexByte(v[i:], ';'); end > 1 && end <= maxReference {
				ref := v[i : i+end+1]
				if r := util.ResolveEntityNames(util.ResolveNumericReferences(ref)); !bytes.Equal(r, ref) {
					buf = append(buf, r...)
					i += end + 1
					continue
				}
			}
		}
		buf = append(buf, c)
		i++
	}
	return buf
}

// maxReference bounds the length of an entity or numeric reference,
// excluding the leading ampersand.
const maxReference = 32

// codeSpan returns the content of a code span with line endings turned into
// spaces.
func (t *tokenizer) codeSpan(n *gast.CodeSpan) []byte {
	var buf []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var v []byte
		switch c := c.(type) {
		case *gast.Text:
			v = c.Segment.Value(t.src)
		case *gast.String:
			v = c.Value
		}
		if bytes.HasSuffix(v, []byte("\n")) {
			v = append(v[:len(v)-1:len(v)-1], ' ')
		}
		buf = append(buf, v...)
	}
	return buf
}

var replacementChar = []byte("\uFFFD")

func (t *tokenizer) text(tt event.TextType, v []byte) error {
	if t.opts.validateUTF8 {
		v = bytes.ToValidUTF8(v, replacementChar)
	}
	return t.h.Text(tt, v)
}

func itemDetail(n *gast.ListItem) any {
	fc := n.FirstChild()
	if fc == nil {
		return nil
	}
	box, ok := fc.FirstChild().(*east.TaskCheckBox)
	if !ok {
		return nil
	}
	d := &event.LIDetail{IsTask: true, TaskMark: ' '}
	if box.IsChecked {
		d.TaskMark = 'x'
	}
	return d
}
