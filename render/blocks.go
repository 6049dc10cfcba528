package render

import (
	"strings"

	"rsc.io/markdown"

	"github.com/mdforge/down/ast"
)

// converter maps ast nodes to rsc.io/markdown blocks and inlines.
type converter struct {
	rs *RenderState
}

func (c *converter) blocks(ns []*ast.Node) ([]markdown.Block, error) {
	var res []markdown.Block
	alt := false
	for i, n := range ns {
		if n.Kind().IsInline() {
			return nil, renderErr("%s among blocks", n.Kind())
		}
		var prev *ast.Node
		if i > 0 {
			prev = ns[i-1]
		}
		alt = n.Kind() == ast.ListKind && sameListType(prev, n) && !alt
		bs, err := c.block(n, alt)
		if err != nil {
			return nil, err
		}
		res = append(res, bs...)
	}
	return res, nil
}

// block converts a block node. alt asks lists for their alternate marker.
// Paragraphs without content produce no block.
func (c *converter) block(n *ast.Node, alt bool) ([]markdown.Block, error) {
	switch n.Kind() {
	case ast.BlockQuoteKind:
		bs, err := c.blocks(n.Children())
		if err != nil {
			return nil, err
		}
		return []markdown.Block{&markdown.Quote{Blocks: bs}}, nil
	case ast.ListKind:
		l, err := c.list(n, alt)
		if err != nil {
			return nil, err
		}
		return []markdown.Block{l}, nil
	case ast.ParagraphKind:
		text, err := c.paragraph(n.Children())
		if err != nil || text == nil {
			return nil, err
		}
		return []markdown.Block{&markdown.Paragraph{Text: text}}, nil
	case ast.HeadingKind:
		h, err := c.heading(n)
		if err != nil {
			return nil, err
		}
		return []markdown.Block{h}, nil
	case ast.ThematicBreakKind:
		// the printer writes a break's source text, which built trees lack
		return []markdown.Block{&markdown.HTMLBlock{Text: []string{"* * *"}}}, nil
	case ast.CodeBlockKind:
		cb, err := c.codeBlock(n)
		if err != nil {
			return nil, err
		}
		return []markdown.Block{cb}, nil
	case ast.HTMLBlockKind:
		if c.rs.isSafe() {
			return []markdown.Block{&markdown.HTMLBlock{Text: []string{omittedHTML}}}, nil
		}
		v := strings.TrimSuffix(c.rs.literal(n), "\n")
		return []markdown.Block{&markdown.HTMLBlock{Text: strings.Split(v, "\n")}}, nil
	case ast.CustomBlockKind:
		return c.customBlock(n)
	case ast.DocumentKind, ast.ItemKind:
		return nil, renderErr("%s nested in a tree", n.Kind())
	}
	return nil, renderErr("%s is not a block", n.Kind())
}

// sameListType reports whether b would continue list a if written with the
// same marker.
func sameListType(a, b *ast.Node) bool {
	if a == nil || a.Kind() != ast.ListKind || b.Kind() != ast.ListKind {
		return false
	}
	at, _ := a.ListType()
	bt, _ := b.ListType()
	if at != bt {
		return false
	}
	ad, _ := a.ListDelim()
	bd, _ := b.ListDelim()
	return at == ast.BulletList || ad == bd
}

func (c *converter) list(n *ast.Node, alt bool) (*markdown.List, error) {
	lt, _ := n.ListType()
	l := &markdown.List{Bullet: '-', Loose: looseList(n)}
	if alt {
		l.Bullet = '*'
	}
	if lt == ast.OrderedList {
		delim, _ := n.ListDelim()
		l.Bullet = '.'
		if (delim == ast.ParenDelim) != alt {
			l.Bullet = ')'
		}
		l.Start, _ = n.ListStart()
	}
	for _, item := range n.Children() {
		bs, err := c.blocks(item.Children())
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, &markdown.Item{Blocks: bs})
	}
	return l, nil
}

// looseList decides whether a list is written loose. The tight flag is
// followed where the output can express it: an item whose blocks would
// merge without a blank line between them forces a loose list, and a loose
// list of one item holding one block has no blank line to carry the flag,
// so it is written tight.
func looseList(n *ast.Node) bool {
	items := n.Children()
	for _, item := range items {
		cs := item.Children()
		for i := 1; i < len(cs); i++ {
			if needsBlank(cs[i-1], cs[i]) {
				return true
			}
		}
	}
	if tight, _ := n.ListTight(); tight {
		return false
	}
	return len(items) > 1 || (len(items) == 1 && items[0].Len() > 1)
}

// needsBlank reports whether b must be separated from a by a blank line.
func needsBlank(a, b *ast.Node) bool {
	switch a.Kind() {
	case ast.ParagraphKind:
		switch b.Kind() {
		case ast.ParagraphKind, ast.HTMLBlockKind, ast.CustomBlockKind:
			return true
		case ast.ListKind:
			// only lists starting at 1 interrupt a paragraph
			lt, _ := b.ListType()
			start, _ := b.ListStart()
			return lt == ast.OrderedList && start != 1
		}
	case ast.ListKind, ast.BlockQuoteKind:
		// a following paragraph would be a lazy continuation
		return b.Kind() == ast.ParagraphKind
	}
	return false
}

func (c *converter) heading(n *ast.Node) (*markdown.Heading, error) {
	level, _ := n.HeadingLevel()
	ins, err := c.inlines(n.Children(), inlineCtx{heading: true})
	if err != nil {
		return nil, err
	}
	ins = trimInlines(ins)
	// a trailing # would read as a closing sequence
	if k := len(ins) - 1; k >= 0 {
		if p, ok := ins[k].(*markdown.Plain); ok && strings.HasSuffix(p.Text, "#") {
			ins = append(ins[:k], plainOrNothing(p.Text[:len(p.Text)-1])...)
			ins = append(ins, escaped("#"))
		}
	}
	return &markdown.Heading{Level: level, Text: &markdown.Text{Inline: ins}}, nil
}

func (c *converter) codeBlock(n *ast.Node) (*markdown.CodeBlock, error) {
	info, _ := n.FenceInfo()
	if strings.ContainsAny(info, "\r\n") {
		return nil, renderErr("fence info %q spans lines", info)
	}
	v := c.rs.literal(n)
	fc := "`"
	if strings.Contains(info, "`") {
		fc = "~"
	}
	cb := &markdown.CodeBlock{
		Fence: strings.Repeat(fc, max(3, longestRun(v, fc[0])+1)),
		Info:  info,
	}
	if v != "" {
		cb.Text = strings.Split(strings.TrimSuffix(v, "\n"), "\n")
	}
	return cb, nil
}

// customBlock writes the on-enter and on-exit markup as raw lines around
// the children. Inline children are gathered into one paragraph.
func (c *converter) customBlock(n *ast.Node) ([]markdown.Block, error) {
	var res []markdown.Block
	if v, _ := n.OnEnter(); v != "" {
		res = append(res, &markdown.HTMLBlock{Text: strings.Split(v, "\n")})
	}
	var blocks, inlines []*ast.Node
	for ch := range n.All() {
		if ch.Kind().IsInline() {
			inlines = append(inlines, ch)
		} else {
			blocks = append(blocks, ch)
		}
	}
	if len(inlines) != 0 {
		text, err := c.paragraph(inlines)
		if err != nil {
			return nil, err
		}
		if text != nil {
			res = append(res, &markdown.Paragraph{Text: text})
		}
	}
	bs, err := c.blocks(blocks)
	if err != nil {
		return nil, err
	}
	res = append(res, bs...)
	if v, _ := n.OnExit(); v != "" {
		res = append(res, &markdown.HTMLBlock{Text: strings.Split(v, "\n")})
	}
	return res, nil
}

func longestRun(s string, c byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}
