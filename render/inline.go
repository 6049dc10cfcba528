package render

import (
	"strings"

	"rsc.io/markdown"

	"github.com/mdforge/down/ast"
)

type inlineCtx struct {
	heading bool
	inLink  bool
	// mark is the delimiter character of the enclosing emphasis.
	mark byte
}

// paragraph converts the content of a paragraph. It returns nil when
// nothing would be printed.
func (c *converter) paragraph(ns []*ast.Node) (*markdown.Text, error) {
	ins, err := c.inlines(ns, inlineCtx{})
	if err != nil {
		return nil, err
	}
	ins = trimLines(ins)
	if len(ins) == 0 {
		return nil, nil
	}
	return &markdown.Text{Inline: ins}, nil
}

func (c *converter) inlines(ns []*ast.Node, ctx inlineCtx) ([]markdown.Inline, error) {
	var res []markdown.Inline
	for i := 0; i < len(ns); i++ {
		n := ns[i]
		if c.rs.normalize && n.Kind() == ast.TextKind {
			v := c.rs.literal(n)
			for i+1 < len(ns) && ns[i+1].Kind() == ast.TextKind {
				i++
				v += c.rs.literal(ns[i])
			}
			res = append(res, escapeText(collapseSpace(v))...)
			continue
		}
		var prev markdown.Inline
		if len(res) > 0 {
			prev = res[len(res)-1]
		}
		ins, err := c.inline(n, ctx, i == 0, prev)
		if err != nil {
			return nil, err
		}
		res = append(res, ins...)
	}
	return res, nil
}

func (c *converter) inline(n *ast.Node, ctx inlineCtx, first bool, prev markdown.Inline) ([]markdown.Inline, error) {
	switch n.Kind() {
	case ast.TextKind:
		return escapeText(c.rs.literal(n)), nil
	case ast.SoftBreakKind:
		if ctx.heading {
			return []markdown.Inline{&markdown.Plain{Text: " "}}, nil
		}
		return []markdown.Inline{&markdown.SoftBreak{}}, nil
	case ast.LineBreakKind:
		if ctx.heading {
			return nil, renderErr("line break in heading")
		}
		return []markdown.Inline{&markdown.HardBreak{}}, nil
	case ast.CodeKind:
		return []markdown.Inline{codeSpan(c.rs.literal(n))}, nil
	case ast.HTMLInlineKind:
		if c.rs.isSafe() {
			return []markdown.Inline{&markdown.HTMLTag{Text: omittedHTML}}, nil
		}
		return []markdown.Inline{&markdown.HTMLTag{Text: c.rs.literal(n)}}, nil
	case ast.CustomInlineKind:
		var res []markdown.Inline
		if v, _ := n.OnEnter(); v != "" {
			res = append(res, &markdown.HTMLTag{Text: v})
		}
		inner, err := c.inlines(n.Children(), ctx)
		if err != nil {
			return nil, err
		}
		res = append(res, inner...)
		if v, _ := n.OnExit(); v != "" {
			res = append(res, &markdown.HTMLTag{Text: v})
		}
		return res, nil
	case ast.EmphasisKind, ast.StrongKind:
		mark := delimiter(ctx, first, prev)
		inner, err := c.inlines(n.Children(), inlineCtx{heading: ctx.heading, inLink: ctx.inLink, mark: mark})
		if err != nil {
			return nil, err
		}
		if n.Kind() == ast.StrongKind {
			return []markdown.Inline{&markdown.Strong{Marker: strings.Repeat(string(mark), 2), Inner: inner}}, nil
		}
		return []markdown.Inline{&markdown.Emph{Marker: string(mark), Inner: inner}}, nil
	case ast.LinkKind, ast.ImageKind:
		return c.link(n, ctx)
	}
	return nil, renderErr("%s is not an inline", n.Kind())
}

// delimiter picks the emphasis character. A run of the same character
// directly before the opening delimiter, from an enclosing emphasis or a
// preceding one, would merge with it, so the other character is used.
func delimiter(ctx inlineCtx, first bool, prev markdown.Inline) byte {
	var before byte
	if first {
		before = ctx.mark
	}
	switch x := prev.(type) {
	case *markdown.Emph:
		before = x.Marker[0]
	case *markdown.Strong:
		before = x.Marker[0]
	}
	if before == '*' {
		return '_'
	}
	return '*'
}

func (c *converter) link(n *ast.Node, ctx inlineCtx) ([]markdown.Inline, error) {
	isLink := n.Kind() == ast.LinkKind
	if isLink && ctx.inLink {
		return nil, renderErr("link inside link")
	}
	url, _ := n.URL()
	title, _ := n.Title()
	if strings.ContainsAny(url, "\r\n") {
		return nil, renderErr("%s destination %q spans lines", n.Kind(), url)
	}
	if c.rs.isSafe() && unsafeURL(url) {
		url = ""
	}
	inner := ctx
	inner.inLink = ctx.inLink || isLink
	inner.mark = 0
	ins, err := c.inlines(n.Children(), inner)
	if err != nil {
		return nil, err
	}
	url = linkDestination(url)
	title = titleEscaper.Replace(title)
	if isLink {
		return []markdown.Inline{&markdown.Link{Inner: ins, URL: url, Title: title, TitleChar: '"'}}, nil
	}
	return []markdown.Inline{&markdown.Image{Inner: ins, URL: url, Title: title, TitleChar: '"'}}, nil
}

var titleEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func linkDestination(u string) string {
	if u == "" || strings.ContainsAny(u, " \t()<>\\") {
		return "<" + strings.NewReplacer(`\`, `\\`, "<", `\<`, ">", `\>`).Replace(u) + ">"
	}
	return u
}

var unsafePrefixes = []string{"javascript:", "vbscript:", "file:", "data:"}

var safeDataPrefixes = []string{"data:image/png", "data:image/gif", "data:image/jpeg", "data:image/webp"}

func unsafeURL(u string) bool {
	l := strings.ToLower(strings.TrimSpace(u))
	for _, p := range safeDataPrefixes {
		if strings.HasPrefix(l, p) {
			return false
		}
	}
	for _, p := range unsafePrefixes {
		if strings.HasPrefix(l, p) {
			return true
		}
	}
	return false
}

// codeSpan converts code span content. Content holding backticks, or
// spaces a parser would strip at its edges, is written raw inside a longer
// fence with padding spaces.
func codeSpan(v string) markdown.Inline {
	v = strings.ReplaceAll(v, "\n", " ")
	if v != "" && !strings.Contains(v, "`") &&
		!(v[0] == ' ' && v[len(v)-1] == ' ' && strings.Trim(v, " ") != "") {
		return &markdown.Code{Text: v}
	}
	fence := strings.Repeat("`", longestRun(v, '`')+1)
	return &markdown.HTMLTag{Text: fence + " " + v + " " + fence}
}

func escaped(s string) markdown.Inline {
	return &markdown.Escaped{Plain: markdown.Plain{Text: s}}
}

func plainOrNothing(s string) []markdown.Inline {
	if s == "" {
		return nil
	}
	return []markdown.Inline{&markdown.Plain{Text: s}}
}

// escapeText splits text into plain runs and backslash escapes.
func escapeText(s string) []markdown.Inline {
	var res []markdown.Inline
	start := 0
	for i := 0; i < len(s); i++ {
		if !mustEscape(s, i) {
			continue
		}
		res = append(res, plainOrNothing(s[start:i])...)
		res = append(res, escaped(s[i:i+1]))
		start = i + 1
	}
	return append(res, plainOrNothing(s[start:])...)
}

// mustEscape reports whether the byte at i would be read as markup, or
// would let an extended autolink swallow the text around it.
func mustEscape(s string, i int) bool {
	switch s[i] {
	case '\\', '`', '*', '_', '[', ']', '<', '>', '&', '~', '|', '!':
		return true
	case ':':
		return i > 0 && isAlnum(s[i-1]) && strings.HasPrefix(s[i:], "://")
	case '.':
		return i >= 3 && strings.EqualFold(s[i-3:i], "www") && (i == 3 || !isAlnum(s[i-4]))
	case '@':
		return i > 0 && i+1 < len(s) && isAlnum(s[i-1]) && isAlnum(s[i+1])
	}
	return false
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func isBreak(in markdown.Inline) bool {
	switch in.(type) {
	case *markdown.SoftBreak, *markdown.HardBreak:
		return true
	}
	return false
}

// trimLines drops the whitespace a parser would strip at the edges of each
// line of a paragraph and escapes text which would otherwise start a block.
func trimLines(ins []markdown.Inline) []markdown.Inline {
	var res []markdown.Inline
	start := 0
	for i := 0; i <= len(ins); i++ {
		if i < len(ins) && !isBreak(ins[i]) {
			continue
		}
		line := trimInlines(ins[start:i])
		if len(line) > 0 {
			if p, ok := line[0].(*markdown.Plain); ok {
				line = append(escapeLineStart(p.Text), line[1:]...)
			}
		}
		res = append(res, line...)
		if i < len(ins) {
			res = append(res, ins[i])
		}
		start = i + 1
	}
	for len(res) > 0 && isBreak(res[len(res)-1]) {
		res = res[:len(res)-1]
	}
	return res
}

// trimInlines trims spaces and tabs from plain text at both ends of ins.
func trimInlines(ins []markdown.Inline) []markdown.Inline {
	ins = append([]markdown.Inline(nil), ins...)
	for len(ins) > 0 {
		p, ok := ins[0].(*markdown.Plain)
		if !ok {
			break
		}
		if v := strings.TrimLeft(p.Text, " \t"); v != "" {
			ins[0] = &markdown.Plain{Text: v}
			break
		}
		ins = ins[1:]
	}
	for len(ins) > 0 {
		k := len(ins) - 1
		p, ok := ins[k].(*markdown.Plain)
		if !ok {
			break
		}
		if v := strings.TrimRight(p.Text, " \t"); v != "" {
			ins[k] = &markdown.Plain{Text: v}
			break
		}
		ins = ins[:k]
	}
	return ins
}

// escapeLineStart escapes plain text at the start of a line which would
// open a list item, a heading or a setext underline.
func escapeLineStart(l string) []markdown.Inline {
	if l == "" {
		return nil
	}
	switch l[0] {
	case '-', '+', '=', '#':
		return append([]markdown.Inline{escaped(l[:1])}, plainOrNothing(l[1:])...)
	}
	i := 0
	for i < len(l) && i < 10 && l[i] >= '0' && l[i] <= '9' {
		i++
	}
	if i > 0 && i < len(l) && (l[i] == '.' || l[i] == ')') {
		res := []markdown.Inline{&markdown.Plain{Text: l[:i]}, escaped(l[i : i+1])}
		return append(res, plainOrNothing(l[i+1:])...)
	}
	return []markdown.Inline{&markdown.Plain{Text: l}}
}
