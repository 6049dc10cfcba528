package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"rsc.io/markdown"
)

// transform applies the hard break, smart punctuation and wrapping options
// to converted blocks. width is the space left for text at this depth.
func (rs *RenderState) transform(bs []markdown.Block, width int) {
	for _, b := range bs {
		switch b := b.(type) {
		case *markdown.Paragraph:
			rs.text(b.Text, width)
		case *markdown.Heading:
			rs.text(b.Text, 0)
		case *markdown.Quote:
			rs.transform(b.Blocks, narrow(width, 2))
		case *markdown.List:
			for i, item := range b.Items {
				if item, ok := item.(*markdown.Item); ok {
					rs.transform(item.Blocks, narrow(width, markerWidth(b, i)))
				}
			}
		}
	}
}

func (rs *RenderState) text(t *markdown.Text, width int) {
	if rs.hardBreaks {
		hardBreaks(t.Inline)
	}
	if rs.smart {
		smartInlines(t.Inline, 0)
	}
	if width > 0 {
		w := &wrapper{width: width}
		t.Inline = w.inlines(t.Inline)
	}
}

func narrow(width, k int) int {
	if width == 0 {
		return 0
	}
	return max(width-k, 1)
}

func markerWidth(l *markdown.List, i int) int {
	if l.Bullet == '.' || l.Bullet == ')' {
		return len(fmt.Sprint(l.Start+i)) + 2
	}
	return 2
}

func hardBreaks(ins []markdown.Inline) {
	for i, in := range ins {
		switch x := in.(type) {
		case *markdown.SoftBreak:
			ins[i] = &markdown.HardBreak{}
		case *markdown.Emph:
			hardBreaks(x.Inner)
		case *markdown.Strong:
			hardBreaks(x.Inner)
		case *markdown.Link:
			hardBreaks(x.Inner)
		case *markdown.Image:
			hardBreaks(x.Inner)
		}
	}
}

// smartInlines rewrites plain text with smarten. prev is the last rune of
// text before ins; the rune ending ins is returned.
func smartInlines(ins []markdown.Inline, prev rune) rune {
	for _, in := range ins {
		switch x := in.(type) {
		case *markdown.Plain:
			x.Text = smarten(x.Text, prev)
			prev = lastRune(x.Text, prev)
		case *markdown.Escaped:
			prev = lastRune(x.Text, prev)
		case *markdown.Code:
			prev = lastRune(x.Text, prev)
		case *markdown.HTMLTag:
			prev = lastRune(x.Text, prev)
		case *markdown.SoftBreak, *markdown.HardBreak:
			prev = '\n'
		case *markdown.Emph:
			prev = smartInlines(x.Inner, prev)
		case *markdown.Strong:
			prev = smartInlines(x.Inner, prev)
		case *markdown.Link:
			prev = smartInlines(x.Inner, prev)
		case *markdown.Image:
			prev = smartInlines(x.Inner, prev)
		}
	}
	return prev
}

func lastRune(s string, def rune) rune {
	if s == "" {
		return def
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// wrapper breaks plain text at spaces once a line exceeds width columns.
type wrapper struct {
	width int
	col   int
}

func (w *wrapper) inlines(ins []markdown.Inline) []markdown.Inline {
	var res []markdown.Inline
	for _, in := range ins {
		switch x := in.(type) {
		case *markdown.Plain:
			res = append(res, w.plain(x.Text)...)
			continue
		case *markdown.SoftBreak, *markdown.HardBreak:
			w.col = 0
		case *markdown.Emph:
			w.col += len(x.Marker)
			x.Inner = w.inlines(x.Inner)
			w.col += len(x.Marker)
		case *markdown.Strong:
			w.col += len(x.Marker)
			x.Inner = w.inlines(x.Inner)
			w.col += len(x.Marker)
		case *markdown.Link:
			w.col++
			x.Inner = w.inlines(x.Inner)
			w.col += destinationWidth(x.URL, x.Title)
		case *markdown.Image:
			w.col += 2
			x.Inner = w.inlines(x.Inner)
			w.col += destinationWidth(x.URL, x.Title)
		default:
			w.col += printedWidth(in)
		}
		res = append(res, in)
	}
	return res
}

func (w *wrapper) plain(s string) []markdown.Inline {
	var res []markdown.Inline
	b := &strings.Builder{}
	for i, word := range strings.Split(s, " ") {
		n := utf8.RuneCountInString(word)
		if i > 0 {
			if w.col > 0 && word != "" && w.col+1+n > w.width {
				res = append(res, plainOrNothing(b.String())...)
				b.Reset()
				res = append(res, &markdown.SoftBreak{})
				res = append(res, escapeLineStart(word)...)
				w.col = n
				continue
			}
			b.WriteByte(' ')
			w.col++
		}
		b.WriteString(word)
		w.col += n
	}
	return append(res, plainOrNothing(b.String())...)
}

// destinationWidth is the width of "](url "title")".
func destinationWidth(url, title string) int {
	n := 3 + utf8.RuneCountInString(url)
	if title != "" {
		n += 3 + utf8.RuneCountInString(title)
	}
	return n
}

// printedWidth measures an inline leaf by printing it.
func printedWidth(in markdown.Inline) int {
	p := &markdown.Paragraph{Text: &markdown.Text{Inline: []markdown.Inline{in}}}
	return utf8.RuneCountInString(strings.TrimSuffix(markdown.Format(p), "\n"))
}
