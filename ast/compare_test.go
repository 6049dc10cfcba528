package ast

import "testing"

func text(v string) *Node { return NewText(v) }

func heading(level int, cs ...*Node) *Node {
	h := New(HeadingKind)
	_ = h.SetHeadingLevel(level)
	for _, c := range cs {
		_ = h.AppendChild(c)
	}
	return h
}

func link(url, title string) *Node {
	l := New(LinkKind)
	_ = l.SetURL(url)
	_ = l.SetTitle(title)
	return l
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		{"nil < node", nil, text("a"), -1},
		{"kind order", New(DocumentKind), New(ParagraphKind), -1},
		{"literal", text("a"), text("b"), -1},
		{"equal literal", text("a"), text("a"), 0},
		{"heading level", heading(1), heading(2), -1},
		{"children", heading(1, text("a")), heading(1, text("b")), -1},
		{"fewer children", heading(1, text("a")), heading(1, text("a"), text("b")), -1},
		{"url", link("a", ""), link("b", ""), -1},
		{"title", link("a", "x"), link("a", "y"), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestEqualIgnoresParent(t *testing.T) {
	p := New(ParagraphKind)
	a := text("x")
	_ = p.AppendChild(a)
	if !Equal(a, text("x")) {
		t.Errorf("attached and detached text should be equal")
	}
}
