package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"rsc.io/markdown"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/build"
	"github.com/mdforge/down/construct"
	"github.com/mdforge/down/tokenize"
	"github.com/mdforge/down/visit"
)

var (
	Lit = build.Lit
	doc = func(cs ...build.Content) *ast.Node { return build.MustDocument(build.Document(cs...)) }
)

func reparse(t *testing.T, md string) *ast.Node {
	t.Helper()
	n, err := construct.Parse([]byte(md), tokenize.WithGFM(true))
	if err != nil {
		t.Fatalf("parsing %q: %v", md, err)
	}
	return n
}

func expectTree(t *testing.T, md string, want, got *ast.Node) {
	t.Helper()
	if !ast.Equal(want, got) {
		t.Errorf("tree of\n%s\n(-want +got):\n%s", md, cmp.Diff(visit.Dump(want), visit.Dump(got)))
	}
}

func TestCommonMark(t *testing.T) {
	tests := []struct {
		name string
		node *ast.Node
		opts []Option
		want string
	}{
		{
			name: "escapes",
			node: doc(build.Paragraph(Lit("*a* [b] <c> & `d` ~ | !"))),
			want: "\\*a\\* \\[b\\] \\<c\\> \\& \\`d\\` \\~ \\| \\!\n",
		},
		{
			name: "heading start",
			node: doc(build.Paragraph(Lit("# not a heading"))),
			want: "\\# not a heading\n",
		},
		{
			name: "list start",
			node: doc(build.Paragraph(Lit("1. not a list"))),
			want: "1\\. not a list\n",
		},
		{
			name: "closing hash",
			node: doc(build.Heading(2, Lit("C#"))),
			want: "## C\\#\n",
		},
		{
			name: "autolink text",
			node: doc(build.Paragraph(Lit("see http://x.y or www.x.y or a@b.c"))),
			want: "see http\\://x.y or www\\.x.y or a\\@b.c\n",
		},
		{
			name: "adjacent emphasis",
			node: doc(build.Paragraph(build.Emphasis(Lit("a")), build.Emphasis(Lit("b")))),
			want: "*a*_b_\n",
		},
		{
			name: "nested emphasis",
			node: doc(build.Paragraph(build.Emphasis(build.Emphasis(Lit("x"))))),
			want: "*_x_*\n",
		},
		{
			name: "inline root",
			node: build.Must(build.Emphasis(Lit("x"))),
			want: "*x*\n",
		},
		{
			name: "empty document",
			node: doc(),
			want: "",
		},
		{
			name: "safe",
			node: doc(build.Paragraph(build.Link("javascript:alert(1)", "", Lit("x")), build.HTMLInline("<b>"),
				build.Image("data:image/png;base64,AA", "", Lit("ok")))),
			opts: []Option{Safe(true)},
			want: "[x](<>)<!-- raw HTML omitted -->![ok](data:image/png;base64,AA)\n",
		},
		{
			name: "unsafe overrides safe",
			node: doc(build.Paragraph(build.HTMLInline("<b>"))),
			opts: []Option{Safe(true), Unsafe(true)},
			want: "<b>\n",
		},
		{
			name: "normalize",
			node: doc(build.Paragraph(build.Text("a  "), build.Text("\tb"))),
			opts: []Option{Normalize(true)},
			want: "a b\n",
		},
		{
			name: "smart",
			node: doc(build.Paragraph(Lit(`"hi" -- it's...`))),
			opts: []Option{Smart(true)},
			want: "“hi” – it’s…\n",
		},
		{
			name: "validate utf8",
			node: doc(build.Paragraph(Lit("a\xffb"))),
			opts: []Option{ValidateUTF8(true)},
			want: "a\uFFFDb\n",
		},
		{
			name: "width",
			node: doc(build.Paragraph(Lit("aaa bbb ccc - d"))),
			opts: []Option{Width(7)},
			want: "aaa bbb\nccc - d\n",
		},
		{
			name: "width escapes wrapped line start",
			node: doc(build.Paragraph(Lit("aaa bbb - d"))),
			opts: []Option{Width(7)},
			want: "aaa bbb\n\\- d\n",
		},
		{
			name: "sourcepos",
			node: doc(build.Paragraph(Lit("a"))),
			opts: []Option{SourcePos(true)},
			want: "a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CommonMark(tt.node, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocument(t *testing.T) {
	rs := &RenderState{}
	md, err := rs.Document(doc(
		build.Heading(1, Lit("Title")),
		build.BulletList(true, Lit("a")),
		build.BulletList(true, Lit("b")),
		build.OrderedList(ast.ParenDelim, 3, false, Lit("c"), Lit("d")),
		build.CodeBlock("x\n", "go"),
		build.CustomBlock("<aside>", "</aside>", Lit("a"), build.CustomInline("{{", "}}", Lit("b"))),
	))
	if err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, b := range md.Blocks {
		switch b := b.(type) {
		case *markdown.Heading:
			kinds = append(kinds, "heading")
		case *markdown.List:
			kinds = append(kinds, "list "+string(b.Bullet))
		case *markdown.CodeBlock:
			kinds = append(kinds, "code "+b.Fence+b.Info)
		case *markdown.HTMLBlock:
			kinds = append(kinds, "html")
		case *markdown.Paragraph:
			kinds = append(kinds, "paragraph")
		}
	}
	want := []string{"heading", "list -", "list *", "list )", "code ```go", "html", "paragraph", "html"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("blocks (-want +got):\n%s", diff)
	}
	ol := md.Blocks[3].(*markdown.List)
	if ol.Start != 3 || !ol.Loose || len(ol.Items) != 2 {
		t.Errorf("ordered list: %+v", ol)
	}
	para := md.Blocks[6].(*markdown.Paragraph)
	if len(para.Text.Inline) != 4 {
		t.Fatalf("custom inline: got %d inlines", len(para.Text.Inline))
	}
	if tag, ok := para.Text.Inline[1].(*markdown.HTMLTag); !ok || tag.Text != "{{" {
		t.Errorf("custom inline: got %#v", para.Text.Inline[1])
	}
}

func TestRoundTrip(t *testing.T) {
	trees := map[string]*ast.Node{
		"blocks": doc(
			build.Heading(1, Lit("Title "), build.Emphasis(Lit("em"))),
			build.Paragraph(Lit("Hello "), build.Strong(Lit("world")), Lit(" and"), build.SoftBreak(), Lit("again")),
			build.BlockQuote(Lit("q"), build.BulletList(false, Lit("a"), Lit("b"))),
			build.CodeBlock("x := `1`\n\ny\n", "go"),
			build.CodeBlock("```\n", ""),
			build.ThematicBreak(),
			build.HTMLBlock("<div>\nhi\n</div>\n"),
		),
		"lists": doc(
			build.BulletList(true, Lit("a"), build.Item(Lit("b"), build.OrderedList(ast.ParenDelim, 1, true, Lit("c")))),
			build.BulletList(true, Lit("d")),
			build.OrderedList(ast.PeriodDelim, 1, false, Lit("e"), Lit("f")),
			build.OrderedList(ast.ParenDelim, 7, true, Lit("g")),
			build.Paragraph(Lit("after")),
		),
		"inlines": doc(build.Paragraph(
			Lit("a "), build.Link("/u", `say "hi"`, Lit("link")), Lit(" "),
			build.Image("a b.png", "", Lit("img")), Lit(" "),
			build.Code("c`d"), Lit(" "), build.Code("`e"), Lit(" x"), build.LineBreak(),
			build.HTMLInline("<b>"), Lit("raw"), build.HTMLInline("</b>"),
			Lit(" *not em* [not link] 1 < 2 & 3 ~ | ! http://x.y www.x.y a@b.c"),
		)),
		"escaped starts": doc(
			build.Paragraph(Lit("# x")),
			build.Paragraph(Lit("- y")),
			build.Paragraph(Lit("2) z")),
			build.Paragraph(Lit("+ w"), build.SoftBreak(), Lit("= v")),
			build.Heading(3, Lit("C#")),
		),
		"emphasis": doc(build.Paragraph(
			build.Emphasis(Lit("a")), build.Emphasis(Lit("b")), Lit(" "),
			build.Strong(Lit("c")), build.Strong(Lit("d")), Lit(" "),
			build.Strong(build.Strong(Lit("x"))), Lit(" "),
			build.Emphasis(build.Emphasis(Lit("y"))), Lit(" "),
			build.Strong(build.Emphasis(Lit("z"))),
		)),
		"quoted list": doc(build.BlockQuote(build.OrderedList(ast.PeriodDelim, 2, false, Lit("a"), Lit("b")))),
	}
	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			md, err := CommonMark(tree)
			if err != nil {
				t.Fatal(err)
			}
			back := reparse(t, md)
			expectTree(t, md, tree, back)
			again, err := CommonMark(back)
			if err != nil {
				t.Fatal(err)
			}
			if again != md {
				t.Errorf("rendering is not stable:\n%s", cmp.Diff(md, again))
			}
		})
	}
}

// A list's tight flag survives rendering only where blank lines can carry
// it: blocks of a tight item which would merge force a loose list, and a
// loose list of one single-block item comes back tight.
func TestListLooseness(t *testing.T) {
	tests := []struct {
		name       string
		tree, want *ast.Node
	}{
		{
			name: "tight item with two paragraphs",
			tree: doc(build.BulletList(true, build.Item(Lit("a"), Lit("b")), Lit("c"))),
			want: doc(build.BulletList(false, build.Item(Lit("a"), Lit("b")), Lit("c"))),
		},
		{
			name: "tight item with nested list and paragraph",
			tree: doc(build.BulletList(true, build.Item(Lit("a"), build.BulletList(true, Lit("b")), Lit("c")))),
			want: doc(build.BulletList(false, build.Item(Lit("a"), build.BulletList(true, Lit("b")), Lit("c")))),
		},
		{
			name: "loose list of one html block",
			tree: doc(build.BulletList(false, build.Item(build.HTMLBlock("<div>x</div>\n")))),
			want: doc(build.BulletList(true, build.Item(build.HTMLBlock("<div>x</div>\n")))),
		},
		{
			name: "loose list of one paragraph",
			tree: doc(build.BulletList(false, Lit("a"))),
			want: doc(build.BulletList(true, Lit("a"))),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := CommonMark(tt.tree)
			if err != nil {
				t.Fatal(err)
			}
			expectTree(t, md, tt.want, reparse(t, md))
		})
	}
}

func TestAdjacentLists(t *testing.T) {
	tree := doc(
		build.OrderedList(ast.PeriodDelim, 1, true, Lit("a")),
		build.OrderedList(ast.PeriodDelim, 1, true, Lit("b")),
		build.BulletList(true, Lit("c")),
		build.BulletList(true, Lit("d")),
	)
	// the second ordered list can only stay separate with the other delimiter
	want := doc(
		build.OrderedList(ast.PeriodDelim, 1, true, Lit("a")),
		build.OrderedList(ast.ParenDelim, 1, true, Lit("b")),
		build.BulletList(true, Lit("c")),
		build.BulletList(true, Lit("d")),
	)
	md, err := CommonMark(tree)
	if err != nil {
		t.Fatal(err)
	}
	expectTree(t, md, want, reparse(t, md))
}

func TestOptionsReparse(t *testing.T) {
	tests := []struct {
		name       string
		tree, want *ast.Node
		opts       []Option
	}{
		{
			name: "hard breaks",
			tree: doc(build.Paragraph(Lit("a"), build.SoftBreak(), build.Emphasis(Lit("b"), build.SoftBreak(), Lit("c")))),
			want: doc(build.Paragraph(Lit("a"), build.LineBreak(), build.Emphasis(Lit("b"), build.LineBreak(), Lit("c")))),
			opts: []Option{HardBreaks(true)},
		},
		{
			name: "width in list",
			tree: doc(build.BulletList(true, Lit("ddd eee"))),
			want: doc(build.BulletList(true, build.Paragraph(Lit("ddd"), build.SoftBreak(), Lit("eee")))),
			opts: []Option{Width(7)},
		},
		{
			name: "width in quote",
			tree: doc(build.BlockQuote(Lit("aa bb cc"))),
			want: doc(build.BlockQuote(build.Paragraph(Lit("aa bb"), build.SoftBreak(), Lit("cc")))),
			opts: []Option{Width(7)},
		},
		{
			name: "heading soft break",
			tree: doc(build.Heading(1, Lit("a"), build.SoftBreak(), Lit("b"))),
			want: doc(build.Heading(1, Lit("a b"))),
		},
		{
			name: "safe html block",
			tree: doc(build.HTMLBlock("<script>x</script>\n")),
			want: doc(build.HTMLBlock("<!-- raw HTML omitted -->\n")),
			opts: []Option{Safe(true)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := CommonMark(tt.tree, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			expectTree(t, md, tt.want, reparse(t, md))
		})
	}
}

func TestRenderErrors(t *testing.T) {
	tests := map[string]*ast.Node{
		"nil":              nil,
		"link in link":     doc(build.Paragraph(build.Link("a", "", build.Link("b", "", Lit("x"))))),
		"break in heading": doc(build.Heading(1, Lit("a"), build.LineBreak(), Lit("b"))),
		"multiline info":   doc(build.CodeBlock("x", "a\nb")),
		"multiline url":    doc(build.Paragraph(build.Link("a\nb", "", Lit("x")))),
	}
	for name, n := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := CommonMark(n); !errors.Is(err, ErrRendering) {
				t.Fatalf("expected ErrRendering, got %v", err)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions([]string{"Smart", " hardbreaks ", "smartunsafe", "default"})
	if err != nil {
		t.Fatal(err)
	}
	rs := &RenderState{}
	for _, o := range opts {
		o(rs)
	}
	if !rs.smart || !rs.hardBreaks || !rs.unsafe {
		t.Errorf("got %+v", *rs)
	}
	if _, err := ParseOptions([]string{"fancy"}); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
	for _, name := range OptionNames() {
		if _, ok := optionNames[name]; !ok {
			t.Errorf("%s listed but not parsed", name)
		}
	}
}
