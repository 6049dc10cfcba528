package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/build"
)

var Lit = build.Lit

func sample(t *testing.T) *ast.Node {
	t.Helper()
	doc, err := build.Document(
		build.Heading(1, Lit("One")),
		build.Paragraph(Lit("plain "), build.Emphasis(Lit("em"), build.Link("https://a.example", "t", Lit("in")))),
		build.Heading(3, Lit("Three")),
		build.OrderedList(ast.PeriodDelim, 4, true, Lit("x"), Lit("y")),
		build.Paragraph(build.Link("/rel", "", Lit("rel"))),
	)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func texts(ns []*ast.Node) []string {
	res := make([]string, len(ns))
	for i, n := range ns {
		res[i] = n.Kind().String() + ":" + n.TextContent()
	}
	return res
}

func TestSelect(t *testing.T) {
	doc := sample(t)
	tests := []struct {
		src  string
		want []string
	}{
		{`Kind == "heading"`, []string{"heading:One", "heading:Three"}},
		{`Kind == "heading" && Level > 2`, []string{"heading:Three"}},
		{`Kind == "link" && URL startsWith "https://"`, []string{"link:in"}},
		{`Kind == "text" && Within("emph")`, []string{"text:em", "text:in"}},
		{`Kind == "list" && Ordered && Start == 4 && Tight`, []string{"list:xy"}},
		{`Parent == "list" && Index == 1`, []string{"item:y"}},
		{`Depth == 1 && Kind == "paragraph"`, []string{"paragraph:plain emin", "paragraph:rel"}},
		{`Kind == "link" && Title != ""`, []string{"link:in"}},
		{`Kind == "document"`, []string{"document:Oneplain eminThreexyrel"}},
		{`false`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			ns, err := Select(doc, tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, texts(ns)); diff != "" {
				t.Errorf("selection (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`Kind ==`, `Level + 1`, `Nope == 1`} {
		if _, err := Compile(src); !errors.Is(err, ErrQuery) {
			t.Errorf("%s: expected ErrQuery, got %v", src, err)
		}
	}
}

func TestNewEnv(t *testing.T) {
	doc := sample(t)
	list := doc.Children()[3]
	env := NewEnv(list.Children()[1], 2, 1)
	if env.Kind != "item" || env.Parent != "list" || env.Index != 1 || env.Depth != 2 {
		t.Errorf("got %+v", env)
	}
	if env.Within("heading") || !env.Within("document") {
		t.Errorf("within: got %v %v", env.Within("heading"), env.Within("document"))
	}
	env = NewEnv(list, 1, 3)
	if !env.Ordered || env.Start != 4 || !env.Tight || env.Level != 0 {
		t.Errorf("got %+v", env)
	}
}
