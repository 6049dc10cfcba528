package construct

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/build"
	"github.com/mdforge/down/event"
	"github.com/mdforge/down/visit"
)

var Lit = build.Lit

func mustEvents(t *testing.T, evs ...event.Event) *ast.Node {
	t.Helper()
	n, err := EventsToNode(evs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return n
}

func expectTree(t *testing.T, want, got *ast.Node) {
	t.Helper()
	if !ast.Equal(want, got) {
		t.Errorf("tree (-want +got):\n%s", cmp.Diff(visit.Dump(want), visit.Dump(got)))
	}
}

func TestItemInlinesGetParagraph(t *testing.T) {
	got := mustEvents(t,
		event.Enter(event.BlockUL, &event.ULDetail{Tight: true, Mark: '-'}),
		event.Enter(event.BlockLI, nil),
		event.T(event.TextNormal, "a "),
		event.EnterS(event.SpanStrong, nil),
		event.T(event.TextNormal, "Offline"),
		event.LeaveS(event.SpanStrong),
		event.Leave(event.BlockLI),
		event.Leave(event.BlockUL),
	)
	want := build.Must(build.BulletList(true,
		build.Item(build.Paragraph(Lit("a "), build.Strong(Lit("Offline"))))))
	expectTree(t, want, got)
}

func TestNestedListNotWrapped(t *testing.T) {
	got := mustEvents(t,
		event.Enter(event.BlockUL, nil),
		event.Enter(event.BlockLI, nil),
		event.Enter(event.BlockUL, nil),
		event.Enter(event.BlockLI, nil),
		event.T(event.TextNormal, "inner"),
		event.Leave(event.BlockLI),
		event.Leave(event.BlockUL),
		event.Leave(event.BlockLI),
		event.Leave(event.BlockUL),
	)
	want := build.Must(build.BulletList(true,
		build.Item(build.BulletList(true, Lit("inner")))))
	expectTree(t, want, got)
	if k := got.FirstChild().FirstChild().Kind(); k != ast.ListKind {
		t.Errorf("nested list under %s", k)
	}
}

func TestItemParagraphPrecondition(t *testing.T) {
	// inline content after a nested block starts a new paragraph rather
	// than joining the one before the block
	got := mustEvents(t,
		event.Enter(event.BlockUL, nil),
		event.Enter(event.BlockLI, nil),
		event.T(event.TextNormal, "before"),
		event.EnterS(event.SpanEm, nil),
		event.T(event.TextNormal, "em"),
		event.LeaveS(event.SpanEm),
		event.Enter(event.BlockUL, nil),
		event.Enter(event.BlockLI, nil),
		event.T(event.TextNormal, "inner"),
		event.Leave(event.BlockLI),
		event.Leave(event.BlockUL),
		event.T(event.TextNormal, "after"),
		event.Leave(event.BlockLI),
		event.Leave(event.BlockUL),
	)
	want := build.Must(build.BulletList(true,
		build.Item(
			build.Paragraph(Lit("before"), build.Emphasis(Lit("em"))),
			build.BulletList(true, Lit("inner")),
			build.Paragraph(Lit("after")))))
	expectTree(t, want, got)

	err := got.Visit(func(n *ast.Node, isPost bool) (bool, error) {
		if !isPost && n.Kind() == ast.ItemKind && n.Len() != 0 && n.FirstChild().Kind().IsInline() {
			t.Errorf("item starts with inline %s", n.FirstChild().Kind())
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestExplicitParagraphsInItems(t *testing.T) {
	got := mustEvents(t,
		event.Enter(event.BlockOL, event.OLDetail{Start: 2, Delimiter: ')'}),
		event.Enter(event.BlockLI, nil),
		event.Enter(event.BlockP, nil),
		event.T(event.TextNormal, "one"),
		event.Leave(event.BlockP),
		event.Enter(event.BlockP, nil),
		event.T(event.TextNormal, "two"),
		event.Leave(event.BlockP),
		event.Leave(event.BlockLI),
		event.Leave(event.BlockOL),
	)
	want := build.Must(build.OrderedList(ast.ParenDelim, 2, false,
		build.Item(build.Paragraph(Lit("one")), build.Paragraph(Lit("two")))))
	expectTree(t, want, got)
}

func TestSkipBalance(t *testing.T) {
	for depth := 1; depth <= 5; depth++ {
		evs := []event.Event{
			event.Enter(event.BlockDoc, nil),
			event.Enter(event.BlockP, nil),
			event.T(event.TextNormal, "kept"),
		}
		for range depth {
			evs = append(evs, event.EnterS(event.SpanDel, nil), event.T(event.TextNormal, "dropped"))
		}
		evs = append(evs, event.EnterS(event.SpanEm, nil), event.T(event.TextNormal, "dropped"), event.LeaveS(event.SpanEm))
		for range depth {
			evs = append(evs, event.LeaveS(event.SpanDel))
		}
		evs = append(evs, event.Leave(event.BlockP), event.Leave(event.BlockDoc))

		c := New()
		maxSkip := 0
		for i := range evs {
			err := event.Deliver(&evs[i], c)
			if err != nil && !errors.Is(err, ErrSkip) {
				t.Fatalf("depth %d event %d: %v", depth, i, err)
			}
			maxSkip = max(maxSkip, c.SkipDepth())
		}
		if maxSkip != depth+1 {
			t.Errorf("depth %d: max skip depth %d", depth, maxSkip)
		}
		if c.SkipDepth() != 0 {
			t.Errorf("depth %d: final skip depth %d", depth, c.SkipDepth())
		}
		got, err := c.Result()
		if err != nil {
			t.Fatal(err)
		}
		want := build.MustDocument(build.Document(build.Paragraph(Lit("kept"))))
		expectTree(t, want, got)
	}
}

func TestSkipTable(t *testing.T) {
	c := New()
	steps := []struct {
		ev   event.Event
		skip bool
	}{
		{event.Enter(event.BlockDoc, nil), false},
		{event.Enter(event.BlockTable, nil), true},
		{event.Enter(event.BlockTHead, nil), true},
		{event.Enter(event.BlockTR, nil), true},
		{event.Enter(event.BlockTH, nil), true},
		{event.T(event.TextNormal, "cell"), false},
		{event.Leave(event.BlockTH), false},
		{event.Leave(event.BlockTR), false},
		{event.Leave(event.BlockTHead), false},
		{event.Leave(event.BlockTable), false},
		{event.Enter(event.BlockP, nil), false},
		{event.T(event.TextNormal, "after"), false},
		{event.Leave(event.BlockP), false},
		{event.Leave(event.BlockDoc), false},
	}
	for i, s := range steps {
		err := event.Deliver(&s.ev, c)
		if s.skip != (err == ErrSkip) {
			t.Fatalf("step %d %s: got %v", i, s.ev, err)
		}
		if err != nil && err != ErrSkip {
			t.Fatalf("step %d %s: %v", i, s.ev, err)
		}
	}
	got, err := c.Result()
	if err != nil {
		t.Fatal(err)
	}
	expectTree(t, build.MustDocument(build.Document(Lit("after"))), got)
}

func TestMalformed(t *testing.T) {
	tests := []struct {
		name string
		evs  []event.Event
	}{
		{"underflow", []event.Event{event.Leave(event.BlockP)}},
		{"open at end", []event.Event{event.Enter(event.BlockDoc, nil), event.Enter(event.BlockP, nil)}},
		{"unbalanced skip", []event.Event{event.Enter(event.BlockDoc, nil), event.Enter(event.BlockTable, nil)}},
		{"negative skip", []event.Event{event.Enter(event.BlockDoc, nil), event.Leave(event.BlockTable)}},
		{"negative span skip", []event.Event{event.Enter(event.BlockDoc, nil), event.LeaveS(event.SpanDel)}},
		{"kind mismatch", []event.Event{event.Enter(event.BlockDoc, nil), event.Enter(event.BlockP, nil), event.Leave(event.BlockQuote)}},
		{"span mismatch", []event.Event{event.Enter(event.BlockP, nil), event.EnterS(event.SpanEm, nil), event.LeaveS(event.SpanStrong)}},
		{"second root", []event.Event{event.Enter(event.BlockDoc, nil), event.Leave(event.BlockDoc), event.Enter(event.BlockDoc, nil)}},
		{"span outside block", []event.Event{event.EnterS(event.SpanEm, nil)}},
		{"text outside block", []event.Event{event.T(event.TextNormal, "x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := EventsToNode(tt.evs)
			if !errors.Is(err, ErrMalformedEventStream) {
				t.Fatalf("expected ErrMalformedEventStream, got %v", err)
			}
			if n != nil {
				t.Errorf("got a tree with the error")
			}
		})
	}
}

func TestIllegalContainment(t *testing.T) {
	c := New()
	evs := []event.Event{
		event.Enter(event.BlockP, nil),
		event.Enter(event.BlockQuote, nil),
		event.Leave(event.BlockQuote),
	}
	var err error
	for i := range evs {
		err = event.Deliver(&evs[i], c)
	}
	if !errors.Is(err, ast.ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
	// the first error sticks
	if err2 := c.Text(event.TextNormal, []byte("x")); err2 != err {
		t.Errorf("got %v after abort, want %v", err2, err)
	}
	if _, err3 := c.Result(); err3 != err {
		t.Errorf("Result() = %v, want %v", err3, err)
	}
	c.Reset()
	if c.Err() != nil || c.Depth() != 0 {
		t.Errorf("Reset left state behind")
	}
	n, err := c.Result()
	if n != nil || err != nil {
		t.Errorf("empty constructor: got %v, %v", n, err)
	}
}

func TestEmptyStream(t *testing.T) {
	n, err := EventsToNode(nil)
	if n != nil || err != nil {
		t.Errorf("got %v, %v", n, err)
	}
}

func TestTextHandling(t *testing.T) {
	got := mustEvents(t,
		event.Enter(event.BlockDoc, nil),
		event.Enter(event.BlockH, event.HeadingDetail{Level: 3}),
		event.T(event.TextNormal, "a"),
		event.T(event.TextEntity, "&"),
		event.T(event.TextNullChar, "\x00"),
		event.Leave(event.BlockH),
		event.Enter(event.BlockCode, &event.CodeDetail{Info: "go", Lang: "go", Fence: '`'}),
		event.T(event.TextCode, "a\n"),
		event.T(event.TextCode, "b\n"),
		event.Leave(event.BlockCode),
		event.Enter(event.BlockP, nil),
		event.EnterS(event.SpanCode, nil),
		event.T(event.TextCode, "x"),
		event.T(event.TextSoftBR, "\n"),
		event.T(event.TextCode, "y"),
		event.LeaveS(event.SpanCode),
		event.T(event.TextHTML, "<b>"),
		event.T(event.TextSoftBR, "\n"),
		event.EnterS(event.SpanA, &event.LinkDetail{Href: "u", Title: "t"}),
		event.T(event.TextNormal, "l"),
		event.LeaveS(event.SpanA),
		event.T(event.TextBR, "\n"),
		event.EnterS(event.SpanImg, event.ImageDetail{Src: "i.png"}),
		event.LeaveS(event.SpanImg),
		event.T(event.TextCode, "raw"),
		event.Leave(event.BlockP),
		event.Enter(event.BlockHTML, nil),
		event.T(event.TextHTML, "<div>\n"),
		event.T(event.TextHTML, "</div>\n"),
		event.Leave(event.BlockHTML),
		event.Enter(event.BlockHR, nil),
		event.Leave(event.BlockHR),
		event.Leave(event.BlockDoc),
	)
	want := build.MustDocument(build.Document(
		build.Heading(3, Lit("a&\uFFFD")),
		build.CodeBlock("a\nb\n", "go"),
		build.Paragraph(
			build.Code("x\ny"),
			build.HTMLInline("<b>"),
			build.SoftBreak(),
			build.Link("u", "t", Lit("l")),
			build.LineBreak(),
			build.Image("i.png", ""),
			build.Code("raw"),
		),
		build.HTMLBlock("<div>\n</div>\n"),
		build.ThematicBreak(),
	))
	expectTree(t, want, got)
}

func TestBadDetail(t *testing.T) {
	_, err := EventsToNode([]event.Event{event.Enter(event.BlockH, &event.HeadingDetail{Level: 8})})
	if !errors.Is(err, ast.ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
}
