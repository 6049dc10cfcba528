package visit

import (
	"fmt"
	"strings"

	"github.com/mdforge/down/ast"
)

// Dumper renders a tree for debugging, one line per node. Children are
// indented four spaces per level below their parent and every line but the
// first carries a ↳ marker.
type Dumper struct {
	depth  int
	colors *Colors
}

type DumpOption func(*Dumper)

// DumpColors colors node names, attributes and literals.
func DumpColors(c *Colors) DumpOption {
	return func(d *Dumper) { d.colors = c }
}

func NewDumper(opts ...DumpOption) *Dumper {
	d := &Dumper{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dump renders the tree rooted at n.
func Dump(n *ast.Node, opts ...DumpOption) string {
	return Visit[string](NewDumper(opts...), n)
}

var _ Visitor[string] = (*Dumper)(nil)

func (d *Dumper) color(k ast.Kind, a ColorAttr, s string) string {
	if d.colors == nil {
		return s
	}
	return d.colors.Color(k, a, s)
}

type attr struct {
	name, value string
	literal     bool
}

func (d *Dumper) report(n *ast.Node, name string, attrs ...attr) string {
	var b strings.Builder
	if d.depth > 0 {
		b.WriteString(strings.Repeat("    ", d.depth))
		b.WriteString(d.color(n.Kind(), MarkerColor, "↳ "))
	}
	b.WriteString(d.color(n.Kind(), NameColor, name))
	for i, a := range attrs {
		if i == 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(", ")
		}
		if a.name != "" {
			b.WriteString(d.color(n.Kind(), AttrColor, a.name+": "))
		}
		if a.literal {
			b.WriteString(d.color(n.Kind(), LiteralColor, a.value))
		} else {
			b.WriteString(d.color(n.Kind(), AttrColor, a.value))
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func (d *Dumper) reportWithChildren(n *ast.Node, name string, attrs ...attr) string {
	res := d.report(n, name, attrs...)
	d.depth++
	defer func() { d.depth-- }()
	return res + strings.Join(Children[string](d, n), "")
}

func lit(n *ast.Node) string {
	v, _ := n.Literal()
	return v
}

func escaped(v string) string {
	return strings.ReplaceAll(v, "\n", `\n`)
}

func (d *Dumper) VisitDocument(n *ast.Node) string {
	return d.reportWithChildren(n, "Document")
}

func (d *Dumper) VisitBlockQuote(n *ast.Node) string {
	return d.reportWithChildren(n, "Block Quote")
}

func (d *Dumper) VisitList(n *ast.Node) string {
	lt, _ := n.ListType()
	tight, _ := n.ListTight()
	typ := lt.String()
	if lt == ast.OrderedList {
		start, _ := n.ListStart()
		delim, _ := n.ListDelim()
		typ = fmt.Sprintf("ordered(start: %d, delim: %s)", start, delim)
	}
	return d.reportWithChildren(n, "List",
		attr{name: "type", value: typ},
		attr{name: "isTight", value: fmt.Sprint(tight)})
}

func (d *Dumper) VisitItem(n *ast.Node) string {
	return d.reportWithChildren(n, "Item")
}

func (d *Dumper) VisitCodeBlock(n *ast.Node) string {
	info, _ := n.FenceInfo()
	return d.report(n, "Code Block",
		attr{name: "fenceInfo", value: info},
		attr{name: "content", value: escaped(lit(n)), literal: true})
}

func (d *Dumper) VisitHTMLBlock(n *ast.Node) string {
	return d.report(n, "Html Block", attr{name: "content", value: escaped(lit(n)), literal: true})
}

func (d *Dumper) VisitCustomBlock(n *ast.Node) string {
	return d.reportWithChildren(n, "Custom Block", custom(n)...)
}

func (d *Dumper) VisitParagraph(n *ast.Node) string {
	return d.reportWithChildren(n, "Paragraph")
}

func (d *Dumper) VisitHeading(n *ast.Node) string {
	level, _ := n.HeadingLevel()
	return d.reportWithChildren(n, "Heading", attr{value: fmt.Sprintf("L%d", level)})
}

func (d *Dumper) VisitThematicBreak(n *ast.Node) string {
	return d.report(n, "Thematic Break")
}

func (d *Dumper) VisitText(n *ast.Node) string {
	return d.report(n, "Text", attr{value: escaped(lit(n)), literal: true})
}

func (d *Dumper) VisitSoftBreak(n *ast.Node) string {
	return d.report(n, "Soft Break")
}

func (d *Dumper) VisitLineBreak(n *ast.Node) string {
	return d.report(n, "Line Break")
}

func (d *Dumper) VisitCode(n *ast.Node) string {
	return d.report(n, "Code", attr{value: escaped(lit(n)), literal: true})
}

func (d *Dumper) VisitHTMLInline(n *ast.Node) string {
	return d.report(n, "Html Inline", attr{value: escaped(lit(n)), literal: true})
}

func (d *Dumper) VisitCustomInline(n *ast.Node) string {
	return d.reportWithChildren(n, "Custom Inline", custom(n)...)
}

func (d *Dumper) VisitEmphasis(n *ast.Node) string {
	return d.reportWithChildren(n, "Emphasis")
}

func (d *Dumper) VisitStrong(n *ast.Node) string {
	return d.reportWithChildren(n, "Strong")
}

func (d *Dumper) VisitLink(n *ast.Node) string {
	return d.reportWithChildren(n, "Link", linkAttrs(n)...)
}

func (d *Dumper) VisitImage(n *ast.Node) string {
	return d.reportWithChildren(n, "Image", linkAttrs(n)...)
}

func linkAttrs(n *ast.Node) []attr {
	url, _ := n.URL()
	title, _ := n.Title()
	var res []attr
	if title != "" {
		res = append(res, attr{name: "title", value: title})
	}
	return append(res, attr{name: "url", value: url})
}

func custom(n *ast.Node) []attr {
	var res []attr
	if v, _ := n.OnEnter(); v != "" {
		res = append(res, attr{name: "onEnter", value: escaped(v), literal: true})
	}
	if v, _ := n.OnExit(); v != "" {
		res = append(res, attr{name: "onExit", value: escaped(v), literal: true})
	}
	return res
}
