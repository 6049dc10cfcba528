package visit

import (
	"strings"

	"github.com/fatih/color"

	"github.com/mdforge/down/ast"
)

type Colorable struct {
	Kind ast.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	NameColor ColorAttr = iota
	AttrColor
	LiteralColor
	MarkerColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range ast.Kinds() {
		able := Colorable{Kind: k, Attr: MarkerColor}
		colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
		able.Attr = AttrColor
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = NameColor
		switch k.Category() {
		case ast.BlockCategory:
			colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
		case ast.InlineCategory:
			colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
		default:
			colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
		}
	}
	able := Colorable{Attr: LiteralColor}
	able.Kind = ast.TextKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	for _, k := range []ast.Kind{ast.CodeKind, ast.CodeBlockKind} {
		able.Kind = k
		colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	}
	for _, k := range []ast.Kind{ast.HTMLInlineKind, ast.HTMLBlockKind} {
		able.Kind = k
		colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ast.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k ast.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
