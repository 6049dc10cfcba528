package ast

import (
	"fmt"
	"strings"
)

// Kind identifies what a node represents.
type Kind int

const (
	DocumentKind Kind = iota
	BlockQuoteKind
	ListKind
	ItemKind
	CodeBlockKind
	HTMLBlockKind
	CustomBlockKind
	ParagraphKind
	HeadingKind
	ThematicBreakKind
	TextKind
	SoftBreakKind
	LineBreakKind
	CodeKind
	HTMLInlineKind
	CustomInlineKind
	EmphasisKind
	StrongKind
	LinkKind
	ImageKind

	numKinds
)

var kindNames = [numKinds]string{
	DocumentKind:      "document",
	BlockQuoteKind:    "block_quote",
	ListKind:          "list",
	ItemKind:          "item",
	CodeBlockKind:     "code_block",
	HTMLBlockKind:     "html_block",
	CustomBlockKind:   "custom_block",
	ParagraphKind:     "paragraph",
	HeadingKind:       "heading",
	ThematicBreakKind: "thematic_break",
	TextKind:          "text",
	SoftBreakKind:     "softbreak",
	LineBreakKind:     "linebreak",
	CodeKind:          "code",
	HTMLInlineKind:    "html_inline",
	CustomInlineKind:  "custom_inline",
	EmphasisKind:      "emph",
	StrongKind:        "strong",
	LinkKind:          "link",
	ImageKind:         "image",
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	res := make([]Kind, numKinds)
	for i := range res {
		res[i] = Kind(i)
	}
	return res
}

func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return "<unknown kind>"
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	v := string(d)
	for i, name := range kindNames {
		if name == v {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

// Category is the structural category a node falls into when it is offered
// to a container as a child.
type Category int

const (
	UnknownCategory Category = iota
	BlockCategory
	InlineCategory
	ItemCategory
)

func (c Category) String() string {
	switch c {
	case BlockCategory:
		return "block"
	case InlineCategory:
		return "inline"
	case ItemCategory:
		return "item"
	default:
		return "unknown"
	}
}

// Class is the set of child categories a node kind accepts. The zero Class
// accepts nothing.
type Class uint8

const (
	Literal Class = 1 << iota
	Blocks
	Inlines
	Items

	None Class = 0
)

// Admits reports whether a child of category c may be appended directly.
func (c Class) Admits(cat Category) bool {
	switch cat {
	case BlockCategory:
		return c&Blocks != 0
	case InlineCategory:
		return c&Inlines != 0
	case ItemCategory:
		return c&Items != 0
	}
	return false
}

func (c Class) Has(o Class) bool {
	return o != None && c&o == o
}

func (c Class) String() string {
	if c == None {
		return "none"
	}
	var parts []string
	if c&Literal != 0 {
		parts = append(parts, "literal")
	}
	if c&Blocks != 0 {
		parts = append(parts, "blocks")
	}
	if c&Inlines != 0 {
		parts = append(parts, "inlines")
	}
	if c&Items != 0 {
		parts = append(parts, "items")
	}
	return strings.Join(parts, "|")
}

// Category returns the structural category of nodes of kind k.
func (k Kind) Category() Category {
	switch k {
	case DocumentKind:
		return UnknownCategory
	case ItemKind:
		return ItemCategory
	case BlockQuoteKind, ListKind, CodeBlockKind, HTMLBlockKind, CustomBlockKind,
		ParagraphKind, HeadingKind, ThematicBreakKind:
		return BlockCategory
	case TextKind, SoftBreakKind, LineBreakKind, CodeKind, HTMLInlineKind,
		CustomInlineKind, EmphasisKind, StrongKind, LinkKind, ImageKind:
		return InlineCategory
	}
	return UnknownCategory
}

// Class returns the containment class of kind k. This table is the one
// source of truth for both hand built and parsed trees.
func (k Kind) Class() Class {
	switch k {
	case DocumentKind, BlockQuoteKind, ItemKind:
		return Blocks
	case ListKind:
		return Items
	case CodeBlockKind, HTMLBlockKind, TextKind, CodeKind, HTMLInlineKind:
		return Literal
	case CustomBlockKind:
		return Blocks | Inlines | Items
	case ParagraphKind, HeadingKind, CustomInlineKind, EmphasisKind, StrongKind,
		LinkKind, ImageKind:
		return Inlines
	case ThematicBreakKind, SoftBreakKind, LineBreakKind:
		return None
	}
	return None
}

func (k Kind) IsBlock() bool  { return k.Category() == BlockCategory }
func (k Kind) IsInline() bool { return k.Category() == InlineCategory }

// IsLeaf reports whether nodes of kind k never have children.
func (k Kind) IsLeaf() bool {
	c := k.Class()
	return c == None || c == Literal
}

// ListType distinguishes bullet from ordered lists.
type ListType int

const (
	BulletList ListType = iota
	OrderedList
)

func (t ListType) String() string {
	if t == OrderedList {
		return "ordered"
	}
	return "bullet"
}

// Delim is the delimiter following the number of an ordered list item.
type Delim int

const (
	NoDelim Delim = iota
	PeriodDelim
	ParenDelim
)

func (d Delim) String() string {
	switch d {
	case PeriodDelim:
		return "period"
	case ParenDelim:
		return "paren"
	default:
		return "none"
	}
}
