package event

import "fmt"

// BlockType identifies the block construct an EnterBlock/LeaveBlock pair
// delimits.
type BlockType int

const (
	BlockDoc BlockType = iota
	BlockQuote
	BlockUL
	BlockOL
	BlockLI
	BlockHR
	BlockH
	BlockCode
	BlockHTML
	BlockP
	BlockTable
	BlockTHead
	BlockTBody
	BlockTR
	BlockTH
	BlockTD
)

var blockNames = map[BlockType]string{
	BlockDoc:   "doc",
	BlockQuote: "quote",
	BlockUL:    "ul",
	BlockOL:    "ol",
	BlockLI:    "li",
	BlockHR:    "hr",
	BlockH:     "h",
	BlockCode:  "code",
	BlockHTML:  "html",
	BlockP:     "p",
	BlockTable: "table",
	BlockTHead: "thead",
	BlockTBody: "tbody",
	BlockTR:    "tr",
	BlockTH:    "th",
	BlockTD:    "td",
}

func (t BlockType) String() string {
	if s, ok := blockNames[t]; ok {
		return s
	}
	return fmt.Sprintf("block(%d)", int(t))
}

func (t BlockType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *BlockType) UnmarshalText(d []byte) error {
	for k, v := range blockNames {
		if v == string(d) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown block type %q", d)
}

// SpanType identifies the inline construct an EnterSpan/LeaveSpan pair
// delimits.
type SpanType int

const (
	SpanEm SpanType = iota
	SpanStrong
	SpanA
	SpanImg
	SpanCode
	SpanDel
	SpanLatexMath
	SpanLatexMathDisplay
	SpanWikiLink
	SpanU
)

var spanNames = map[SpanType]string{
	SpanEm:               "em",
	SpanStrong:           "strong",
	SpanA:                "a",
	SpanImg:              "img",
	SpanCode:             "code",
	SpanDel:              "del",
	SpanLatexMath:        "latexmath",
	SpanLatexMathDisplay: "latexmath_display",
	SpanWikiLink:         "wikilink",
	SpanU:                "u",
}

func (t SpanType) String() string {
	if s, ok := spanNames[t]; ok {
		return s
	}
	return fmt.Sprintf("span(%d)", int(t))
}

func (t SpanType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *SpanType) UnmarshalText(d []byte) error {
	for k, v := range spanNames {
		if v == string(d) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown span type %q", d)
}

// TextType classifies a run of text.
type TextType int

const (
	TextNormal TextType = iota
	TextNullChar
	TextBR
	TextSoftBR
	TextEntity
	TextCode
	TextHTML
	TextLatexMath
)

var textNames = map[TextType]string{
	TextNormal:    "normal",
	TextNullChar:  "nullchar",
	TextBR:        "br",
	TextSoftBR:    "softbr",
	TextEntity:    "entity",
	TextCode:      "code",
	TextHTML:      "html",
	TextLatexMath: "latexmath",
}

func (t TextType) String() string {
	if s, ok := textNames[t]; ok {
		return s
	}
	return fmt.Sprintf("text(%d)", int(t))
}

func (t TextType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TextType) UnmarshalText(d []byte) error {
	for k, v := range textNames {
		if v == string(d) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown text type %q", d)
}
