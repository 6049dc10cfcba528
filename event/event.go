package event

import (
	"fmt"
	"strings"
)

// HeadingDetail accompanies EnterBlock(BlockH).
type HeadingDetail struct {
	Level int `json:"level"`
}

// ULDetail accompanies EnterBlock(BlockUL).
type ULDetail struct {
	Tight bool `json:"tight"`
	Mark  byte `json:"mark,omitempty"`
}

// OLDetail accompanies EnterBlock(BlockOL).
type OLDetail struct {
	Start     int  `json:"start"`
	Tight     bool `json:"tight"`
	Delimiter byte `json:"delimiter,omitempty"`
}

// LIDetail accompanies EnterBlock(BlockLI).
type LIDetail struct {
	IsTask   bool `json:"isTask,omitempty"`
	TaskMark byte `json:"taskMark,omitempty"`
}

// CodeDetail accompanies EnterBlock(BlockCode).
type CodeDetail struct {
	Info  string `json:"info,omitempty"`
	Lang  string `json:"lang,omitempty"`
	Fence byte   `json:"fence,omitempty"`
}

// LinkDetail accompanies EnterSpan(SpanA).
type LinkDetail struct {
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
}

// ImageDetail accompanies EnterSpan(SpanImg).
type ImageDetail struct {
	Src   string `json:"src"`
	Title string `json:"title,omitempty"`
}

// Handler receives the event stream of a tokenizer.
//
// Events arrive in document order. Every enter has exactly one matching
// leave at the same nesting depth, text never arrives outside an open block
// or span, and details are delivered with the enter event. A handler may
// return ErrSkip from an enter event to signal that it consumed the event
// without descending; tokenizers should then suppress the construct's
// content, although handlers must tolerate receiving it anyway.
type Handler interface {
	EnterBlock(t BlockType, detail any) error
	LeaveBlock(t BlockType, detail any) error
	EnterSpan(t SpanType, detail any) error
	LeaveSpan(t SpanType, detail any) error
	Text(t TextType, text []byte) error
}

// Type is the type of a recorded Event.
type Type int

const (
	EnterBlock Type = iota
	LeaveBlock
	EnterSpan
	LeaveSpan
	Text
)

func (t Type) String() string {
	switch t {
	case EnterBlock:
		return "EnterBlock"
	case LeaveBlock:
		return "LeaveBlock"
	case EnterSpan:
		return "EnterSpan"
	case LeaveSpan:
		return "LeaveSpan"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	k := string(d)
	pt, ok := map[string]Type{
		"EnterBlock": EnterBlock,
		"LeaveBlock": LeaveBlock,
		"EnterSpan":  EnterSpan,
		"LeaveSpan":  LeaveSpan,
		"Text":       Text,
	}[k]
	if ok {
		*t = pt
		return nil
	}
	return fmt.Errorf("unknown type %q", k)
}

// Event is one recorded tokenizer callback. Only the fields relevant to Type
// are set.
type Event struct {
	Type   Type      `json:"t"`
	Block  BlockType `json:"block,omitempty"`
	Span   SpanType  `json:"span,omitempty"`
	Text   TextType  `json:"text,omitempty"`
	Bytes  []byte    `json:"bytes,omitempty"`
	Detail any       `json:"detail,omitempty"`
}

func (e Event) String() string {
	switch e.Type {
	case EnterBlock, LeaveBlock:
		return fmt.Sprintf("%s(%s)", e.Type, e.Block)
	case EnterSpan, LeaveSpan:
		return fmt.Sprintf("%s(%s)", e.Type, e.Span)
	case Text:
		return fmt.Sprintf("%s(%s, %q)", e.Type, e.Text, e.Bytes)
	}
	return e.Type.String()
}

// Format renders events one per line, indented by nesting depth.
func Format(events []Event) string {
	var b strings.Builder
	depth := 0
	for _, e := range events {
		if e.Type == LeaveBlock || e.Type == LeaveSpan {
			depth = max(depth-1, 0)
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(e.String())
		b.WriteByte('\n')
		if e.Type == EnterBlock || e.Type == EnterSpan {
			depth++
		}
	}
	return b.String()
}

// Convenience constructors for recorded events.

func Enter(t BlockType, detail any) Event {
	return Event{Type: EnterBlock, Block: t, Detail: detail}
}

func Leave(t BlockType) Event {
	return Event{Type: LeaveBlock, Block: t}
}

func EnterS(t SpanType, detail any) Event {
	return Event{Type: EnterSpan, Span: t, Detail: detail}
}

func LeaveS(t SpanType) Event {
	return Event{Type: LeaveSpan, Span: t}
}

func T(t TextType, v string) Event {
	return Event{Type: Text, Text: t, Bytes: []byte(v)}
}
